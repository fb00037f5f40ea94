package service

import (
	"context"
	"testing"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/config"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB, emergency config.EmergencyConfig) *AuthService {
	return NewAuthService(dao.NewUserDao(db), utils.NewJWTUtil("test-secret", 24), emergency)
}

func seedUser(t *testing.T, db *gorm.DB, fullName, email, password, role string) *model.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &model.User{FullName: fullName, Email: email, Password: hash, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, config.EmergencyConfig{})
	seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "secret-password", model.RoleAdmin)

	result, err := svc.Login(context.Background(), "admin@nirvaan.lk", "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin@nirvaan.lk", result.User.Email)

	claims, err := utils.NewJWTUtil("test-secret", 24).ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLoginByFullName(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, config.EmergencyConfig{})
	seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "secret-password", model.RoleAdmin)

	result, err := svc.Login(context.Background(), "Ruchira Ranasinghe", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "admin@nirvaan.lk", result.User.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, config.EmergencyConfig{})
	seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "secret-password", model.RoleAdmin)

	_, err := svc.Login(context.Background(), "admin@nirvaan.lk", "wrong-password")
	assert.Equal(t, e.ERROR_AUTH, appCode(t, err))

	_, err = svc.Login(context.Background(), "nobody@nirvaan.lk", "secret-password")
	assert.Equal(t, e.ERROR_AUTH, appCode(t, err))

	_, err = svc.Login(context.Background(), "", "")
	assert.Equal(t, e.INVALID_PARAMS, appCode(t, err))
}

func TestEmergencyLoginOnlyOnStoreFailure(t *testing.T) {
	hash, err := utils.HashPassword("emergency-pass")
	require.NoError(t, err)
	emergency := config.EmergencyConfig{
		Enabled:      true,
		Email:        "emergency@nirvaan.lk",
		PasswordHash: hash,
	}

	db := newTestDB(t)
	seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "secret-password", model.RoleAdmin)
	svc := newAuthService(db, emergency)

	// 数据库正常时紧急凭证不可用
	_, err = svc.Login(context.Background(), "emergency@nirvaan.lk", "emergency-pass")
	assert.Equal(t, e.ERROR_AUTH, appCode(t, err))

	// 关掉底层连接模拟数据库故障
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	result, err := svc.Login(context.Background(), "emergency@nirvaan.lk", "emergency-pass")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, result.User.Role)
	assert.NotEmpty(t, result.Token)

	// 故障下错误凭证仍然拒绝
	_, err = svc.Login(context.Background(), "emergency@nirvaan.lk", "wrong")
	assert.Equal(t, e.ERROR, appCode(t, err))
}

func TestEmergencyLoginDisabledByDefault(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, config.EmergencyConfig{})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Login(context.Background(), "emergency@nirvaan.lk", "emergency-pass")
	assert.Equal(t, e.ERROR, appCode(t, err))
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, config.EmergencyConfig{})
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		FullName: "Staff Member",
		Email:    "staff@nirvaan.lk",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, user.Role, "role defaults to staff")
	assert.NotEqual(t, "long-enough-password", user.Password, "password must be hashed")

	// 新账号能直接登录
	_, err = svc.Login(ctx, "staff@nirvaan.lk", "long-enough-password")
	require.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, config.EmergencyConfig{})
	ctx := context.Background()
	seedUser(t, db, "Existing", "taken@nirvaan.lk", "secret-password", model.RoleStaff)

	_, err := svc.Register(ctx, RegisterInput{FullName: "X", Email: "x@nirvaan.lk", Password: "short"})
	assert.Equal(t, e.ERROR_WEAK_PASSWORD, appCode(t, err))

	_, err = svc.Register(ctx, RegisterInput{FullName: "X", Email: "taken@nirvaan.lk", Password: "long-enough-password"})
	assert.Equal(t, e.ERROR_USER_EXISTS, appCode(t, err))

	_, err = svc.Register(ctx, RegisterInput{FullName: "X", Email: "y@nirvaan.lk", Password: "long-enough-password", Role: "superuser"})
	assert.Equal(t, e.INVALID_PARAMS, appCode(t, err))
}
