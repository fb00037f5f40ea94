package service

import (
	"context"
	"testing"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/cache"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	// nil redis 客户端 缓存直通
	return NewUserService(dao.NewUserDao(db), cache.NewPrincipalCache(nil))
}

func TestGetProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "secret-password", model.RoleAdmin)

	got, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetProfile(context.Background(), 9999)
	assert.Equal(t, e.ERROR_USER_NOT_EXISTS, appCode(t, err))
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "secret-password", model.RoleAdmin)
	ctx := context.Background()

	name := "Ruchira R"
	email := "ruchira@nirvaan.lk"
	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{FullName: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Ruchira R", updated.FullName)
	assert.Equal(t, "ruchira@nirvaan.lk", updated.Email)

	_, err = svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{})
	assert.Equal(t, e.INVALID_PARAMS, appCode(t, err))
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "secret-password", model.RoleAdmin)
	seedUser(t, db, "Other", "other@nirvaan.lk", "secret-password", model.RoleStaff)
	ctx := context.Background()

	taken := "other@nirvaan.lk"
	_, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: &taken})
	assert.Equal(t, e.ERROR_EMAIL_IN_USE, appCode(t, err))

	// 自己的邮箱可以原样保存
	own := "admin@nirvaan.lk"
	_, err = svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: &own})
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "old-password-1", model.RoleAdmin)
	ctx := context.Background()

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "old-password-1", "new-password-1"))

	var stored model.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, utils.CheckPassword("new-password-1", stored.Password))
	assert.False(t, utils.CheckPassword("old-password-1", stored.Password))
}

func TestChangePasswordRejections(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := seedUser(t, db, "Ruchira Ranasinghe", "admin@nirvaan.lk", "old-password-1", model.RoleAdmin)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, "wrong-password", "new-password-1")
	assert.Equal(t, e.ERROR_PASSWORD, appCode(t, err))

	err = svc.ChangePassword(ctx, user.ID, "old-password-1", "short")
	assert.Equal(t, e.ERROR_WEAK_PASSWORD, appCode(t, err))

	err = svc.ChangePassword(ctx, 9999, "old-password-1", "new-password-1")
	assert.Equal(t, e.ERROR_USER_NOT_EXISTS, appCode(t, err))
}
