package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/config"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/logger"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"

	"gorm.io/gorm"
)

// AuthService 登录注册
type AuthService struct {
	userDao   *dao.UserDao
	jwtUtil   *utils.JWTUtil
	emergency config.EmergencyConfig
}

func NewAuthService(userDao *dao.UserDao, jwtUtil *utils.JWTUtil, emergency config.EmergencyConfig) *AuthService {
	return &AuthService{
		userDao:   userDao,
		jwtUtil:   jwtUtil,
		emergency: emergency,
	}
}

// LoginResult 登录结果 token加用户信息（不含密码）
type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login 邮箱或姓名加密码登录
// 数据库不可用且显式开启紧急模式时 允许用配置的后备管理员凭证登录
// 凭证错误永远不走紧急通道
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	password = strings.TrimSpace(password)
	if identifier == "" || password == "" {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Email and password are required")
	}

	user, err := s.userDao.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_AUTH)
		}
		// 数据库故障 仅在此分支考虑紧急通道
		return s.emergencyLogin(ctx, identifier, password, err)
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, e.New(e.ERROR_AUTH)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, e.Wrap(e.ERROR_AUTH_TOKEN, err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// emergencyLogin 配置门控的后备登录 仅数据库故障时可达
func (s *AuthService) emergencyLogin(ctx context.Context, identifier, password string, storeErr error) (*LoginResult, error) {
	if !s.emergency.Enabled || s.emergency.Email == "" || s.emergency.PasswordHash == "" {
		return nil, e.Wrap(e.ERROR, storeErr)
	}
	if identifier != s.emergency.Email || !utils.CheckPassword(password, s.emergency.PasswordHash) {
		return nil, e.Wrap(e.ERROR, storeErr)
	}

	logger.WarnContext(ctx, "emergency access login used", "email", s.emergency.Email, "store_err", storeErr)

	token, err := s.jwtUtil.GenerateToken(0, s.emergency.Email, model.RoleAdmin)
	if err != nil {
		return nil, e.Wrap(e.ERROR_AUTH_TOKEN, err)
	}

	return &LoginResult{
		Token: token,
		User: &model.User{
			FullName: "Emergency Admin",
			Email:    s.emergency.Email,
			Role:     model.RoleAdmin,
		},
	}, nil
}

// RegisterInput 注册入参 仅管理员可调用
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// Register 创建后台账号
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)

	if fullName == "" || email == "" || input.Password == "" {
		return nil, e.NewMsg(e.INVALID_PARAMS, "fullName, email and password are required")
	}
	if len(input.Password) < 8 {
		return nil, e.New(e.ERROR_WEAK_PASSWORD)
	}

	role := input.Role
	if role == "" {
		role = model.RoleStaff
	}
	if role != model.RoleAdmin && role != model.RoleStaff {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Invalid role")
	}

	exists, err := s.userDao.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	if exists {
		return nil, e.New(e.ERROR_USER_EXISTS)
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}

	newUser := &model.User{
		FullName: fullName,
		Email:    email,
		Password: passwordHash,
		Role:     role,
	}

	if err := s.userDao.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, e.New(e.ERROR_USER_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	return newUser, nil
}
