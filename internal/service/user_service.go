package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/cache"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"

	"gorm.io/gorm"
)

// UserService 账号资料和密码管理
// 读走凭证缓存 写后失效 数据源始终是数据库
type UserService struct {
	userDao    *dao.UserDao
	principals *cache.PrincipalCache
}

func NewUserService(userDao *dao.UserDao, principals *cache.PrincipalCache) *UserService {
	return &UserService{
		userDao:    userDao,
		principals: principals,
	}
}

// GetProfile 获取当前账号资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	if cached := s.principals.Get(ctx, userID); cached != nil {
		return cached, nil
	}

	user, err := s.userDao.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_USER_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	s.principals.Set(ctx, user)
	return user, nil
}

// UpdateProfileInput 资料更新入参
type UpdateProfileInput struct {
	FullName *string
	Email    *string
}

// UpdateProfile 更新姓名或邮箱 邮箱需保持唯一
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*model.User, error) {
	if _, err := s.userDao.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_USER_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	updates := make(map[string]interface{})

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, e.NewMsg(e.INVALID_PARAMS, "fullName cannot be empty")
		}
		updates["fullName"] = name
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, e.NewMsg(e.INVALID_PARAMS, "email cannot be empty")
		}
		taken, err := s.userDao.EmailExists(ctx, email, userID)
		if err != nil {
			return nil, e.Wrap(e.ERROR, err)
		}
		if taken {
			return nil, e.New(e.ERROR_EMAIL_IN_USE)
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		return nil, e.NewMsg(e.INVALID_PARAMS, "No fields to update")
	}

	if err := s.userDao.UpdateUser(ctx, userID, updates); err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}

	// 资料变了 缓存作废
	s.principals.Invalidate(ctx, userID)

	user, err := s.userDao.GetUserByID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	return user, nil
}

// ChangePassword 验证当前密码后改密
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userDao.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.New(e.ERROR_USER_NOT_EXISTS)
		}
		return e.Wrap(e.ERROR, err)
	}

	if !utils.CheckPassword(currentPassword, user.Password) {
		return e.New(e.ERROR_PASSWORD)
	}

	if len(newPassword) < 8 {
		return e.New(e.ERROR_WEAK_PASSWORD)
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return e.Wrap(e.ERROR, err)
	}

	if err := s.userDao.UpdateUserPassword(ctx, userID, newHash); err != nil {
		return e.Wrap(e.ERROR, err)
	}

	s.principals.Invalidate(ctx, userID)
	return nil
}
