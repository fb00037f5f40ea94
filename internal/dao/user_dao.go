package dao

import (
	"context"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"

	"gorm.io/gorm"
)

type UserDao struct {
	db *gorm.DB
}

// NewUserDao 构造函数（依赖注入）
func NewUserDao(db *gorm.DB) *UserDao {
	return &UserDao{db: db}
}

// CreateUser 创建用户
func (dao *UserDao) CreateUser(ctx context.Context, user *model.User) error {
	return dao.db.WithContext(ctx).Create(user).Error
}

// GetUserByID 根据用户ID获取用户
func (dao *UserDao) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := dao.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByIdentifier 按邮箱或姓名查用户 登录接口两者都接受
func (dao *UserDao) GetUserByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	err := dao.db.WithContext(ctx).
		Where("email = ? OR fullName = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists 检查邮箱是否被占用 可排除指定用户
func (dao *UserDao) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	query := dao.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateUserPassword 更新用户密码
func (dao *UserDao) UpdateUserPassword(ctx context.Context, userID int64, newPasswordHash string) error {
	return dao.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password":  newPasswordHash,
		"updatedAt": time.Now(),
	}).Error
}

// UpdateUser 更新用户信息（不包括密码）
func (dao *UserDao) UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) error {
	return dao.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(withUpdatedAt(updates)).Error
}
