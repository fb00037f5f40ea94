package model

import "time"

// 用户角色
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User 后台账号 密码只存bcrypt哈希 永不序列化
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"column:fullName;size:100;not null" json:"fullName"`
	Email     string    `gorm:"column:email;size:100;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	Role      string    `gorm:"column:role;size:10;default:staff" json:"role"`
	CreatedAt time.Time `gorm:"column:createdAt;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`
}

func (*User) TableName() string {
	return "users"
}
