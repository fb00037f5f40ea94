package model

import "time"

// InquiryStatus 咨询处理状态
type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "pending"
	InquiryStatusResolved InquiryStatus = "resolved"
)

func (s InquiryStatus) Valid() bool {
	return s == InquiryStatusPending || s == InquiryStatusResolved
}

// Inquiry 客户咨询 持久化存储 不再走进程内列表
type Inquiry struct {
	ID        int64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Message   string        `gorm:"column:message;type:text;not null" json:"message"`
	Name      string        `gorm:"column:name;size:100" json:"name"`
	Email     string        `gorm:"column:email;size:100" json:"email"`
	Mobile    string        `gorm:"column:mobile;size:15" json:"mobile"`
	Status    InquiryStatus `gorm:"column:status;size:10;default:pending" json:"status"`
	CreatedAt time.Time     `gorm:"column:createdAt;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`
}

func (*Inquiry) TableName() string {
	return "inquiries"
}
