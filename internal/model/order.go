package model

import "time"

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusReceived      OrderStatus = "received"
	OrderStatusIssued        OrderStatus = "issued"
	OrderStatusSentToCourier OrderStatus = "sent-to-courier"
	OrderStatusInTransit     OrderStatus = "in-transit"
	OrderStatusDelivered     OrderStatus = "delivered"
	OrderStatusCancelled     OrderStatus = "cancelled"

	// OrderStatusSendedLegacy 历史库里 sent-to-courier 的旧写法 仅作兼容读取
	OrderStatusSendedLegacy OrderStatus = "sended"
)

// Canonical 把历史写法折算成规范状态
func (s OrderStatus) Canonical() OrderStatus {
	if s == OrderStatusSendedLegacy {
		return OrderStatusSentToCourier
	}
	return s
}

// Valid 判断是否为枚举内的状态值
func (s OrderStatus) Valid() bool {
	switch s.Canonical() {
	case OrderStatusReceived, OrderStatusIssued, OrderStatusSentToCourier,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal 终态不再接受任何状态变更
func (s OrderStatus) Terminal() bool {
	c := s.Canonical()
	return c == OrderStatusDelivered || c == OrderStatusCancelled
}

// CourierStatuses 快递侧关注的状态集合 含历史写法
func CourierStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusSentToCourier, OrderStatusSendedLegacy,
		OrderStatusInTransit, OrderStatusDelivered,
	}
}

// Order 订单模型
// product_name 是下单时的商品快照 商品后续修改或删除不回写
// 列名沿用旧库的驼峰写法 迁移期间新旧服务共用同一张表
type Order struct {
	ID          int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID     string      `gorm:"column:order_id;size:20;not null;uniqueIndex" json:"order_id"`
	FullName    string      `gorm:"column:fullName;size:100;not null" json:"fullName"`
	Address     string      `gorm:"column:address;type:text;not null" json:"address"`
	Mobile      string      `gorm:"column:mobile;size:15;not null" json:"mobile"`
	ProductID   *string     `gorm:"column:product_id;size:20;index" json:"product_id"`
	ProductName string      `gorm:"column:product_name;size:200;not null" json:"product_name"`
	Quantity    int         `gorm:"column:quantity;not null" json:"quantity"`
	Status      OrderStatus `gorm:"column:status;size:20;default:received;index" json:"status"`
	Notes       string      `gorm:"column:notes;type:text" json:"notes"`
	TotalAmount float64     `gorm:"column:total_amount;type:decimal(10,2)" json:"total_amount"`
	CreatedAt   time.Time   `gorm:"column:createdAt;autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
