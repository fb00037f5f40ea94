package model

import "time"

// ProductStatus 商品状态
type ProductStatus string

const (
	ProductStatusAvailable    ProductStatus = "available"
	ProductStatusOutOfStock   ProductStatus = "out-of-stock"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Valid 判断是否为枚举内的商品状态
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusOutOfStock, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product 商品模型
// ProductID 是对外的业务编号(PROD####) 订单通过它软引用商品
type Product struct {
	ID          int64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID   string        `gorm:"column:product_id;size:20;not null;uniqueIndex" json:"product_id"`
	Name        string        `gorm:"column:name;size:200;not null" json:"name"`
	Description string        `gorm:"column:description;type:text" json:"description"`
	Price       float64       `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Status      ProductStatus `gorm:"column:status;size:20;default:available" json:"status"`
	Category    string        `gorm:"column:category;size:100" json:"category"`
	Image       string        `gorm:"column:image;size:500" json:"image"`
	CreatedAt   time.Time     `gorm:"column:createdAt;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"column:updatedAt;autoUpdateTime" json:"updatedAt"`
}

func (*Product) TableName() string {
	return "products"
}
