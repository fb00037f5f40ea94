package service

import (
	"errors"
	"testing"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个内存库 结构与生产迁移一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.Inquiry{}))
	return db
}

func newOrderService(t *testing.T, db *gorm.DB) *OrderService {
	t.Helper()
	return NewOrderService(dao.NewOrderDao(db), dao.NewProductDao(db), "PROD001")
}

func seedProduct(t *testing.T, db *gorm.DB, productID, name string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Status:    model.ProductStatusAvailable,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedOrder(t *testing.T, db *gorm.DB, orderID string, status model.OrderStatus, total float64, createdAt time.Time) *model.Order {
	t.Helper()
	productID := "PROD001"
	order := &model.Order{
		OrderID:     orderID,
		FullName:    "Seed Customer",
		Address:     "12 Main Street, Colombo",
		Mobile:      "0771234567",
		ProductID:   &productID,
		ProductName: "Virgin Coconut Oil 375ml",
		Quantity:    1,
		Status:      status,
		TotalAmount: total,
	}
	require.NoError(t, db.Create(order).Error)
	if !createdAt.IsZero() {
		require.NoError(t, db.Model(order).UpdateColumn("createdAt", createdAt).Error)
	}
	return order
}

// appCode 取出业务错误码 非业务错误直接失败
func appCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var appErr *e.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	return appErr.Code
}
