package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(dao.NewProductDao(db))
}

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Virgin Coconut Oil 375ml",
		Price:    10000.00,
		Category: "oil",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PROD\d{4}$`), product.ProductID)
	assert.Equal(t, model.ProductStatusAvailable, product.Status, "status defaults to available")
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{Name: "  ", Price: 10})
	assert.Equal(t, e.INVALID_PARAMS, appCode(t, err))

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Oil", Price: -1})
	assert.Equal(t, e.INVALID_PARAMS, appCode(t, err))

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Oil", Price: 10, Status: "sold-out"})
	assert.Equal(t, e.INVALID_PARAMS, appCode(t, err))
}

func TestCreateProductDuplicateID(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{ProductID: "PROD777", Name: "Oil A", Price: 10})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, CreateProductInput{ProductID: "PROD777", Name: "Oil B", Price: 20})
	assert.Equal(t, e.ERROR_PRODUCT_ID_EXISTS, appCode(t, err))
}

func TestUpdateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	product := seedProduct(t, db, "PROD010", "Coconut Oil", 10000)
	ctx := context.Background()

	price := 12000.00
	status := string(model.ProductStatusOutOfStock)
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{Price: &price, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 12000.00, updated.Price)
	assert.Equal(t, model.ProductStatusOutOfStock, updated.Status)

	_, err = svc.UpdateProduct(ctx, product.ID, UpdateProductInput{})
	assert.Equal(t, e.INVALID_PARAMS, appCode(t, err))

	_, err = svc.UpdateProduct(ctx, 9999, UpdateProductInput{Price: &price})
	assert.Equal(t, e.ERROR_PRODUCT_NOT_EXISTS, appCode(t, err))
}

func TestDeleteProductKeepsOrderSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	product := seedProduct(t, db, "PROD001", "Virgin Coconut Oil 375ml", 10000)
	order := seedOrder(t, db, "ORD20260801000070001", model.OrderStatusReceived, 10000, time.Time{})
	ctx := context.Background()

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	_, err := svc.GetProduct(ctx, product.ID)
	assert.Equal(t, e.ERROR_PRODUCT_NOT_EXISTS, appCode(t, err))

	// 订单保留名称快照 引用被置空
	var stored model.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Nil(t, stored.ProductID)
	assert.Equal(t, "Virgin Coconut Oil 375ml", stored.ProductName)
}

func TestProductStats(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	seedProduct(t, db, "PROD020", "A", 10)
	seedProduct(t, db, "PROD021", "B", 10)
	out := seedProduct(t, db, "PROD022", "C", 10)
	require.NoError(t, db.Model(out).UpdateColumn("status", model.ProductStatusOutOfStock).Error)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.Available)
	assert.EqualValues(t, 1, stats.OutOfStock)
	assert.EqualValues(t, 0, stats.Discontinued)
}
