package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"

	"gorm.io/gorm"
)

type ProductService struct {
	productDao *dao.ProductDao
}

func NewProductService(productDao *dao.ProductDao) *ProductService {
	return &ProductService{
		productDao: productDao,
	}
}

// CreateProductInput 创建商品入参
type CreateProductInput struct {
	ProductID   string
	Name        string
	Description string
	Price       float64
	Status      string
	Category    string
	Image       string
}

// CreateProduct 创建商品 业务编号未提供时自动生成
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Product name is required")
	}
	if input.Price < 0 {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Price cannot be negative")
	}

	status := model.ProductStatus(input.Status)
	if input.Status == "" {
		status = model.ProductStatusAvailable
	}
	if !status.Valid() {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Invalid product status")
	}

	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		productID = utils.GenerateProductID()
	}

	exists, err := s.productDao.ProductIDExists(ctx, productID)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	if exists {
		return nil, e.New(e.ERROR_PRODUCT_ID_EXISTS)
	}

	product := &model.Product{
		ProductID:   productID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Status:      status,
		Category:    input.Category,
		Image:       input.Image,
	}

	if err := s.productDao.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, e.New(e.ERROR_PRODUCT_ID_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	return product, nil
}

// GetProduct 获取商品详情
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productDao.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_PRODUCT_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}
	return product, nil
}

// ListProducts 商品列表
func (s *ProductService) ListProducts(ctx context.Context, filter dao.ProductFilter) ([]*model.Product, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Invalid product status")
	}
	products, err := s.productDao.ListProducts(ctx, filter)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}
	return products, nil
}

// UpdateProductInput 商品编辑入参 指针字段区分没传和空值
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Status      *string
	Category    *string
	Image       *string
}

// UpdateProduct 部分字段更新
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*model.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, e.NewMsg(e.INVALID_PARAMS, "Product name is required")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, e.NewMsg(e.INVALID_PARAMS, "Price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Status != nil {
		status := model.ProductStatus(*input.Status)
		if !status.Valid() {
			return nil, e.NewMsg(e.INVALID_PARAMS, "Invalid product status")
		}
		updates["status"] = status
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}

	if len(updates) == 0 {
		return nil, e.NewMsg(e.INVALID_PARAMS, "No fields to update")
	}

	if err := s.productDao.UpdateProduct(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_PRODUCT_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	return s.GetProduct(ctx, id)
}

// UpdateStatus 仅更新商品状态
func (s *ProductService) UpdateStatus(ctx context.Context, id int64, status model.ProductStatus) (*model.Product, error) {
	if !status.Valid() {
		return nil, e.NewMsg(e.INVALID_PARAMS, "Invalid product status")
	}
	statusStr := string(status)
	return s.UpdateProduct(ctx, id, UpdateProductInput{Status: &statusStr})
}

// DeleteProduct 删除商品
// 存量订单保留名称快照 引用置空 订单本身不动
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productDao.DeleteProduct(ctx, product); err != nil {
		return e.Wrap(e.ERROR, err)
	}
	return nil
}

// ProductStats 各状态商品计数
type ProductStats struct {
	Total        int64 `json:"total"`
	Available    int64 `json:"available"`
	OutOfStock   int64 `json:"outOfStock"`
	Discontinued int64 `json:"discontinued"`
}

// Stats 商品统计
func (s *ProductService) Stats(ctx context.Context) (*ProductStats, error) {
	counts, err := s.productDao.StatusCounts(ctx)
	if err != nil {
		return nil, e.Wrap(e.ERROR, err)
	}

	stats := &ProductStats{
		Available:    counts[model.ProductStatusAvailable],
		OutOfStock:   counts[model.ProductStatusOutOfStock],
		Discontinued: counts[model.ProductStatusDiscontinued],
	}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}
