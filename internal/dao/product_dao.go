package dao

import (
	"context"
	"strings"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"gorm.io/gorm"
)

type ProductDao struct {
	db *gorm.DB
}

func NewProductDao(db *gorm.DB) *ProductDao {
	return &ProductDao{db: db}
}

// ProductFilter 商品列表过滤条件
type ProductFilter struct {
	Status   model.ProductStatus
	Category string
	Search   string
	Limit    int
}

// CreateProduct 创建商品
func (d *ProductDao) CreateProduct(ctx context.Context, product *model.Product) error {
	return d.db.WithContext(ctx).Create(product).Error
}

// GetProductByID 根据数据库ID获取商品
func (d *ProductDao) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductByProductID 根据业务编号获取商品
func (d *ProductDao) GetProductByProductID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := d.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductIDExists 检查业务编号是否被占用
func (d *ProductDao) ProductIDExists(ctx context.Context, productID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListProducts 按条件查询商品
func (d *ProductDao) ListProducts(ctx context.Context, filter ProductFilter) ([]*model.Product, error) {
	query := d.db.WithContext(ctx).Model(&model.Product{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(product_id) LIKE ?",
			term, term, term,
		)
	}

	query = query.Order("createdAt DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []*model.Product
	err := query.Find(&products).Error
	return products, err
}

// UpdateProduct 部分字段更新
func (d *ProductDao) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	result := d.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).Updates(withUpdatedAt(updates))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProduct 删除商品并把存量订单的引用置空
// 软外键 订单侧快照字段不动 单事务保证两步一致
func (d *ProductDao) DeleteProduct(ctx context.Context, product *model.Product) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Order{}).
			Where("product_id = ?", product.ProductID).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, product.ID).Error
	})
}

// StatusCounts 各状态商品数
func (d *ProductDao) StatusCounts(ctx context.Context) (map[model.ProductStatus]int64, error) {
	type row struct {
		Status model.ProductStatus
		Count  int64
	}
	var rows []row
	err := d.db.WithContext(ctx).Model(&model.Product{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.ProductStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
