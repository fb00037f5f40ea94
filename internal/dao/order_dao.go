package dao

import (
	"context"
	"strings"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"gorm.io/gorm"
)

// withUpdatedAt 复制updates并补上updatedAt 不改动调用方的map
func withUpdatedAt(updates map[string]interface{}) map[string]interface{} {
	values := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	values["updatedAt"] = time.Now()
	return values
}

type OrderDao struct {
	db *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	return &OrderDao{
		db: db,
	}
}

// OrderFilter 订单列表过滤条件
// Start/End 为闭开区间 [Start, End) 由service层从日期字符串解析
type OrderFilter struct {
	Status model.OrderStatus
	Search string
	Start  time.Time
	End    time.Time
	Page   int
	Limit  int
}

// CreateOrder 创建订单
// order_id 冲突时返回 gorm.ErrDuplicatedKey 由service层换新编号重试
func (d *OrderDao) CreateOrder(ctx context.Context, order *model.Order) error {
	return d.db.WithContext(ctx).Create(order).Error
}

// GetOrderByID 根据ID获取订单
func (d *OrderDao) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	err := d.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// applyFilter 把过滤条件拼到查询上 全部走参数化
func (d *OrderDao) applyFilter(query *gorm.DB, filter OrderFilter) *gorm.DB {
	if filter.Status != "" {
		canonical := filter.Status.Canonical()
		if canonical == model.OrderStatusSentToCourier {
			// 历史库中存在 sended 写法 两种拼写都要命中
			query = query.Where("status IN ?", []model.OrderStatus{
				model.OrderStatusSentToCourier, model.OrderStatusSendedLegacy,
			})
		} else {
			query = query.Where("status = ?", canonical)
		}
	}

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(fullName) LIKE ? OR LOWER(mobile) LIKE ? OR LOWER(order_id) LIKE ?",
			term, term, term,
		)
	}

	if !filter.Start.IsZero() {
		query = query.Where("createdAt >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		query = query.Where("createdAt < ?", filter.End)
	}

	return query
}

// ListOrders 过滤查询订单
// Limit>0 时分页并返回总数 否则返回全部匹配行
// 排序固定 createdAt DESC 同时间戳再按 id DESC 保证稳定
func (d *OrderDao) ListOrders(ctx context.Context, filter OrderFilter) ([]*model.Order, int64, error) {
	var orders []*model.Order
	var total int64

	base := d.applyFilter(d.db.WithContext(ctx).Model(&model.Order{}), filter)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := d.applyFilter(d.db.WithContext(ctx).Model(&model.Order{}), filter).
		Order("createdAt DESC, id DESC")

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.Limit).Offset((page - 1) * filter.Limit)
	}

	err := query.Find(&orders).Error
	return orders, total, err
}

// ListCourierOrders 快递侧订单 按最近更新排序
func (d *OrderDao) ListCourierOrders(ctx context.Context, page, limit int) ([]*model.Order, int64, error) {
	var orders []*model.Order
	var total int64

	statuses := model.CourierStatuses()

	if err := d.db.WithContext(ctx).Model(&model.Order{}).
		Where("status IN ?", statuses).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := d.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("updatedAt DESC, id DESC")

	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Limit(limit).Offset((page - 1) * limit)
	}

	err := query.Find(&orders).Error
	return orders, total, err
}

// UpdateOrder 部分字段更新 刷新updatedAt
// order_id 和 createdAt 永不进入updates
func (d *OrderDao) UpdateOrder(ctx context.Context, orderID int64, updates map[string]interface{}) error {
	// 调用方的map不动 时间戳写进副本
	values := withUpdatedAt(updates)
	result := d.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOrder 硬删除
func (d *OrderDao) DeleteOrder(ctx context.Context, orderID int64) error {
	result := d.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAll 订单总数
func (d *OrderDao) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	return total, err
}

// CountCreatedBetween 按创建时间闭开区间计数 用于今日/本月指标
func (d *OrderDao) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Order{}).
		Where("createdAt >= ? AND createdAt < ?", start, end).
		Count(&count).Error
	return count, err
}

// StatusCounts 各状态订单数 历史写法原样返回 归并交给聚合层
func (d *OrderDao) StatusCounts(ctx context.Context) (map[model.OrderStatus]int64, error) {
	type row struct {
		Status model.OrderStatus
		Count  int64
	}
	var rows []row
	err := d.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] += r.Count
	}
	return counts, nil
}

// SumTotalAmount 全部订单金额合计
func (d *OrderDao) SumTotalAmount(ctx context.Context) (float64, error) {
	var revenue float64
	err := d.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// ClearProductRef 商品删除时把引用置空 快照字段保持不动
func (d *OrderDao) ClearProductRef(ctx context.Context, productID string) error {
	return d.db.WithContext(ctx).Model(&model.Order{}).
		Where("product_id = ?", productID).
		Update("product_id", nil).Error
}
