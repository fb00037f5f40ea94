package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/logger"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"

	"gorm.io/gorm"
)

// 订单编号冲突时的重试次数 冲突本身已经是极小概率事件
const orderIDRetries = 3

// orderTransitions 前向状态图
// received → issued → sent-to-courier → in-transit → delivered
// cancelled 可从任意非终态进入 旧系统允许任意跳转 这里收紧
var orderTransitions = map[model.OrderStatus]model.OrderStatus{
	model.OrderStatusReceived:      model.OrderStatusIssued,
	model.OrderStatusIssued:        model.OrderStatusSentToCourier,
	model.OrderStatusSentToCourier: model.OrderStatusInTransit,
	model.OrderStatusInTransit:     model.OrderStatusDelivered,
}

// canTransition 校验状态迁移
// 同状态重复提交视为幂等no-op 终态只接受no-op
func canTransition(from, to model.OrderStatus) bool {
	from = from.Canonical()
	to = to.Canonical()

	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == model.OrderStatusCancelled {
		return true
	}
	return orderTransitions[from] == to
}

// OrderService 订单生命周期引擎
type OrderService struct {
	orderDao         *dao.OrderDao
	productDao       *dao.ProductDao
	defaultProductID string
}

func NewOrderService(orderDao *dao.OrderDao, productDao *dao.ProductDao, defaultProductID string) *OrderService {
	return &OrderService{
		orderDao:         orderDao,
		productDao:       productDao,
		defaultProductID: defaultProductID,
	}
}

// CreateOrderInput 下单入参 来自公共表单或后台
type CreateOrderInput struct {
	FullName string
	Address  string
	Mobile   string
	Product  string // 业务商品编号 缺省用配置的默认商品
	Quantity int
	Notes    string
}

// CreateOrder 创建订单
// 状态固定received 金额按下单时商品单价计算 之后不再重算
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error) {
	fullName := strings.TrimSpace(input.FullName)
	address := strings.TrimSpace(input.Address)
	mobile := utils.NormalizeMobile(strings.TrimSpace(input.Mobile))

	if fullName == "" || address == "" || mobile == "" {
		return nil, e.NewMsg(e.INVALID_PARAMS, "All fields are required")
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	productID := strings.TrimSpace(input.Product)
	if productID == "" {
		productID = s.defaultProductID
	}

	// 商品必须可解析 旧系统的默认商品兜底已移除
	// 这里报的是下单入参错误(400) 不是商品详情的404
	product, err := s.productDao.GetProductByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_ORDER_PRODUCT_INVALID)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	order := &model.Order{
		FullName:    fullName,
		Address:     address,
		Mobile:      mobile,
		ProductID:   &product.ProductID,
		ProductName: product.Name,
		Quantity:    quantity,
		Status:      model.OrderStatusReceived,
		Notes:       input.Notes,
		TotalAmount: product.Price * float64(quantity),
	}

	// 编号含毫秒时间戳和随机数 冲突时换新编号重试 唯一性由数据库索引兜底
	for attempt := 0; attempt < orderIDRetries; attempt++ {
		order.OrderID = utils.GenerateOrderID(time.Now())
		err = s.orderDao.CreateOrder(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, e.Wrap(e.ERROR, err)
		}
		logger.WarnContext(ctx, "order id collision, retrying", "order_id", order.OrderID)
	}
	return nil, e.New(e.ERROR_ORDER_ID_DUPLICATE)
}

// GetOrder 按数据库ID获取订单
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderDao.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_ORDER_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}
	return order, nil
}

// UpdateStatus 订单状态迁移
// 非法状态值直接拒绝 不触库 迁移不合状态图返回迁移错误
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, e.New(e.ERROR_ORDER_STATUS)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canTransition(order.Status, status) {
		return nil, e.New(e.ERROR_ORDER_STATUS_TRANSITION)
	}

	// 入库统一规范写法 历史sended到此为止
	if err := s.orderDao.UpdateOrder(ctx, id, map[string]interface{}{
		"status": status.Canonical(),
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_ORDER_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	return s.GetOrder(ctx, id)
}

// UpdateOrderInput 整单编辑入参
// 指针字段区分"没传"和"传了空值" 只更新出现的列
type UpdateOrderInput struct {
	FullName *string
	Address  *string
	Mobile   *string
	Product  *string
	Quantity *int
	Status   *string
	Notes    *string
}

// UpdateOrder 部分字段更新
// order_id 和 createdAt 不可变 金额仅在商品或数量变化时重算
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, input UpdateOrderInput) (*model.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, e.NewMsg(e.INVALID_PARAMS, "fullName cannot be empty")
		}
		updates["fullName"] = name
	}
	if input.Address != nil {
		addr := strings.TrimSpace(*input.Address)
		if addr == "" {
			return nil, e.NewMsg(e.INVALID_PARAMS, "address cannot be empty")
		}
		updates["address"] = addr
	}
	if input.Mobile != nil {
		mobile := utils.NormalizeMobile(strings.TrimSpace(*input.Mobile))
		if mobile == "" {
			return nil, e.NewMsg(e.INVALID_PARAMS, "mobile cannot be empty")
		}
		updates["mobile"] = mobile
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	quantity := order.Quantity
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, e.NewMsg(e.INVALID_PARAMS, "quantity must be at least 1")
		}
		quantity = *input.Quantity
		updates["quantity"] = quantity
	}

	if input.Product != nil {
		// 换商品重新做快照 金额按新单价重算
		product, err := s.productDao.GetProductByProductID(ctx, strings.TrimSpace(*input.Product))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, e.New(e.ERROR_ORDER_PRODUCT_INVALID)
			}
			return nil, e.Wrap(e.ERROR, err)
		}
		updates["product_id"] = product.ProductID
		updates["product_name"] = product.Name
		updates["total_amount"] = product.Price * float64(quantity)
	} else if input.Quantity != nil && order.Quantity > 0 {
		// 只改数量 从存量订单反推单价 不回查商品现价
		unitPrice := order.TotalAmount / float64(order.Quantity)
		updates["total_amount"] = unitPrice * float64(quantity)
	}

	if input.Status != nil {
		status := model.OrderStatus(*input.Status)
		if !status.Valid() {
			return nil, e.New(e.ERROR_ORDER_STATUS)
		}
		if !canTransition(order.Status, status) {
			return nil, e.New(e.ERROR_ORDER_STATUS_TRANSITION)
		}
		updates["status"] = status.Canonical()
	}

	if len(updates) == 0 {
		return nil, e.NewMsg(e.INVALID_PARAMS, "No fields to update")
	}

	if err := s.orderDao.UpdateOrder(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.New(e.ERROR_ORDER_NOT_EXISTS)
		}
		return nil, e.Wrap(e.ERROR, err)
	}

	return s.GetOrder(ctx, id)
}

// DeleteOrder 硬删除订单
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	err := s.orderDao.DeleteOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e.New(e.ERROR_ORDER_NOT_EXISTS)
		}
		return e.Wrap(e.ERROR, err)
	}
	return nil
}

// ListOrdersQuery HTTP查询参数的原始形态
type ListOrdersQuery struct {
	Status    string
	Search    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// ListOrders 过滤查询
// 日期为闭区间 内部转成[start, end+1d)
func (s *OrderService) ListOrders(ctx context.Context, query ListOrdersQuery) ([]*model.Order, int64, error) {
	filter := dao.OrderFilter{
		Search: strings.TrimSpace(query.Search),
		Page:   query.Page,
		Limit:  query.Limit,
	}

	if query.Status != "" && query.Status != "all" {
		status := model.OrderStatus(query.Status)
		if !status.Valid() {
			return nil, 0, e.New(e.ERROR_ORDER_STATUS)
		}
		filter.Status = status
	}

	// 两端独立生效 只传一端就做单边过滤
	if query.StartDate != "" {
		start, err := time.ParseInLocation("2006-01-02", query.StartDate, time.Local)
		if err != nil {
			return nil, 0, e.NewMsg(e.INVALID_PARAMS, "Invalid startDate")
		}
		filter.Start = start
	}
	if query.EndDate != "" {
		end, err := time.ParseInLocation("2006-01-02", query.EndDate, time.Local)
		if err != nil {
			return nil, 0, e.NewMsg(e.INVALID_PARAMS, "Invalid endDate")
		}
		filter.End = end.AddDate(0, 0, 1)
	}

	orders, total, err := s.orderDao.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, e.Wrap(e.ERROR, err)
	}
	return orders, total, nil
}

// CourierOrders 快递侧订单列表
func (s *OrderService) CourierOrders(ctx context.Context, page, limit int) ([]*model.Order, int64, error) {
	orders, total, err := s.orderDao.ListCourierOrders(ctx, page, limit)
	if err != nil {
		return nil, 0, e.Wrap(e.ERROR, err)
	}
	return orders, total, nil
}
