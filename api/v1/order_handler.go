package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/service"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/gin-gonic/gin"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterPublicRoutes 公共下单入口 无需认证
func (h *OrderHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.CreateOrder)
}

// RegisterRoutes 后台订单路由（需 JWT）
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.ListOrders)
	rg.GET("/orders/:id", h.GetOrder)
	rg.PUT("/orders/:id", h.UpdateOrder)
	rg.PUT("/orders/:id/status", h.UpdateStatus)
	rg.GET("/courier/orders", h.CourierOrders)
}

// RegisterAdminRoutes 仅管理员可用的订单路由
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/orders/:id", h.DeleteOrder)
}

// flexInt 数量字段兼容数字和字符串两种提交 旧表单发的是字符串
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type createOrderRequest struct {
	FullName string  `json:"fullName"`
	Address  string  `json:"address"`
	Mobile   string  `json:"mobile"`
	Product  string  `json:"product"`
	Quantity flexInt `json:"quantity"`
	Notes    string  `json:"notes"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		FullName: req.FullName,
		Address:  req.Address,
		Mobile:   req.Mobile,
		Product:  req.Product,
		Quantity: int(req.Quantity),
		Notes:    req.Notes,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"data":    order,
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	query := service.ListOrdersQuery{
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Page:      toInt(c.DefaultQuery("page", "1")),
		Limit:     toInt(c.Query("limit")),
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), query)
	if err != nil {
		Fail(c, err)
		return
	}

	if query.Limit > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		OK(c, http.StatusOK, gin.H{
			"data": gin.H{
				"orders": orders,
				"total":  total,
				"page":   page,
				"limit":  query.Limit,
			},
		})
		return
	}

	OK(c, http.StatusOK, gin.H{
		"data":  orders,
		"count": len(orders),
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"data": order})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Status is required"))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    order,
	})
}

type updateOrderRequest struct {
	FullName *string  `json:"fullName"`
	Address  *string  `json:"address"`
	Mobile   *string  `json:"mobile"`
	Product  *string  `json:"product"`
	Quantity *flexInt `json:"quantity"`
	Status   *string  `json:"status"`
	Notes    *string  `json:"notes"`
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	input := service.UpdateOrderInput{
		FullName: req.FullName,
		Address:  req.Address,
		Mobile:   req.Mobile,
		Product:  req.Product,
		Status:   req.Status,
		Notes:    req.Notes,
	}
	if req.Quantity != nil {
		qty := int(*req.Quantity)
		input.Quantity = &qty
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"data":    order,
	})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (h *OrderHandler) CourierOrders(c *gin.Context) {
	page := toInt(c.DefaultQuery("page", "1"))
	limit := toInt(c.Query("limit"))

	orders, total, err := h.orderService.CourierOrders(c.Request.Context(), page, limit)
	if err != nil {
		Fail(c, err)
		return
	}

	if limit > 0 {
		if page < 1 {
			page = 1
		}
		OK(c, http.StatusOK, gin.H{
			"data": gin.H{
				"orders": orders,
				"total":  total,
				"page":   page,
				"limit":  limit,
			},
		})
		return
	}

	OK(c, http.StatusOK, gin.H{
		"data":  orders,
		"count": len(orders),
	})
}
