package v1

import (
	"net/http"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/service"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/gin-gonic/gin"
)

// InquiryHandler 客户咨询 HTTP 处理器
type InquiryHandler struct {
	inquiryService *service.InquiryService
}

func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// RegisterPublicRoutes 公共咨询提交入口
func (h *InquiryHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/inquiries", h.CreateInquiry)
}

func (h *InquiryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inquiries", h.ListInquiries)
	rg.PUT("/inquiries/:id/status", h.UpdateStatus)
}

func (h *InquiryHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/inquiries/:id", h.DeleteInquiry)
}

type createInquiryRequest struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
}

func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	inquiry, err := h.inquiryService.CreateInquiry(c.Request.Context(), service.CreateInquiryInput{
		Message: req.Message,
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusCreated, gin.H{
		"message": "Inquiry submitted successfully",
		"data":    inquiry,
	})
}

func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	inquiries, err := h.inquiryService.ListInquiries(c.Request.Context(), c.Query("status"), toInt(c.Query("limit")))
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"data":  inquiries,
		"count": len(inquiries),
	})
}

func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Status is required"))
		return
	}

	inquiry, err := h.inquiryService.UpdateStatus(c.Request.Context(), id, model.InquiryStatus(req.Status))
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message": "Inquiry status updated successfully",
		"data":    inquiry,
	})
}

func (h *InquiryHandler) DeleteInquiry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.inquiryService.DeleteInquiry(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"message": "Inquiry deleted successfully"})
}
