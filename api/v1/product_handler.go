package v1

import (
	"net/http"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/service"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/gin-gonic/gin"
)

// ProductHandler 商品目录 HTTP 处理器
type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/stats", h.Stats)
	rg.GET("/products/:id", h.GetProduct)
	rg.POST("/products", h.CreateProduct)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.PUT("/products/:id/status", h.UpdateStatus)
}

func (h *ProductHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/products/:id", h.DeleteProduct)
}

type createProductRequest struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), service.CreateProductInput{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := dao.ProductFilter{
		Status:   model.ProductStatus(c.Query("status")),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    toInt(c.Query("limit")),
	}

	products, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"data":  products,
		"count": len(products),
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"data": product})
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

func (h *ProductHandler) UpdateStatus(c *gin.Context) {
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

	product, err := h.productService.UpdateStatus(c.Request.Context(), id, model.ProductStatus(req.Status))
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message": "Product status updated successfully",
		"data":    product,
	})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.productService.Stats(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"data": stats})
}
