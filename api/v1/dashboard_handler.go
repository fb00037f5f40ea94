package v1

import (
	"net/http"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/service"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘统计 HTTP 处理器
type DashboardHandler struct {
	statsService *service.StatsService
}

func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
	rg.GET("/analytics", h.Analytics)
}

// Stats 统计失败时降级为全零 保证面板始终可渲染
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.DashboardStats(c.Request.Context())
	if err != nil {
		logger.Error("dashboard stats degraded", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"data":            service.DashboardStats{},
			"database_status": "disconnected",
		})
		return
	}

	OK(c, http.StatusOK, gin.H{
		"data":            stats,
		"database_status": "connected",
	})
}

func (h *DashboardHandler) Analytics(c *gin.Context) {
	analytics, err := h.statsService.Analytics(c.Request.Context())
	if err != nil {
		logger.Error("analytics degraded", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"data":            service.Analytics{StatusData: []service.StatusSlice{}},
			"database_status": "disconnected",
		})
		return
	}

	OK(c, http.StatusOK, gin.H{
		"data":            analytics,
		"database_status": "connected",
	})
}
