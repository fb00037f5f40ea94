package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/api/middleware"
	v1 "github.com/RuchiraRanasinghe/order-manement-System-backend/api/v1"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/cache"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao/mysql"
	redisdao "github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao/redis"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/service"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/app"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/logger"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"
)

func main() {
	// 加载配置
	cfg := app.BootstrapApp()

	// 设置Gin模式
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// 初始化数据库
	db, err := mysql.InitDB(&cfg.Database.Mysql)
	if err != nil {
		logger.Fatal("Failed to init database", "err", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.Inquiry{}); err != nil {
		logger.Fatal("Failed to migrate database", "err", err)
	}

	// Redis 仅作凭证缓存 连不上不影响启动
	rdb, err := redisdao.InitRedis(&cfg.Database.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, principal cache disabled", "err", err)
		rdb = nil
	}

	// DAO 层
	orderDao := dao.NewOrderDao(db)
	productDao := dao.NewProductDao(db)
	userDao := dao.NewUserDao(db)
	inquiryDao := dao.NewInquiryDao(db)

	// Service 层
	jwtUtil := utils.NewJWTUtil(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	orderService := service.NewOrderService(orderDao, productDao, cfg.Orders.DefaultProductID)
	statsService := service.NewStatsService(orderDao)
	authService := service.NewAuthService(userDao, jwtUtil, cfg.Auth.Emergency)
	userService := service.NewUserService(userDao, cache.NewPrincipalCache(rdb))
	productService := service.NewProductService(productDao)
	inquiryService := service.NewInquiryService(inquiryDao)

	// 初始化Gin引擎
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.GlobalRateLimit(cfg))

	// 健康检查接口
	r.GET("/api/health", func(c *gin.Context) {
		dbStatus := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "disconnected"
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"status":   "ok",
			"database": dbStatus,
		})
	})

	// 创建处理器实例
	authHandler := v1.NewAuthHandler(authService, userService)
	orderHandler := v1.NewOrderHandler(orderService)
	productHandler := v1.NewProductHandler(productService)
	inquiryHandler := v1.NewInquiryHandler(inquiryService)
	dashboardHandler := v1.NewDashboardHandler(statsService)

	// 定义API路由组
	api := r.Group("/api")
	{
		// 公共路由（无需认证）
		authHandler.RegisterPublicRoutes(api)
		inquiryHandler.RegisterPublicRoutes(api)

		// 公共下单入口带独立限流
		public := api.Group("")
		public.Use(middleware.OrderRateLimit(cfg))
		{
			orderHandler.RegisterPublicRoutes(public)
		}

		// 受保护的路由组（需要JWT认证）
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(jwtUtil))
		{
			authHandler.RegisterRoutes(protected)
			orderHandler.RegisterRoutes(protected)
			productHandler.RegisterRoutes(protected)
			inquiryHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)

			// 管理员路由
			admin := protected.Group("")
			admin.Use(middleware.RequireRole(model.RoleAdmin))
			{
				authHandler.RegisterAdminRoutes(admin)
				orderHandler.RegisterAdminRoutes(admin)
				productHandler.RegisterAdminRoutes(admin)
				inquiryHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	// 启动服务
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Order management server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", "err", err)
	}
}
