package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/api/middleware"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/config"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/cache"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/dao"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/model"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/service"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	jwtUtil *utils.JWTUtil
}

// newTestEnv 组装一套与生产同构的路由 后端换成内存库
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.Inquiry{}))

	orderDao := dao.NewOrderDao(db)
	productDao := dao.NewProductDao(db)
	userDao := dao.NewUserDao(db)
	inquiryDao := dao.NewInquiryDao(db)

	jwtUtil := utils.NewJWTUtil("handler-test-secret", 24)
	orderService := service.NewOrderService(orderDao, productDao, "PROD001")
	statsService := service.NewStatsService(orderDao)
	authService := service.NewAuthService(userDao, jwtUtil, config.EmergencyConfig{})
	userService := service.NewUserService(userDao, cache.NewPrincipalCache(nil))
	productService := service.NewProductService(productDao)
	inquiryService := service.NewInquiryService(inquiryDao)

	authHandler := NewAuthHandler(authService, userService)
	orderHandler := NewOrderHandler(orderService)
	productHandler := NewProductHandler(productService)
	inquiryHandler := NewInquiryHandler(inquiryService)
	dashboardHandler := NewDashboardHandler(statsService)

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)
		inquiryHandler.RegisterPublicRoutes(api)
		orderHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(jwtUtil))
		{
			authHandler.RegisterRoutes(protected)
			orderHandler.RegisterRoutes(protected)
			productHandler.RegisterRoutes(protected)
			inquiryHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)

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

	return &testEnv{db: db, router: r, jwtUtil: jwtUtil}
}

func (env *testEnv) seedProduct(t *testing.T, productID, name string, price float64) {
	t.Helper()
	require.NoError(t, env.db.Create(&model.Product{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Status:    model.ProductStatusAvailable,
	}).Error)
}

func (env *testEnv) token(t *testing.T, role string) string {
	t.Helper()
	token, err := env.jwtUtil.GenerateToken(1, "tester@nirvaan.lk", role)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed), "body: %s", rec.Body.String())
	return rec, parsed
}

func TestPublicOrderSubmission(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "PROD001", "Virgin Coconut Oil 375ml", 10000.00)

	rec, body := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{
		"fullName": "Kamal Perera",
		"address":  "45 Temple Road, Kandy",
		"mobile":   "0771234567",
		"quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "received", data["status"])
	assert.Equal(t, 20000.00, data["total_amount"])
}

func TestPublicOrderQuantityAsString(t *testing.T) {
	// 旧前端把数量当字符串传
	env := newTestEnv(t)
	env.seedProduct(t, "PROD001", "Virgin Coconut Oil 375ml", 10000.00)

	rec, body := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{
		"fullName": "Kamal Perera",
		"address":  "45 Temple Road, Kandy",
		"mobile":   "0771234567",
		"quantity": "3",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, 3.0, data["quantity"])
	assert.Equal(t, 30000.00, data["total_amount"])
}

func TestPublicOrderValidationEnvelope(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "PROD001", "Virgin Coconut Oil 375ml", 10000.00)

	rec, body := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{
		"fullName": "",
		"address":  "",
		"mobile":   "",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, e.INVALID_PARAMS, body["code"])
	assert.Equal(t, "All fields are required", body["message"])
}

func TestPublicOrderUnknownProductIsBadRequest(t *testing.T) {
	// 下单时商品解析失败是入参错误 报400 404留给商品详情接口
	env := newTestEnv(t)
	env.seedProduct(t, "PROD001", "Virgin Coconut Oil 375ml", 10000.00)

	rec, body := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{
		"fullName": "Kamal Perera",
		"address":  "45 Temple Road",
		"mobile":   "0771234567",
		"product":  "PROD999",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, e.ERROR_ORDER_PRODUCT_INVALID, body["code"])
}

func TestOrderRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = env.do(t, http.MethodGet, "/api/orders", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderListEnvelopes(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "PROD001", "Virgin Coconut Oil 375ml", 10000.00)
	token := env.token(t, model.RoleStaff)

	for i := 0; i < 7; i++ {
		rec, _ := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{
			"fullName": "Customer",
			"address":  "1 Main Street",
			"mobile":   "0771111111",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// 不分页: data是数组 带count
	rec, body := env.do(t, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, body["count"])
	assert.Len(t, body["data"], 7)

	// 分页: data是对象 带orders/total/page/limit
	rec, body = env.do(t, http.MethodGet, "/api/orders?page=2&limit=3", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 7, data["total"])
	assert.EqualValues(t, 2, data["page"])
	assert.EqualValues(t, 3, data["limit"])
	assert.Len(t, data["orders"], 3)
}

func TestOrderStatusUpdateOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "PROD001", "Virgin Coconut Oil 375ml", 10000.00)
	token := env.token(t, model.RoleStaff)

	_, created := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{
		"fullName": "Kamal Perera",
		"address":  "45 Temple Road",
		"mobile":   "0771234567",
	})
	id := int64(created["data"].(map[string]any)["id"].(float64))

	rec, body := env.do(t, http.MethodPut, orderPath(id)+"/status", token, map[string]any{"status": "issued"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "issued", body["data"].(map[string]any)["status"])

	// 跳跃迁移被拒
	rec, body = env.do(t, http.MethodPut, orderPath(id)+"/status", token, map[string]any{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, e.ERROR_ORDER_STATUS_TRANSITION, body["code"])
}

func TestOrderDeleteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "PROD001", "Virgin Coconut Oil 375ml", 10000.00)

	_, created := env.do(t, http.MethodPost, "/api/orders", "", map[string]any{
		"fullName": "Kamal Perera",
		"address":  "45 Temple Road",
		"mobile":   "0771234567",
	})
	id := int64(created["data"].(map[string]any)["id"].(float64))

	rec, body := env.do(t, http.MethodDelete, orderPath(id), env.token(t, model.RoleStaff), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.EqualValues(t, e.ERROR_FORBIDDEN, body["code"])

	rec, _ = env.do(t, http.MethodDelete, orderPath(id), env.token(t, model.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = env.do(t, http.MethodDelete, orderPath(id), env.token(t, model.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.EqualValues(t, e.ERROR_ORDER_NOT_EXISTS, body["code"])
}

func TestDashboardDegradesWhenStoreDown(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, model.RoleStaff)

	rec, body := env.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "connected", body["database_status"])

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec, body = env.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "degraded dashboard still answers 200")
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "disconnected", body["database_status"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 0, data["total"])
	assert.EqualValues(t, 0, data["revenue"])
}

func TestInquiryPublicSubmission(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/inquiries", "", map[string]any{
		"message": "Do you deliver to Galle?",
		"name":    "Amara",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "pending", body["data"].(map[string]any)["status"])

	// 列表是受保护接口
	rec, _ = env.do(t, http.MethodGet, "/api/inquiries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = env.do(t, http.MethodGet, "/api/inquiries", env.token(t, model.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
}

func TestLoginOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	hash, err := utils.HashPassword("secret-password")
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&model.User{
		FullName: "Ruchira Ranasinghe",
		Email:    "admin@nirvaan.lk",
		Password: hash,
		Role:     model.RoleAdmin,
	}).Error)

	rec, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "admin@nirvaan.lk",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin@nirvaan.lk", user["email"])
	_, leaked := user["password"]
	assert.False(t, leaked, "password must never serialize")

	rec, body = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "admin@nirvaan.lk",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.EqualValues(t, e.ERROR_AUTH, body["code"])
}

func orderPath(id int64) string {
	return "/api/orders/" + strconv.FormatInt(id, 10)
}
