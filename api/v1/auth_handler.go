package v1

import (
	"net/http"

	"github.com/RuchiraRanasinghe/order-manement-System-backend/internal/service"
	"github.com/RuchiraRanasinghe/order-manement-System-backend/pkg/e"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证与账号 HTTP 处理器
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// RegisterPublicRoutes 登录入口
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterRoutes 已登录用户的账号路由
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/profile", h.Profile)
	rg.PUT("/auth/profile", h.UpdateProfile)
	rg.PUT("/auth/password", h.ChangePassword)
	rg.POST("/auth/logout", h.Logout)
}

// RegisterAdminRoutes 仅管理员可建账号
func (h *AuthHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	// 旧客户端用 email 字段 新客户端用 identifier
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Email and password are required"))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Invalid request body"))
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		Fail(c, e.NewMsg(e.INVALID_PARAMS, "Current and new passwords are required"))
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		Fail(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Logout 无服务端会话 客户端丢弃 token 即可
func (h *AuthHandler) Logout(c *gin.Context) {
	OK(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}
