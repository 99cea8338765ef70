package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nouressalam/storefront/internal/auth/application"
	"github.com/nouressalam/storefront/internal/auth/domain"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/metrics"
	"github.com/nouressalam/storefront/pkg/response"
)

// AuthHandler 认证 HTTP 处理器
type AuthHandler struct {
	svc     *application.AuthService
	metrics *metrics.Metrics
}

func NewAuthHandler(svc *application.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: m}
}

// RegisterRoutes 注册路由（公开）
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), application.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Registration failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	response.Created(c, resp)
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.LoginFailuresTotal.Inc()
			response.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Login failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "server error")
		return
	}
	response.Success(c, resp)
}
