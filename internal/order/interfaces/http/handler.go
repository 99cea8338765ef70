package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nouressalam/storefront/internal/order/application"
	"github.com/nouressalam/storefront/internal/order/domain"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/metrics"
	"github.com/nouressalam/storefront/pkg/middleware"
	"github.com/nouressalam/storefront/pkg/response"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	svc     *application.OrderService
	metrics *metrics.Metrics
}

// NewOrderHandler 创建订单 HTTP 处理器
func NewOrderHandler(svc *application.OrderService, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{svc: svc, metrics: m}
}

// RegisterRoutes 注册路由，须挂在鉴权分组下
func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/orders")
	{
		g.POST("", h.PlaceOrder)
		g.GET("", h.ListOrders)
		g.GET("/:id", h.GetOrder)
		g.PUT("/:id", h.UpdateStatus)
	}
}

func identityFrom(c *gin.Context) application.Identity {
	return application.Identity{
		UserID: c.GetString(middleware.AuthUserIDKey),
		Email:  c.GetString(middleware.AuthEmailKey),
		Role:   c.GetString(middleware.AuthRoleKey),
	}
}

// PlaceOrderRequest 结账表单
type PlaceOrderRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Notes     string `json:"notes"`
}

// PlaceOrder 提交订单
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), identityFrom(c), application.ShippingInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		Phone:     req.Phone,
		Notes:     req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.OrdersPlacedTotal.Inc()
	response.Created(c, order)
}

// ListOrders 列出订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 获取订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateStatusRequest 状态更新请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新订单状态
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), identityFrom(c), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.OrderStatusChangesTotal.Inc()
	response.Success(c, order)
}

func (h *OrderHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, application.ErrEmptyCart), errors.Is(err, domain.ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		logger.Error(c.Request.Context(), "Order operation failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "server error")
	}
}
