package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nouressalam/storefront/internal/cart/application"
	"github.com/nouressalam/storefront/internal/cart/domain"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/metrics"
	"github.com/nouressalam/storefront/pkg/middleware"
	"github.com/nouressalam/storefront/pkg/response"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	svc     *application.CartService
	metrics *metrics.Metrics
}

// NewCartHandler 创建购物车 HTTP 处理器
func NewCartHandler(svc *application.CartService, m *metrics.Metrics) *CartHandler {
	return &CartHandler{svc: svc, metrics: m}
}

// RegisterRoutes 注册路由，须挂在鉴权分组下
func (h *CartHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/cart")
	{
		g.GET("", h.GetCart)
		g.POST("/items", h.AddItem)
		g.PUT("/items/:id", h.UpdateQuantity)
		g.DELETE("/items/:id", h.RemoveItem)
		g.DELETE("", h.ClearCart)
		g.POST("/coupon", h.ApplyCoupon)
		g.DELETE("/coupon", h.RemoveCoupon)
	}
}

// AddItemRequest 加入购物车请求
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest 修改数量请求
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ApplyCouponRequest 应用优惠码请求
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart 获取当前用户购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString(middleware.AuthUserIDKey)
	cart, err := h.svc.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, cart)
}

// AddItem 加入商品
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID := c.GetString(middleware.AuthUserIDKey)
	cart, err := h.svc.AddItem(c.Request.Context(), userID, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.CartOpsTotal.WithLabelValues("add").Inc()
	response.Success(c, cart)
}

// UpdateQuantity 修改行项目数量
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := c.GetString(middleware.AuthUserIDKey)
	cart, err := h.svc.UpdateQuantity(c.Request.Context(), userID, c.Param("id"), req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.CartOpsTotal.WithLabelValues("update").Inc()
	response.Success(c, cart)
}

// RemoveItem 删除行项目
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString(middleware.AuthUserIDKey)
	cart, err := h.svc.RemoveItem(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.CartOpsTotal.WithLabelValues("remove").Inc()
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString(middleware.AuthUserIDKey)
	cart, err := h.svc.ClearCart(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.CartOpsTotal.WithLabelValues("clear").Inc()
	response.Success(c, cart)
}

// ApplyCoupon 应用优惠码
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := c.GetString(middleware.AuthUserIDKey)
	cart, err := h.svc.ApplyCoupon(c.Request.Context(), userID, req.Code)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.CartOpsTotal.WithLabelValues("apply_coupon").Inc()
	response.Success(c, cart)
}

// RemoveCoupon 移除优惠码
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	userID := c.GetString(middleware.AuthUserIDKey)
	cart, err := h.svc.RemoveCoupon(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.CartOpsTotal.WithLabelValues("remove_coupon").Inc()
	response.Success(c, cart)
}

func (h *CartHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidCoupon):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, application.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		logger.Error(c.Request.Context(), "Cart operation failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "server error")
	}
}
