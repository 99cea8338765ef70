package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nouressalam/storefront/internal/catalog/application"
	"github.com/nouressalam/storefront/internal/catalog/domain"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/response"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	svc *application.CatalogService
}

func NewCatalogHandler(svc *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// RegisterPublicRoutes 注册公开查询路由
func (h *CatalogHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	g := r.Group("/products")
	g.GET("", h.ListProducts)
	g.GET("/:id", h.GetProduct)
}

// RegisterAdminRoutes 注册管理路由，须挂在鉴权+管理员分组下
func (h *CatalogHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	g := r.Group("/products")
	g.POST("", h.CreateProduct)
	g.PUT("/:id", h.UpdateProduct)
	g.DELETE("/:id", h.DeleteProduct)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.Error(c, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	response.Success(c, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateProductRequest 商品部分更新请求
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Inventory   *int             `json:"inventory"`
	Status      *string          `json:"status"`
	CategoryID  *string          `json:"categoryId"`
	IsFeatured  *bool            `json:"isFeatured"`
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	upd := application.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
		Category:    req.CategoryID,
		IsFeatured:  req.IsFeatured,
	}
	if req.Status != nil {
		status := domain.ProductStatus(*req.Status)
		upd.Status = &status
	}

	updated, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrMissingProductID):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error(c.Request.Context(), "Catalog operation failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "server error")
	}
}
