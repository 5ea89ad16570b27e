package handler

import (
	"github.com/datamark/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles point-of-sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *sales.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *sales.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req sales.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), storeID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter sales.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.saleService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.Get(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}
