package handler

import (
	"github.com/datamark/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles customer account endpoints
type AccountHandler struct {
	BaseHandler
	accountService *partner.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *partner.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Create handles POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partner.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// List handles GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter partner.AccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.accountService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.Get(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Update handles PUT /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req partner.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Delete handles DELETE /api/v1/accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
