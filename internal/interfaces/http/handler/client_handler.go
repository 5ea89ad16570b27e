package handler

import (
	"github.com/datamark/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles contact book endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partner.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *partner.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create handles POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partner.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// List handles GET /api/v1/clients
func (h *ClientHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter partner.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.clientService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
