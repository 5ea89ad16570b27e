package handler

import (
	"github.com/datamark/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles KPI dashboard endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
