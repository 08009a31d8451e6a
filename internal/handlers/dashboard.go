package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GET /dashboard/leaderboard
func (h *DashboardHandler) Leaderboard(c *gin.Context) {
	entries, err := h.dashboardService.Leaderboard(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, entries)
}

// GET /dashboard/companies/:id/products
func (h *DashboardHandler) CompanyProducts(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid),
			fmt.Errorf("invalid company id: %w", err))
		return
	}
	entries, err := h.dashboardService.CompanyProducts(c.Request.Context(), companyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, entries)
}

// GET /dashboard/companies/:id/history
func (h *DashboardHandler) CompanyHistory(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid),
			fmt.Errorf("invalid company id: %w", err))
		return
	}
	entries, err := h.dashboardService.CompanyHistory(c.Request.Context(), companyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, entries)
}
