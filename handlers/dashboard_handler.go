package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"growthTrackerAPI/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response, err := h.dashboardService.GetDashboard(ctx)
	if err != nil {
		log.Error("Failed to build dashboard", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}
