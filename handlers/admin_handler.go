package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"growthTrackerAPI/services"
)

// AdminHandler exposes the deployment-time bootstrap operations. These are
// not part of the normal request surface and should be restricted or
// disabled in production.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

type createDatabaseRequest struct {
	DBName string `json:"db_name"`
}

func (h *AdminHandler) CreateDatabase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req := createDatabaseRequest{DBName: "growth_tracker"}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	created, err := h.adminService.CreateDatabase(ctx, req.DBName)
	if err != nil {
		log.Error("Failed to create database", "name", req.DBName, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create database")
		return
	}

	message := "Database already exists"
	if created {
		message = "Database created"
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"db_name": req.DBName,
		"message": message,
	})
}

func (h *AdminHandler) CreateTables(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.adminService.CreateTables(ctx); err != nil {
		log.Error("Failed to create tables", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create tables")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Tables created",
	})
}
