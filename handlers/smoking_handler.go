package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"growthTrackerAPI/internal/types/smoking"
	"growthTrackerAPI/services"
)

// SmokingHandler mirrors the workout endpoints minus partial update, which
// the smoking log intentionally does not have.
type SmokingHandler struct {
	smokingService *services.SmokingService
}

func NewSmokingHandler(smokingService *services.SmokingService) *SmokingHandler {
	return &SmokingHandler{
		smokingService: smokingService,
	}
}

func (h *SmokingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req smoking.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.smokingService.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			respondWithError(w, http.StatusConflict, "Entry already exists for "+req.Date)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create smoking entry")
		return
	}

	respondWithJSON(w, http.StatusCreated, entry.ToResponse())
}

func (h *SmokingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req smoking.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.smokingService.Upsert(ctx, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to upsert smoking entry")
		return
	}

	respondWithJSON(w, http.StatusOK, entry.ToResponse())
}

func (h *SmokingHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	entry, err := h.smokingService.Get(ctx, date)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No smoking entry for "+date.Format("2006-01-02"))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to get smoking entry")
		return
	}

	respondWithJSON(w, http.StatusOK, entry.ToResponse())
}

func (h *SmokingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	if err := h.smokingService.Delete(ctx, date); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No smoking entry for "+date.Format("2006-01-02"))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete smoking entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SmokingHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start, end, ok := parseRangeParams(w, r)
	if !ok {
		return
	}

	entries, err := h.smokingService.History(ctx, start, end)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list smoking history")
		return
	}

	responses := make([]*smoking.Response, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.ToResponse())
	}

	respondWithJSON(w, http.StatusOK, responses)
}
