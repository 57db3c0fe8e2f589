package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"growthTrackerAPI/internal/types/workout"
	"growthTrackerAPI/services"
)

type WorkoutHandler struct {
	workoutService *services.WorkoutService
}

func NewWorkoutHandler(workoutService *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
	}
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req workout.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.workoutService.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			respondWithError(w, http.StatusConflict, "Entry already exists for "+req.Date)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create workout entry")
		return
	}

	respondWithJSON(w, http.StatusCreated, entry.ToResponse())
}

func (h *WorkoutHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req workout.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.workoutService.Upsert(ctx, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to upsert workout entry")
		return
	}

	respondWithJSON(w, http.StatusOK, entry.ToResponse())
}

func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	entry, err := h.workoutService.Get(ctx, date)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No workout entry for "+date.Format("2006-01-02"))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to get workout entry")
		return
	}

	respondWithJSON(w, http.StatusOK, entry.ToResponse())
}

func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	var req workout.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.workoutService.Update(ctx, date, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No workout entry for "+date.Format("2006-01-02"))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update workout entry")
		return
	}

	respondWithJSON(w, http.StatusOK, entry.ToResponse())
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date, ok := parseDateVar(w, r)
	if !ok {
		return
	}

	if err := h.workoutService.Delete(ctx, date); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No workout entry for "+date.Format("2006-01-02"))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete workout entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkoutHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start, end, ok := parseRangeParams(w, r)
	if !ok {
		return
	}

	entries, err := h.workoutService.History(ctx, start, end)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list workout history")
		return
	}

	responses := make([]*workout.Response, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.ToResponse())
	}

	respondWithJSON(w, http.StatusOK, responses)
}

// Helper functions shared by all handlers.

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// parseDateVar reads the {date} path variable. On failure it writes a 400
// and returns ok=false.
func parseDateVar(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := mux.Vars(r)["date"]
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return date, true
}

// parseRangeParams reads optional start_date/end_date query params for the
// history endpoints. Both are optional, but start must not come after end.
func parseRangeParams(w http.ResponseWriter, r *http.Request) (start, end *time.Time, ok bool) {
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return nil, nil, false
		}
		start = &d
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return nil, nil, false
		}
		end = &d
	}
	if start != nil && end != nil && start.After(*end) {
		respondWithError(w, http.StatusBadRequest, "start_date must not be after end_date")
		return nil, nil, false
	}
	return start, end, true
}
