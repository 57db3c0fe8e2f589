package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation failures are rejected before any service call, so these tests
// run against handlers with no backing service at all.

func TestWorkoutCreateRejectsBadInput(t *testing.T) {
	h := NewWorkoutHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"date": `},
		{"bad date", `{"date":"01-17-2026","workout_type":"Push"}`},
		{"unknown type", `{"date":"2026-01-17","workout_type":"Swimming"}`},
		{"zero duration", `{"date":"2026-01-17","workout_type":"Push","duration_minutes":0}`},
		{"bad intensity", `{"date":"2026-01-17","workout_type":"Push","intensity":"Insane"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.Create(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestWorkoutGetRejectsBadDate(t *testing.T) {
	h := NewWorkoutHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts/not-a-date", nil)
	req = mux.SetURLVars(req, map[string]string{"date": "not-a-date"})
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWorkoutHistoryRejectsBadRange(t *testing.T) {
	h := NewWorkoutHandler(nil)

	tests := []struct {
		name  string
		query string
	}{
		{"bad start", "?start_date=nope"},
		{"bad end", "?end_date=2026/01/01"},
		{"inverted range", "?start_date=2026-02-01&end_date=2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts/history"+tt.query, nil)
			rr := httptest.NewRecorder()

			h.History(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestSmokingCreateRejectsBadInput(t *testing.T) {
	h := NewSmokingHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing count", `{"date":"2026-01-10"}`},
		{"negative count", `{"date":"2026-01-10","cigarette_count":-3}`},
		{"unknown location", `{"date":"2026-01-10","cigarette_count":2,"location":"Pub"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/smoking", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.Create(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestSmokingDeleteRejectsBadDate(t *testing.T) {
	h := NewSmokingHandler(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/smoking/2026-1-1x", nil)
	req = mux.SetURLVars(req, map[string]string{"date": "2026-1-1x"})
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	h.Liveness(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
