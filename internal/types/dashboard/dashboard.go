package dashboard

import "growthTrackerAPI/internal/stats"

// Response is the combined KPI payload for the dashboard endpoint.
// LastUpdated is the as-of date (YYYY-MM-DD) the streaks were anchored to.
type Response struct {
	Workout     stats.WorkoutStats `json:"workout"`
	Smoking     stats.SmokingStats `json:"smoking"`
	LastUpdated string             `json:"last_updated"`
}
