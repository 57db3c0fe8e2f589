package workout

import (
	"fmt"
	"time"
)

// CreateRequest is the body for both create and upsert. workout_done
// defaults to true when omitted.
type CreateRequest struct {
	Date            string  `json:"date"`
	WorkoutType     string  `json:"workout_type"`
	WorkoutDone     *bool   `json:"workout_done"`
	DurationMinutes *int    `json:"duration_minutes"`
	Intensity       *string `json:"intensity"`
	Notes           *string `json:"notes"`

	parsedDate time.Time
}

func (r *CreateRequest) Validate() error {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	r.parsedDate = d

	if !ValidType(r.WorkoutType) {
		return fmt.Errorf("invalid workout_type %q", r.WorkoutType)
	}
	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if r.Intensity != nil && !ValidIntensity(*r.Intensity) {
		return fmt.Errorf("invalid intensity %q", *r.Intensity)
	}
	return nil
}

// ParsedDate returns the date parsed by Validate.
func (r *CreateRequest) ParsedDate() time.Time {
	return r.parsedDate
}

// Done resolves the workout_done default.
func (r *CreateRequest) Done() bool {
	if r.WorkoutDone == nil {
		return true
	}
	return *r.WorkoutDone
}

// UpdateRequest is a partial update: every field is optional and omitted
// fields keep their stored values. The date itself is immutable and comes
// from the URL, not the body.
type UpdateRequest struct {
	WorkoutType     *string `json:"workout_type"`
	WorkoutDone     *bool   `json:"workout_done"`
	DurationMinutes *int    `json:"duration_minutes"`
	Intensity       *string `json:"intensity"`
	Notes           *string `json:"notes"`
}

func (r *UpdateRequest) Validate() error {
	if r.WorkoutType != nil && !ValidType(*r.WorkoutType) {
		return fmt.Errorf("invalid workout_type %q", *r.WorkoutType)
	}
	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if r.Intensity != nil && !ValidIntensity(*r.Intensity) {
		return fmt.Errorf("invalid intensity %q", *r.Intensity)
	}
	return nil
}
