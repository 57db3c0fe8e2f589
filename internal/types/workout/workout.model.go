package workout

import "time"

// Valid workout_type values. The enum is closed: anything else is rejected
// before it reaches the store.
const (
	TypePush   = "Push"
	TypePull   = "Pull"
	TypeLegs   = "Legs"
	TypeUpper  = "Upper"
	TypeLower  = "Lower"
	TypeCardio = "Cardio"
	TypeOthers = "Others"
)

const (
	IntensityLow      = "Low"
	IntensityModerate = "Moderate"
	IntensityHigh     = "High"
)

func ValidType(t string) bool {
	switch t {
	case TypePush, TypePull, TypeLegs, TypeUpper, TypeLower, TypeCardio, TypeOthers:
		return true
	}
	return false
}

func ValidIntensity(i string) bool {
	switch i {
	case IntensityLow, IntensityModerate, IntensityHigh:
		return true
	}
	return false
}

// Entry is one workout log row. Date is the primary key: at most one entry
// per calendar day.
type Entry struct {
	Date            time.Time `db:"date"`
	WorkoutType     string    `db:"workout_type"`
	WorkoutDone     bool      `db:"workout_done"`
	DurationMinutes *int      `db:"duration_minutes"`
	Intensity       *string   `db:"intensity"`
	Notes           *string   `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Response is the wire shape of an Entry, with the date formatted as
// YYYY-MM-DD instead of a full timestamp.
type Response struct {
	Date            string    `json:"date"`
	WorkoutType     string    `json:"workout_type"`
	WorkoutDone     bool      `json:"workout_done"`
	DurationMinutes *int      `json:"duration_minutes"`
	Intensity       *string   `json:"intensity"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (e *Entry) ToResponse() *Response {
	return &Response{
		Date:            e.Date.Format("2006-01-02"),
		WorkoutType:     e.WorkoutType,
		WorkoutDone:     e.WorkoutDone,
		DurationMinutes: e.DurationMinutes,
		Intensity:       e.Intensity,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
