package smoking

import "time"

const (
	LocationHome   = "Home"
	LocationWork   = "Work"
	LocationSocial = "Social"
	LocationOther  = "Other"
)

func ValidLocation(l string) bool {
	switch l {
	case LocationHome, LocationWork, LocationSocial, LocationOther:
		return true
	}
	return false
}

// Entry is one relapse log row, keyed by date. The existence of a row marks
// the day as a relapse day regardless of cigarette_count, so a zero-count
// entry still breaks a clean streak. CreatedAt is set once and never touched
// by upserts.
type Entry struct {
	Date           time.Time `db:"date"`
	CigaretteCount int       `db:"cigarette_count"`
	Location       *string   `db:"location"`
	Remarks        *string   `db:"remarks"`
	CreatedAt      time.Time `db:"created_at"`
}

type Response struct {
	Date           string    `json:"date"`
	CigaretteCount int       `json:"cigarette_count"`
	Location       *string   `json:"location"`
	Remarks        *string   `json:"remarks"`
	CreatedAt      time.Time `json:"created_at"`
}

func (e *Entry) ToResponse() *Response {
	return &Response{
		Date:           e.Date.Format("2006-01-02"),
		CigaretteCount: e.CigaretteCount,
		Location:       e.Location,
		Remarks:        e.Remarks,
		CreatedAt:      e.CreatedAt,
	}
}
