package smoking

import (
	"fmt"
	"time"
)

// CreateRequest is the body for create and upsert. There is no partial
// update path for smoking entries; corrections go through upsert.
type CreateRequest struct {
	Date           string  `json:"date"`
	CigaretteCount *int    `json:"cigarette_count"`
	Location       *string `json:"location"`
	Remarks        *string `json:"remarks"`

	parsedDate time.Time
}

func (r *CreateRequest) Validate() error {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	r.parsedDate = d

	if r.CigaretteCount == nil {
		return fmt.Errorf("cigarette_count is required")
	}
	if *r.CigaretteCount < 0 {
		return fmt.Errorf("cigarette_count must not be negative")
	}
	if r.Location != nil && !ValidLocation(*r.Location) {
		return fmt.Errorf("invalid location %q", *r.Location)
	}
	return nil
}

func (r *CreateRequest) ParsedDate() time.Time {
	return r.parsedDate
}
