package season

import "time"

// Status tracks the lifecycle of a season.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPlanned   Status = "PLANNED"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusPlanned || s == StatusCompleted
}

// CodePrefix is the generated season code prefix.
const CodePrefix = "MUAVU"

// Season is a farming campaign window.
type Season struct {
	ID        string     `json:"id"`
	Code      string     `json:"season_code"`
	Name      string     `json:"season_name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Status    Status     `json:"status"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Patch carries the updatable season fields. The code is generated once at
// creation and never patched. A zero EndDate clears the stored end date.
type Patch struct {
	Name      *string    `json:"season_name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Status    *Status    `json:"status"`
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.StartDate == nil && p.EndDate == nil && p.Status == nil
}

// ListFilters narrows the season listing.
type ListFilters struct {
	Status *Status
}
