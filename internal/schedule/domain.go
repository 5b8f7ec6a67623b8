package schedule

import "time"

// Conventional status values. The column is free-form; these are the values
// the UI writes.
const (
	StatusPlanned   = "PLANNED"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// WorkSchedule assigns a worker to a shift and job on a given date. The
// *Name fields are resolved via joins and never stored on the row.
type WorkSchedule struct {
	ID          string    `json:"id"`
	PartnerID   string    `json:"partner_id"`
	PartnerName string    `json:"partner_name,omitempty"`
	ShiftID     string    `json:"shift_id"`
	ShiftName   string    `json:"shift_name,omitempty"`
	JobTypeID   string    `json:"job_type_id"`
	JobName     string    `json:"job_name,omitempty"`
	SeasonID    *string   `json:"season_id,omitempty"`
	SeasonName  string    `json:"season_name,omitempty"`
	WorkDate    time.Time `json:"work_date"`
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Patch carries the updatable schedule fields.
type Patch struct {
	PartnerID *string    `json:"partner_id"`
	ShiftID   *string    `json:"shift_id"`
	JobTypeID *string    `json:"job_type_id"`
	SeasonID  *string    `json:"season_id"`
	WorkDate  *time.Time `json:"work_date"`
	Status    *string    `json:"status"`
	Note      *string    `json:"note"`
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.PartnerID == nil && p.ShiftID == nil && p.JobTypeID == nil &&
		p.SeasonID == nil && p.WorkDate == nil && p.Status == nil && p.Note == nil
}

// ListFilters narrows the schedule listing.
type ListFilters struct {
	Status    string
	PartnerID string
	SeasonID  string
	From      *time.Time
	To        *time.Time
	Page      int
	PerPage   int
}
