package payroll

import "time"

// Status tracks the lifecycle of a payroll record.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusApproved  Status = "APPROVED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// CodePrefix is the generated payroll code prefix.
const CodePrefix = "LUONG"

// Payroll is a wage record for one partner, optionally tied to a season.
// PartnerName and SeasonName are resolved via joins. FinalAmount is supplied
// by the caller; the server does not derive it from the components.
type Payroll struct {
	ID            string     `json:"id"`
	Code          string     `json:"payroll_code"`
	PartnerID     string     `json:"partner_id"`
	PartnerName   string     `json:"partner_name,omitempty"`
	SeasonID      *string    `json:"season_id,omitempty"`
	SeasonName    string     `json:"season_name,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	Bonus         float64    `json:"bonus"`
	Deduction     float64    `json:"deduction"`
	FinalAmount   float64    `json:"final_amount"`
	Status        Status     `json:"status"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Patch carries the updatable payroll fields. Status moves only through
// UpdateStatus, and the code is fixed at creation.
type Patch struct {
	SeasonID    *string  `json:"season_id"`
	TotalAmount *float64 `json:"total_amount"`
	Bonus       *float64 `json:"bonus"`
	Deduction   *float64 `json:"deduction"`
	FinalAmount *float64 `json:"final_amount"`
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.SeasonID == nil && p.TotalAmount == nil && p.Bonus == nil &&
		p.Deduction == nil && p.FinalAmount == nil
}

// ListFilters narrows the payroll listing.
type ListFilters struct {
	Status    *Status
	SeasonID  string
	PartnerID string
}

// Stats summarizes payrolls per status.
type Stats struct {
	Total       int     `json:"total"`
	Draft       int     `json:"draft"`
	Approved    int     `json:"approved"`
	Paid        int     `json:"paid"`
	Cancelled   int     `json:"cancelled"`
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
}
