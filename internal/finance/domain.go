package finance

import "time"

// Type classifies the money direction of a transaction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Valid reports whether the type is a known value.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single money movement. PartnerName is resolved via join.
type Transaction struct {
	ID              string    `json:"id"`
	PartnerID       *string   `json:"partner_id,omitempty"`
	PartnerName     string    `json:"partner_name,omitempty"`
	Type            Type      `json:"type"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description,omitempty"`
	TransactionDate time.Time `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// Patch carries the updatable transaction fields.
type Patch struct {
	PartnerID       *string    `json:"partner_id"`
	Type            *Type      `json:"type"`
	Amount          *float64   `json:"amount"`
	Description     *string    `json:"description"`
	TransactionDate *time.Time `json:"transaction_date"`
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.PartnerID == nil && p.Type == nil && p.Amount == nil &&
		p.Description == nil && p.TransactionDate == nil
}

// ListFilters narrows the transaction listing.
type ListFilters struct {
	Type      *Type
	PartnerID string
	From      *time.Time
	To        *time.Time
	Page      int
	PerPage   int
}

// Stats aggregates money movement for the dashboard.
type Stats struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Net          float64 `json:"net"`
	Count        int     `json:"count"`
}
