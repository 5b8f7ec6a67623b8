package partner

import "time"

// Type tags the role a partner plays towards the farm.
type Type string

const (
	// TypeSupplier sells supplies to the farm.
	TypeSupplier Type = "SUPPLIER"
	// TypeBuyer purchases produce from the farm.
	TypeBuyer Type = "BUYER"
	// TypeWorker performs scheduled work and receives payroll.
	TypeWorker Type = "WORKER"
)

// Valid reports whether the type is a known role.
func (t Type) Valid() bool {
	switch t {
	case TypeSupplier, TypeBuyer, TypeWorker:
		return true
	}
	return false
}

// Partner models a supplier, buyer or worker record.
type Partner struct {
	ID        string    `json:"id"`
	Code      string    `json:"partner_code"`
	Name      string    `json:"partner_name"`
	Type      Type      `json:"type"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Note      string    `json:"note,omitempty"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// Patch enumerates the updatable fields; only non-nil fields reach the SET
// clause. Balance is deliberately absent: it moves only through AdjustBalance.
type Patch struct {
	Code    *string
	Name    *string
	Type    *Type
	Phone   *string
	Email   *string
	Address *string
	Note    *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p Patch) IsEmpty() bool {
	return p.Code == nil && p.Name == nil && p.Type == nil &&
		p.Phone == nil && p.Email == nil && p.Address == nil && p.Note == nil
}

// ListFilters narrows partner listings.
type ListFilters struct {
	Type   *Type
	Search string
}

// Stats aggregates partner counts per role.
type Stats struct {
	Total        int     `json:"total"`
	Suppliers    int     `json:"suppliers"`
	Buyers       int     `json:"buyers"`
	Workers      int     `json:"workers"`
	TotalBalance float64 `json:"total_balance"`
}
