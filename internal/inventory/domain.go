package inventory

import "time"

// Item is a tracked warehouse item. CategoryName is resolved from the
// warehouse type lookup and never stored on the row.
type Item struct {
	ID              string     `json:"id"`
	Code            string     `json:"item_code"`
	Name            string     `json:"item_name"`
	CategoryID      *string    `json:"category_id,omitempty"`
	CategoryName    string     `json:"category_name,omitempty"`
	Unit            string     `json:"unit"`
	Quantity        float64    `json:"quantity"`
	MinQuantity     float64    `json:"min_quantity"`
	LastImportPrice float64    `json:"last_import_price"`
	ImportDate      *time.Time `json:"import_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Patch carries the updatable item fields. Quantity is absent on purpose;
// stock only moves through AdjustStock.
type Patch struct {
	Code            *string    `json:"item_code"`
	Name            *string    `json:"item_name"`
	CategoryID      *string    `json:"category_id"`
	Unit            *string    `json:"unit"`
	MinQuantity     *float64   `json:"min_quantity"`
	LastImportPrice *float64   `json:"last_import_price"`
	ImportDate      *time.Time `json:"import_date"`
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Code == nil && p.Name == nil && p.CategoryID == nil && p.Unit == nil &&
		p.MinQuantity == nil && p.LastImportPrice == nil && p.ImportDate == nil
}

// ListFilters narrows the item listing.
type ListFilters struct {
	CategoryID string
	Search     string
}

// Stats summarizes the inventory for the dashboard.
type Stats struct {
	TotalItems    int     `json:"total_items"`
	TotalQuantity float64 `json:"total_quantity"`
	LowStockItems int     `json:"low_stock_items"`
}
