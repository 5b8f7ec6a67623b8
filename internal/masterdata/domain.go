package masterdata

import "time"

// JobType is a lookup entity describing a kind of farm work.
type JobType struct {
	ID          string    `json:"id"`
	Name        string    `json:"job_name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobTypePatch enumerates the updatable job type fields.
type JobTypePatch struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the patch carries no field.
func (p JobTypePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// WorkShift is a lookup entity carrying time-of-day bounds as HH:MM strings.
type WorkShift struct {
	ID          string    `json:"id"`
	Name        string    `json:"shift_name"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkShiftPatch enumerates the updatable work shift fields.
type WorkShiftPatch struct {
	Name        *string
	StartTime   *string
	EndTime     *string
	Description *string
}

// IsEmpty reports whether the patch carries no field.
func (p WorkShiftPatch) IsEmpty() bool {
	return p.Name == nil && p.StartTime == nil && p.EndTime == nil && p.Description == nil
}

// WarehouseType is a lookup entity; inventory items reference it as their
// category.
type WarehouseType struct {
	ID          string    `json:"id"`
	Name        string    `json:"type_name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WarehouseTypePatch enumerates the updatable warehouse type fields.
type WarehouseTypePatch struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the patch carries no field.
func (p WarehouseTypePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}
