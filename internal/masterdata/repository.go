package masterdata

import "context"

// Repository persists the lookup entities.
type Repository interface {
	ListJobTypes(ctx context.Context) ([]JobType, error)
	GetJobType(ctx context.Context, id string) (JobType, error)
	CreateJobType(ctx context.Context, jt JobType) (JobType, error)
	UpdateJobType(ctx context.Context, id string, patch JobTypePatch) (JobType, error)
	DeleteJobType(ctx context.Context, id string) error

	ListWorkShifts(ctx context.Context) ([]WorkShift, error)
	GetWorkShift(ctx context.Context, id string) (WorkShift, error)
	CreateWorkShift(ctx context.Context, ws WorkShift) (WorkShift, error)
	UpdateWorkShift(ctx context.Context, id string, patch WorkShiftPatch) (WorkShift, error)
	DeleteWorkShift(ctx context.Context, id string) error

	ListWarehouseTypes(ctx context.Context) ([]WarehouseType, error)
	GetWarehouseType(ctx context.Context, id string) (WarehouseType, error)
	CreateWarehouseType(ctx context.Context, wt WarehouseType) (WarehouseType, error)
	UpdateWarehouseType(ctx context.Context, id string, patch WarehouseTypePatch) (WarehouseType, error)
	DeleteWarehouseType(ctx context.Context, id string) error
}
