package masterdata

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

type memoryRepo struct {
	jobTypes       map[string]JobType
	workShifts     map[string]WorkShift
	warehouseTypes map[string]WarehouseType
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		jobTypes:       make(map[string]JobType),
		workShifts:     make(map[string]WorkShift),
		warehouseTypes: make(map[string]WarehouseType),
	}
}

func (r *memoryRepo) ListJobTypes(ctx context.Context) ([]JobType, error) {
	var out []JobType
	for _, jt := range r.jobTypes {
		out = append(out, jt)
	}
	return out, nil
}

func (r *memoryRepo) GetJobType(ctx context.Context, id string) (JobType, error) {
	jt, ok := r.jobTypes[id]
	if !ok {
		return JobType{}, httpx.NotFound("Job type with ID '%s' not found", id)
	}
	return jt, nil
}

func (r *memoryRepo) CreateJobType(ctx context.Context, jt JobType) (JobType, error) {
	jt.ID = uuid.NewString()
	r.jobTypes[jt.ID] = jt
	return jt, nil
}

func (r *memoryRepo) UpdateJobType(ctx context.Context, id string, patch JobTypePatch) (JobType, error) {
	jt, ok := r.jobTypes[id]
	if !ok {
		return JobType{}, httpx.NotFound("Job type with ID '%s' not found", id)
	}
	if patch.Name != nil {
		jt.Name = *patch.Name
	}
	if patch.Description != nil {
		jt.Description = *patch.Description
	}
	r.jobTypes[id] = jt
	return jt, nil
}

func (r *memoryRepo) DeleteJobType(ctx context.Context, id string) error {
	if _, ok := r.jobTypes[id]; !ok {
		return httpx.NotFound("Job type with ID '%s' not found", id)
	}
	delete(r.jobTypes, id)
	return nil
}

func (r *memoryRepo) ListWorkShifts(ctx context.Context) ([]WorkShift, error) {
	var out []WorkShift
	for _, ws := range r.workShifts {
		out = append(out, ws)
	}
	return out, nil
}

func (r *memoryRepo) GetWorkShift(ctx context.Context, id string) (WorkShift, error) {
	ws, ok := r.workShifts[id]
	if !ok {
		return WorkShift{}, httpx.NotFound("Work shift with ID '%s' not found", id)
	}
	return ws, nil
}

func (r *memoryRepo) CreateWorkShift(ctx context.Context, ws WorkShift) (WorkShift, error) {
	ws.ID = uuid.NewString()
	r.workShifts[ws.ID] = ws
	return ws, nil
}

func (r *memoryRepo) UpdateWorkShift(ctx context.Context, id string, patch WorkShiftPatch) (WorkShift, error) {
	ws, ok := r.workShifts[id]
	if !ok {
		return WorkShift{}, httpx.NotFound("Work shift with ID '%s' not found", id)
	}
	if patch.Name != nil {
		ws.Name = *patch.Name
	}
	if patch.StartTime != nil {
		ws.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		ws.EndTime = *patch.EndTime
	}
	r.workShifts[id] = ws
	return ws, nil
}

func (r *memoryRepo) DeleteWorkShift(ctx context.Context, id string) error {
	if _, ok := r.workShifts[id]; !ok {
		return httpx.NotFound("Work shift with ID '%s' not found", id)
	}
	delete(r.workShifts, id)
	return nil
}

func (r *memoryRepo) ListWarehouseTypes(ctx context.Context) ([]WarehouseType, error) {
	var out []WarehouseType
	for _, wt := range r.warehouseTypes {
		out = append(out, wt)
	}
	return out, nil
}

func (r *memoryRepo) GetWarehouseType(ctx context.Context, id string) (WarehouseType, error) {
	wt, ok := r.warehouseTypes[id]
	if !ok {
		return WarehouseType{}, httpx.NotFound("Warehouse type with ID '%s' not found", id)
	}
	return wt, nil
}

func (r *memoryRepo) CreateWarehouseType(ctx context.Context, wt WarehouseType) (WarehouseType, error) {
	wt.ID = uuid.NewString()
	r.warehouseTypes[wt.ID] = wt
	return wt, nil
}

func (r *memoryRepo) UpdateWarehouseType(ctx context.Context, id string, patch WarehouseTypePatch) (WarehouseType, error) {
	wt, ok := r.warehouseTypes[id]
	if !ok {
		return WarehouseType{}, httpx.NotFound("Warehouse type with ID '%s' not found", id)
	}
	if patch.Name != nil {
		wt.Name = *patch.Name
	}
	if patch.Description != nil {
		wt.Description = *patch.Description
	}
	r.warehouseTypes[id] = wt
	return wt, nil
}

func (r *memoryRepo) DeleteWarehouseType(ctx context.Context, id string) error {
	if _, ok := r.warehouseTypes[id]; !ok {
		return httpx.NotFound("Warehouse type with ID '%s' not found", id)
	}
	delete(r.warehouseTypes, id)
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil)
}

func TestCreateJobTypeRequiresName(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.CreateJobType(ctx, JobType{Name: "   "})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.EqualError(t, err, "Job name is required")

	created, err := svc.CreateJobType(ctx, JobType{Name: " Harvesting "})
	require.NoError(t, err)
	require.Equal(t, "Harvesting", created.Name)
}

func TestCreateWorkShiftValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		shift   WorkShift
		message string
	}{
		{"missing name", WorkShift{StartTime: "06:00", EndTime: "11:00"}, "Shift name is required"},
		{"missing start", WorkShift{Name: "Morning", EndTime: "11:00"}, "Shift start time is required"},
		{"missing end", WorkShift{Name: "Morning", StartTime: "06:00"}, "Shift end time is required"},
		{"hour out of range", WorkShift{Name: "Morning", StartTime: "25:00", EndTime: "11:00"}, "Shift start time must be in HH:MM format"},
		{"missing zero pad", WorkShift{Name: "Morning", StartTime: "9:00", EndTime: "11:00"}, "Shift start time must be in HH:MM format"},
		{"bad minutes", WorkShift{Name: "Morning", StartTime: "06:00", EndTime: "11:70"}, "Shift end time must be in HH:MM format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateWorkShift(ctx, tc.shift)
			require.ErrorIs(t, err, httpx.ErrValidation)
			require.EqualError(t, err, tc.message)
		})
	}

	created, err := svc.CreateWorkShift(ctx, WorkShift{Name: "Morning", StartTime: "06:00", EndTime: "11:00"})
	require.NoError(t, err)
	require.Equal(t, "06:00", created.StartTime)
}

func TestUpdateWorkShiftValidatesTimes(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.CreateWorkShift(ctx, WorkShift{Name: "Morning", StartTime: "06:00", EndTime: "11:00"})
	require.NoError(t, err)

	bad := "26:00"
	_, err = svc.UpdateWorkShift(ctx, created.ID, WorkShiftPatch{StartTime: &bad})
	require.EqualError(t, err, "Shift start time must be in HH:MM format")

	good := "07:30"
	updated, err := svc.UpdateWorkShift(ctx, created.ID, WorkShiftPatch{StartTime: &good})
	require.NoError(t, err)
	require.Equal(t, "07:30", updated.StartTime)
}

func TestCreateWarehouseTypeRequiresName(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.CreateWarehouseType(ctx, WarehouseType{})
	require.EqualError(t, err, "Warehouse type name is required")

	created, err := svc.CreateWarehouseType(ctx, WarehouseType{Name: "Fertilizer"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
}

func TestDeleteMissingLookupEntities(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	require.ErrorIs(t, svc.DeleteJobType(ctx, "nope"), httpx.ErrNotFound)
	require.ErrorIs(t, svc.DeleteWorkShift(ctx, "nope"), httpx.ErrNotFound)
	require.ErrorIs(t, svc.DeleteWarehouseType(ctx, "nope"), httpx.ErrNotFound)
}
