package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

type memoryRepo struct {
	schedules map[string]WorkSchedule
	partners  map[string]bool
	shifts    map[string]bool
	jobTypes  map[string]bool
	seasons   map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		schedules: make(map[string]WorkSchedule),
		partners:  map[string]bool{"p1": true},
		shifts:    map[string]bool{"sh1": true},
		jobTypes:  map[string]bool{"jt1": true},
		seasons:   map[string]bool{"se1": true},
	}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]WorkSchedule, shared.Pagination, error) {
	var out []WorkSchedule
	for _, ws := range r.schedules {
		if filters.PartnerID != "" && ws.PartnerID != filters.PartnerID {
			continue
		}
		if filters.Status != "" && ws.Status != filters.Status {
			continue
		}
		out = append(out, ws)
	}
	return out, shared.NewPagination(filters.Page, filters.PerPage, len(out)), nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (WorkSchedule, error) {
	ws, ok := r.schedules[id]
	if !ok {
		return WorkSchedule{}, httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	return ws, nil
}

func (r *memoryRepo) Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error) {
	ws.ID = uuid.NewString()
	r.schedules[ws.ID] = ws
	return ws, nil
}

func (r *memoryRepo) Update(ctx context.Context, id string, patch Patch) (WorkSchedule, error) {
	ws, ok := r.schedules[id]
	if !ok {
		return WorkSchedule{}, httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	if patch.PartnerID != nil {
		ws.PartnerID = *patch.PartnerID
	}
	if patch.Status != nil {
		ws.Status = *patch.Status
	}
	if patch.Note != nil {
		ws.Note = *patch.Note
	}
	r.schedules[id] = ws
	return ws, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.schedules[id]; !ok {
		return httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	delete(r.schedules, id)
	return nil
}

func (r *memoryRepo) Confirm(ctx context.Context, id string) (WorkSchedule, error) {
	ws, ok := r.schedules[id]
	if !ok {
		return WorkSchedule{}, httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	ws.Status = StatusConfirmed
	r.schedules[id] = ws
	return ws, nil
}

func (r *memoryRepo) PartnerExists(ctx context.Context, id string) (bool, error) {
	return r.partners[id], nil
}

func (r *memoryRepo) ShiftExists(ctx context.Context, id string) (bool, error) {
	return r.shifts[id], nil
}

func (r *memoryRepo) JobTypeExists(ctx context.Context, id string) (bool, error) {
	return r.jobTypes[id], nil
}

func (r *memoryRepo) SeasonExists(ctx context.Context, id string) (bool, error) {
	return r.seasons[id], nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil)
}

func workDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func validSchedule() WorkSchedule {
	return WorkSchedule{PartnerID: "p1", ShiftID: "sh1", JobTypeID: "jt1", WorkDate: workDate()}
}

func TestCreateRequiresFields(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(ws *WorkSchedule)
		message string
	}{
		{"missing partner", func(ws *WorkSchedule) { ws.PartnerID = " " }, "Schedule partner ID is required"},
		{"missing shift", func(ws *WorkSchedule) { ws.ShiftID = "" }, "Schedule shift ID is required"},
		{"missing job type", func(ws *WorkSchedule) { ws.JobTypeID = "" }, "Schedule job type ID is required"},
		{"missing work date", func(ws *WorkSchedule) { ws.WorkDate = time.Time{} }, "Schedule work date is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ws := validSchedule()
			tc.mutate(&ws)
			_, err := svc.Create(ctx, ws)
			require.ErrorIs(t, err, httpx.ErrValidation)
			require.EqualError(t, err, tc.message)
		})
	}
}

func TestCreateChecksReferencedEntities(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	ws := validSchedule()
	ws.PartnerID = "ghost"
	_, err := svc.Create(ctx, ws)
	require.EqualError(t, err, "Partner with ID 'ghost' does not exist")

	ws = validSchedule()
	ws.ShiftID = "ghost"
	_, err = svc.Create(ctx, ws)
	require.EqualError(t, err, "Work shift with ID 'ghost' does not exist")

	ws = validSchedule()
	ws.JobTypeID = "ghost"
	_, err = svc.Create(ctx, ws)
	require.EqualError(t, err, "Job type with ID 'ghost' does not exist")

	ws = validSchedule()
	ghost := "ghost"
	ws.SeasonID = &ghost
	_, err = svc.Create(ctx, ws)
	require.EqualError(t, err, "Season with ID 'ghost' does not exist")
}

func TestCreateSkipsSeasonProbeWhenUnset(t *testing.T) {
	repo := newMemoryRepo()
	repo.seasons = map[string]bool{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validSchedule())
	require.NoError(t, err)
	require.Equal(t, StatusPlanned, created.Status)
}

func TestUpdateProbesOnlyPatchedReferences(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSchedule())
	require.NoError(t, err)

	ghost := "ghost"
	_, err = svc.Update(ctx, created.ID, Patch{PartnerID: &ghost})
	require.EqualError(t, err, "Partner with ID 'ghost' does not exist")

	note := "rescheduled to morning"
	updated, err := svc.Update(ctx, created.ID, Patch{Note: &note})
	require.NoError(t, err)
	require.Equal(t, note, updated.Note)
}

func TestConfirmSchedule(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validSchedule())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, confirmed.Status)

	_, err = svc.Confirm(ctx, "nope")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
