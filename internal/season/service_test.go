package season

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

type memoryRepo struct {
	seasons  map[string]Season
	lastCode string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{seasons: make(map[string]Season)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Season, error) {
	var out []Season
	for _, s := range r.seasons {
		if filters.Status != nil && s.Status != *filters.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Season, error) {
	s, ok := r.seasons[id]
	if !ok {
		return Season{}, httpx.NotFound("Season with ID '%s' not found", id)
	}
	return s, nil
}

func (r *memoryRepo) Create(ctx context.Context, s Season) (Season, error) {
	s.ID = uuid.NewString()
	r.seasons[s.ID] = s
	r.lastCode = s.Code
	return s, nil
}

func (r *memoryRepo) Update(ctx context.Context, id string, patch Patch) (Season, error) {
	s, ok := r.seasons[id]
	if !ok {
		return Season{}, httpx.NotFound("Season with ID '%s' not found", id)
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.StartDate != nil {
		s.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		if patch.EndDate.IsZero() {
			s.EndDate = nil
		} else {
			end := *patch.EndDate
			s.EndDate = &end
		}
	}
	if patch.Status != nil {
		s.Status = *patch.Status
	}
	r.seasons[id] = s
	return s, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.seasons[id]; !ok {
		return httpx.NotFound("Season with ID '%s' not found", id)
	}
	delete(r.seasons, id)
	return nil
}

func (r *memoryRepo) LastCode(ctx context.Context) (string, error) {
	return r.lastCode, nil
}

func (r *memoryRepo) ActiveExists(ctx context.Context, excludeID string) (bool, error) {
	for id, s := range r.seasons {
		if s.Status == StatusActive && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) Close(ctx context.Context, id string) (Season, error) {
	s, ok := r.seasons[id]
	if !ok {
		return Season{}, httpx.NotFound("Season with ID '%s' not found", id)
	}
	now := time.Now()
	s.Status = StatusCompleted
	s.ClosedAt = &now
	r.seasons[id] = s
	return s, nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil)
}

func start() time.Time {
	return time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
}

func TestCreateGeneratesSequentialCodes(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, Season{Name: "Spring 2025", StartDate: start()})
	require.NoError(t, err)
	require.Equal(t, "MUAVU01", first.Code)
	require.Equal(t, StatusPlanned, first.Status)

	second, err := svc.Create(ctx, Season{Name: "Summer 2025", StartDate: start()})
	require.NoError(t, err)
	require.Equal(t, "MUAVU02", second.Code)
}

func TestNextCodeStartsAtOne(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	code, err := svc.NextCode(context.Background())
	require.NoError(t, err)
	require.Equal(t, "MUAVU01", code)
}

func TestCreateRequiresNameAndStartDate(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Season{Name: "  ", StartDate: start()})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.EqualError(t, err, "Season name is required")

	_, err = svc.Create(ctx, Season{Name: "Spring 2025"})
	require.EqualError(t, err, "Season start date is required")
}

func TestCreateRejectsSecondActiveSeason(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Season{Name: "Spring 2025", StartDate: start(), Status: StatusActive})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Season{Name: "Summer 2025", StartDate: start(), Status: StatusActive})
	require.ErrorIs(t, err, httpx.ErrConflict)
	require.EqualError(t, err, "Another season is already ACTIVE")
}

func TestUpdateActivationChecksOtherSeasons(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	active, err := svc.Create(ctx, Season{Name: "Spring 2025", StartDate: start(), Status: StatusActive})
	require.NoError(t, err)
	planned, err := svc.Create(ctx, Season{Name: "Summer 2025", StartDate: start()})
	require.NoError(t, err)

	// Activating the planned season conflicts with the running one.
	wantActive := StatusActive
	_, err = svc.Update(ctx, planned.ID, Patch{Status: &wantActive})
	require.ErrorIs(t, err, httpx.ErrConflict)

	// Re-saving the active season as ACTIVE excludes itself from the probe.
	_, err = svc.Update(ctx, active.ID, Patch{Status: &wantActive})
	require.NoError(t, err)
}

func TestCloseMarksSeasonCompleted(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Season{Name: "Spring 2025", StartDate: start(), Status: StatusActive})
	require.NoError(t, err)

	closed, err := svc.Close(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, closed.Status)
	require.NotNil(t, closed.ClosedAt)
}

func TestCloseMissingSeason(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.Close(context.Background(), "nope")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	bad := Status("PAUSED")
	_, err := svc.List(context.Background(), ListFilters{Status: &bad})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.EqualError(t, err, "Season status must be one of [ACTIVE PLANNED COMPLETED]")
}
