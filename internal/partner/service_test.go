package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

type memoryRepo struct {
	partners    map[string]Partner
	updateCalls int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{partners: make(map[string]Partner)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Partner, error) {
	var out []Partner
	for _, p := range r.partners {
		if filters.Type != nil && p.Type != *filters.Type {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Partner, error) {
	p, ok := r.partners[id]
	if !ok {
		return Partner{}, httpx.NotFound("Partner with ID '%s' not found", id)
	}
	return p, nil
}

func (r *memoryRepo) Create(ctx context.Context, p Partner) (Partner, error) {
	p.ID = uuid.NewString()
	r.partners[p.ID] = p
	return p, nil
}

func (r *memoryRepo) Update(ctx context.Context, id string, patch Patch) (Partner, error) {
	r.updateCalls++
	p, ok := r.partners[id]
	if !ok {
		return Partner{}, httpx.NotFound("Partner with ID '%s' not found", id)
	}
	if patch.Code != nil {
		p.Code = *patch.Code
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	r.partners[id] = p
	return p, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.partners[id]; !ok {
		return httpx.NotFound("Partner with ID '%s' not found", id)
	}
	delete(r.partners, id)
	return nil
}

func (r *memoryRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	for _, p := range r.partners {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) Balance(ctx context.Context, id string) (float64, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Balance, nil
}

func (r *memoryRepo) AdjustBalance(ctx context.Context, id string, delta float64) error {
	p, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	p.Balance += delta
	r.partners[id] = p
	return nil
}

func (r *memoryRepo) Stats(ctx context.Context) (Stats, error) {
	s := Stats{Total: len(r.partners)}
	for _, p := range r.partners {
		switch p.Type {
		case TypeSupplier:
			s.Suppliers++
		case TypeBuyer:
			s.Buyers++
		case TypeWorker:
			s.Workers++
		}
		s.TotalBalance += p.Balance
	}
	return s, nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil, nil)
}

func TestCreateRequiresFields(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name    string
		partner Partner
		message string
	}{
		{"missing code", Partner{Name: "An", Type: TypeWorker}, "Partner code is required"},
		{"missing name", Partner{Code: "NV001", Type: TypeWorker}, "Partner name is required"},
		{"missing type", Partner{Code: "NV001", Name: "An"}, "Partner type is required"},
		{"bad type", Partner{Code: "NV001", Name: "An", Type: "VENDOR"}, "Partner type must be one of [SUPPLIER BUYER WORKER]"},
		{"bad phone", Partner{Code: "NV001", Name: "An", Type: TypeWorker, Phone: "abc"}, "Partner phone number is invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.partner)
			require.ErrorIs(t, err, httpx.ErrValidation)
			require.EqualError(t, err, tc.message)
		})
	}
}

func TestCreateTrimsAndZeroesBalance(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), Partner{
		Code:    "  NV001  ",
		Name:    " Nguyen Van An ",
		Type:    TypeWorker,
		Balance: 999,
	})
	require.NoError(t, err)
	require.Equal(t, "NV001", created.Code)
	require.Equal(t, "Nguyen Van An", created.Name)
	require.Zero(t, created.Balance)
	require.NotEmpty(t, created.ID)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, Partner{Code: "NV001", Name: "An", Type: TypeWorker})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Partner{Code: "NV001", Name: "Binh", Type: TypeWorker})
	require.ErrorIs(t, err, httpx.ErrConflict)
	require.EqualError(t, err, "Partner code 'NV001' already exists")
}

func TestUpdateChecksExistenceFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	name := "Binh"
	_, err := svc.Update(context.Background(), "missing", Patch{Name: &name})
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.Zero(t, repo.updateCalls)
}

func TestUpdateValidatesPatchFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Partner{Code: "NV001", Name: "An", Type: TypeWorker})
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(ctx, created.ID, Patch{Name: &blank})
	require.ErrorIs(t, err, httpx.ErrValidation)

	bad := Type("VENDOR")
	_, err = svc.Update(ctx, created.ID, Patch{Type: &bad})
	require.ErrorIs(t, err, httpx.ErrValidation)

	phone := "not-a-phone"
	_, err = svc.Update(ctx, created.ID, Patch{Phone: &phone})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateEmptyPatchReturnsUnchanged(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Partner{Code: "NV001", Name: "An", Type: TypeWorker})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Patch{})
	require.NoError(t, err)
	require.Equal(t, created, updated)
}

func TestDeleteMissingPartner(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	err := svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestStatsCountsPerType(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	for i, typ := range []Type{TypeSupplier, TypeBuyer, TypeWorker, TypeWorker} {
		_, err := svc.Create(ctx, Partner{Code: "P" + string(rune('0'+i)), Name: "Partner", Type: typ})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 1, stats.Suppliers)
	require.Equal(t, 1, stats.Buyers)
	require.Equal(t, 2, stats.Workers)
}
