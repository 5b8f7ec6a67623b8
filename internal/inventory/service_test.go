package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

type memoryRepo struct {
	items map[string]Item
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[string]Item)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Item, error) {
	var out []Item
	for _, it := range r.items {
		if filters.CategoryID != "" && (it.CategoryID == nil || *it.CategoryID != filters.CategoryID) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Item, error) {
	it, ok := r.items[id]
	if !ok {
		return Item{}, httpx.NotFound("Inventory item with ID '%s' not found", id)
	}
	return it, nil
}

func (r *memoryRepo) Create(ctx context.Context, item Item) (Item, error) {
	item.ID = uuid.NewString()
	r.items[item.ID] = item
	return item, nil
}

func (r *memoryRepo) Update(ctx context.Context, id string, patch Patch) (Item, error) {
	it, ok := r.items[id]
	if !ok {
		return Item{}, httpx.NotFound("Inventory item with ID '%s' not found", id)
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.MinQuantity != nil {
		it.MinQuantity = *patch.MinQuantity
	}
	r.items[id] = it
	return it, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return httpx.NotFound("Inventory item with ID '%s' not found", id)
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) AdjustStock(ctx context.Context, id string, change float64) (Item, error) {
	it, ok := r.items[id]
	if !ok {
		return Item{}, httpx.NotFound("Inventory item with ID '%s' not found", id)
	}
	if it.Quantity+change < 0 {
		return Item{}, httpx.Validation("Stock quantity cannot become negative")
	}
	it.Quantity += change
	r.items[id] = it
	return it, nil
}

func (r *memoryRepo) ListLowStock(ctx context.Context) ([]Item, error) {
	var out []Item
	for _, it := range r.items {
		if it.Quantity <= it.MinQuantity {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memoryRepo) Stats(ctx context.Context) (Stats, error) {
	s := Stats{TotalItems: len(r.items)}
	for _, it := range r.items {
		s.TotalQuantity += it.Quantity
		if it.Quantity <= it.MinQuantity {
			s.LowStockItems++
		}
	}
	return s, nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil, nil)
}

func TestCreateItemValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name    string
		item    Item
		message string
	}{
		{"missing code", Item{Name: "NPK", Unit: "kg"}, "Item code is required"},
		{"missing name", Item{Code: "VT001", Unit: "kg"}, "Item name is required"},
		{"missing unit", Item{Code: "VT001", Name: "NPK"}, "Item unit is required"},
		{"negative quantity", Item{Code: "VT001", Name: "NPK", Unit: "kg", Quantity: -1}, "Quantity must be greater than or equal to 0"},
		{"negative min", Item{Code: "VT001", Name: "NPK", Unit: "kg", MinQuantity: -1}, "Minimum quantity must be greater than or equal to 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.item)
			require.ErrorIs(t, err, httpx.ErrValidation)
			require.EqualError(t, err, tc.message)
		})
	}
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Item{Code: "VT001", Name: "NPK", Unit: "kg", Quantity: 10})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, created.ID, -4)
	require.NoError(t, err)
	require.Equal(t, 6.0, adjusted.Quantity)

	_, err = svc.AdjustStock(ctx, created.ID, -7)
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.EqualError(t, err, "Stock quantity cannot become negative")

	// Quantity unchanged after the rejected adjustment.
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 6.0, got.Quantity)
}

func TestAdjustStockToExactlyZero(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Item{Code: "VT001", Name: "NPK", Unit: "kg", Quantity: 5})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, created.ID, -5)
	require.NoError(t, err)
	require.Zero(t, adjusted.Quantity)
}

func TestAdjustStockMissingItem(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.AdjustStock(context.Background(), "missing", 1)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestListLowStock(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, Item{Code: "VT001", Name: "NPK", Unit: "kg", Quantity: 50, MinQuantity: 100})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Item{Code: "VT002", Name: "Seed", Unit: "kg", Quantity: 100, MinQuantity: 100})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Item{Code: "VT003", Name: "Shears", Unit: "pcs", Quantity: 25, MinQuantity: 5})
	require.NoError(t, err)

	low, err := svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	for _, it := range low {
		require.LessOrEqual(t, it.Quantity, it.MinQuantity)
	}
}

func TestInventoryStats(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, Item{Code: "VT001", Name: "NPK", Unit: "kg", Quantity: 50, MinQuantity: 100})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Item{Code: "VT002", Name: "Seed", Unit: "kg", Quantity: 150, MinQuantity: 100})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalItems)
	require.Equal(t, 200.0, stats.TotalQuantity)
	require.Equal(t, 1, stats.LowStockItems)
}
