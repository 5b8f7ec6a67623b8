package inventory

import "context"

// Repository is the persistence contract for inventory items.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, id string, patch Patch) (Item, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, change float64) (Item, error)
	ListLowStock(ctx context.Context) ([]Item, error)
	Stats(ctx context.Context) (Stats, error)
}
