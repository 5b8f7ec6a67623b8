package partner

import "context"

// Repository persists partners. All SQL lives behind this interface.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Partner, error)
	Get(ctx context.Context, id string) (Partner, error)
	Create(ctx context.Context, p Partner) (Partner, error)
	Update(ctx context.Context, id string, patch Patch) (Partner, error)
	Delete(ctx context.Context, id string) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Balance(ctx context.Context, id string) (float64, error)
	AdjustBalance(ctx context.Context, id string, delta float64) error
	Stats(ctx context.Context) (Stats, error)
}
