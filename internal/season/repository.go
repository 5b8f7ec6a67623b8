package season

import "context"

// Repository is the persistence contract for seasons.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Season, error)
	Get(ctx context.Context, id string) (Season, error)
	Create(ctx context.Context, s Season) (Season, error)
	Update(ctx context.Context, id string, patch Patch) (Season, error)
	Delete(ctx context.Context, id string) error
	LastCode(ctx context.Context) (string, error)
	ActiveExists(ctx context.Context, excludeID string) (bool, error)
	Close(ctx context.Context, id string) (Season, error)
}
