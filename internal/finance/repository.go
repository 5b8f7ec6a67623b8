package finance

import (
	"context"

	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Repository is the persistence contract for finance transactions.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Transaction, shared.Pagination, error)
	Get(ctx context.Context, id string) (Transaction, error)
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	Update(ctx context.Context, id string, patch Patch) (Transaction, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}
