package schedule

import (
	"context"

	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Repository is the persistence contract for work schedules. The *Exists
// probes back the referenced-entity checks the service runs before a write.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]WorkSchedule, shared.Pagination, error)
	Get(ctx context.Context, id string) (WorkSchedule, error)
	Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)
	Update(ctx context.Context, id string, patch Patch) (WorkSchedule, error)
	Delete(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string) (WorkSchedule, error)
	PartnerExists(ctx context.Context, id string) (bool, error)
	ShiftExists(ctx context.Context, id string) (bool, error)
	JobTypeExists(ctx context.Context, id string) (bool, error)
	SeasonExists(ctx context.Context, id string) (bool, error)
}
