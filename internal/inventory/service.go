package inventory

import (
	"context"
	"strings"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Service validates input and orchestrates repository calls.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, id string, patch Patch) (Item, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, change float64) (Item, error)
	ListLowStock(ctx context.Context) ([]Item, error)
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo  Repository
	audit *shared.AuditLogger
	cache *shared.StatsCache
}

// NewService creates a new inventory service.
func NewService(repo Repository, audit *shared.AuditLogger, cache *shared.StatsCache) Service {
	return &service{repo: repo, audit: audit, cache: cache}
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]Item, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, item Item) (Item, error) {
	item.Code = strings.TrimSpace(item.Code)
	item.Name = strings.TrimSpace(item.Name)
	item.Unit = strings.TrimSpace(item.Unit)
	if err := validateItem(item); err != nil {
		return Item{}, err
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return Item{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "inventory_item", EntityID: created.ID})
	_ = s.cache.Bump(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (Item, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Item{}, err
	}
	if patch.Code != nil && strings.TrimSpace(*patch.Code) == "" {
		return Item{}, httpx.Validation("Item code is required")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return Item{}, httpx.Validation("Item name is required")
	}
	if patch.Unit != nil && strings.TrimSpace(*patch.Unit) == "" {
		return Item{}, httpx.Validation("Item unit is required")
	}
	if patch.MinQuantity != nil && *patch.MinQuantity < 0 {
		return Item{}, httpx.Validation("Minimum quantity must be greater than or equal to 0")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Item{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "inventory_item", EntityID: id})
		_ = s.cache.Bump(ctx)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "inventory_item", EntityID: id})
	_ = s.cache.Bump(ctx)
	return nil
}

func (s *service) AdjustStock(ctx context.Context, id string, change float64) (Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if item.Quantity+change < 0 {
		return Item{}, httpx.Validation("Stock quantity cannot become negative")
	}

	adjusted, err := s.repo.AdjustStock(ctx, id, change)
	if err != nil {
		return Item{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "adjust_stock", Entity: "inventory_item", EntityID: id})
	_ = s.cache.Bump(ctx)
	return adjusted, nil
}

func (s *service) ListLowStock(ctx context.Context) ([]Item, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.cache.FetchJSON(ctx, "inventory", &stats, func(ctx context.Context) (any, error) {
		return s.repo.Stats(ctx)
	})
	return stats, err
}

func validateItem(item Item) error {
	if item.Code == "" {
		return httpx.Validation("Item code is required")
	}
	if item.Name == "" {
		return httpx.Validation("Item name is required")
	}
	if item.Unit == "" {
		return httpx.Validation("Item unit is required")
	}
	if item.Quantity < 0 {
		return httpx.Validation("Quantity must be greater than or equal to 0")
	}
	if item.MinQuantity < 0 {
		return httpx.Validation("Minimum quantity must be greater than or equal to 0")
	}
	return nil
}
