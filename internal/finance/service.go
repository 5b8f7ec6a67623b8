package finance

import (
	"context"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Service validates input and orchestrates repository calls.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]Transaction, shared.Pagination, error)
	Get(ctx context.Context, id string) (Transaction, error)
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	Update(ctx context.Context, id string, patch Patch) (Transaction, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo  Repository
	audit *shared.AuditLogger
	cache *shared.StatsCache
}

// NewService creates a new finance service.
func NewService(repo Repository, audit *shared.AuditLogger, cache *shared.StatsCache) Service {
	return &service{repo: repo, audit: audit, cache: cache}
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]Transaction, shared.Pagination, error) {
	if filters.Type != nil && !filters.Type.Valid() {
		return nil, shared.Pagination{}, httpx.Validation("Transaction type must be one of [INCOME EXPENSE]")
	}
	return s.repo.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (Transaction, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	if err := validateTransaction(tx); err != nil {
		return Transaction{}, err
	}

	created, err := s.repo.Create(ctx, tx)
	if err != nil {
		return Transaction{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "transaction", EntityID: created.ID})
	_ = s.cache.Bump(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (Transaction, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Transaction{}, err
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return Transaction{}, httpx.Validation("Transaction type must be one of [INCOME EXPENSE]")
	}
	if patch.Amount != nil && *patch.Amount <= 0 {
		return Transaction{}, httpx.Validation("Transaction amount must be greater than 0")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Transaction{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "transaction", EntityID: id})
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
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "transaction", EntityID: id})
	_ = s.cache.Bump(ctx)
	return nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.cache.FetchJSON(ctx, "transactions", &stats, func(ctx context.Context) (any, error) {
		return s.repo.Stats(ctx)
	})
	return stats, err
}

func validateTransaction(tx Transaction) error {
	if tx.Type == "" {
		return httpx.Validation("Transaction type is required")
	}
	if !tx.Type.Valid() {
		return httpx.Validation("Transaction type must be one of [INCOME EXPENSE]")
	}
	if tx.Amount <= 0 {
		return httpx.Validation("Transaction amount must be greater than 0")
	}
	if tx.TransactionDate.IsZero() {
		return httpx.Validation("Transaction date is required")
	}
	return nil
}
