package partner

import (
	"context"
	"regexp"
	"strings"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Service validates input and orchestrates repository calls.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]Partner, error)
	Get(ctx context.Context, id string) (Partner, error)
	Create(ctx context.Context, p Partner) (Partner, error)
	Update(ctx context.Context, id string, patch Patch) (Partner, error)
	Delete(ctx context.Context, id string) error
	Balance(ctx context.Context, id string) (float64, error)
	Stats(ctx context.Context) (Stats, error)
}

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

type service struct {
	repo  Repository
	audit *shared.AuditLogger
	cache *shared.StatsCache
}

// NewService creates a new partner service.
func NewService(repo Repository, audit *shared.AuditLogger, cache *shared.StatsCache) Service {
	return &service{repo: repo, audit: audit, cache: cache}
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]Partner, error) {
	if filters.Type != nil && !filters.Type.Valid() {
		return nil, httpx.Validation("Partner type must be one of [SUPPLIER BUYER WORKER]")
	}
	return s.repo.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (Partner, error) {
	if strings.TrimSpace(id) == "" {
		return Partner{}, httpx.Validation("Partner ID is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, p Partner) (Partner, error) {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	if err := validatePartner(p); err != nil {
		return Partner{}, err
	}

	// Probe first so the duplicate answer does not depend on the constraint;
	// the insert still maps 23505 as a backstop for concurrent creates.
	exists, err := s.repo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return Partner{}, err
	}
	if exists {
		return Partner{}, httpx.Conflict("Partner code '%s' already exists", p.Code)
	}

	p.Balance = 0
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Partner{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "partner", EntityID: created.ID})
	_ = s.cache.Bump(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (Partner, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Partner{}, err
	}
	if patch.Code != nil && strings.TrimSpace(*patch.Code) == "" {
		return Partner{}, httpx.Validation("Partner code is required")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return Partner{}, httpx.Validation("Partner name is required")
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return Partner{}, httpx.Validation("Partner type must be one of [SUPPLIER BUYER WORKER]")
	}
	if patch.Phone != nil && *patch.Phone != "" && !phonePattern.MatchString(*patch.Phone) {
		return Partner{}, httpx.Validation("Partner phone number is invalid")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Partner{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "partner", EntityID: id})
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
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "partner", EntityID: id})
	_ = s.cache.Bump(ctx)
	return nil
}

func (s *service) Balance(ctx context.Context, id string) (float64, error) {
	return s.repo.Balance(ctx, id)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.cache.FetchJSON(ctx, "partners", &stats, func(ctx context.Context) (any, error) {
		return s.repo.Stats(ctx)
	})
	return stats, err
}

func validatePartner(p Partner) error {
	if p.Code == "" {
		return httpx.Validation("Partner code is required")
	}
	if p.Name == "" {
		return httpx.Validation("Partner name is required")
	}
	if p.Type == "" {
		return httpx.Validation("Partner type is required")
	}
	if !p.Type.Valid() {
		return httpx.Validation("Partner type must be one of [SUPPLIER BUYER WORKER]")
	}
	if p.Phone != "" && !phonePattern.MatchString(p.Phone) {
		return httpx.Validation("Partner phone number is invalid")
	}
	return nil
}
