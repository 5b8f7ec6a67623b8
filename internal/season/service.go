package season

import (
	"context"
	"strings"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Service validates input and orchestrates repository calls.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]Season, error)
	Get(ctx context.Context, id string) (Season, error)
	Create(ctx context.Context, s Season) (Season, error)
	Update(ctx context.Context, id string, patch Patch) (Season, error)
	Delete(ctx context.Context, id string) error
	NextCode(ctx context.Context) (string, error)
	Close(ctx context.Context, id string) (Season, error)
}

type service struct {
	repo  Repository
	audit *shared.AuditLogger
}

// NewService creates a new season service.
func NewService(repo Repository, audit *shared.AuditLogger) Service {
	return &service{repo: repo, audit: audit}
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]Season, error) {
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, httpx.Validation("Season status must be one of [ACTIVE PLANNED COMPLETED]")
	}
	return s.repo.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (Season, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, season Season) (Season, error) {
	season.Name = strings.TrimSpace(season.Name)
	if season.Name == "" {
		return Season{}, httpx.Validation("Season name is required")
	}
	if season.StartDate.IsZero() {
		return Season{}, httpx.Validation("Season start date is required")
	}
	if season.Status == "" {
		season.Status = StatusPlanned
	}
	if !season.Status.Valid() {
		return Season{}, httpx.Validation("Season status must be one of [ACTIVE PLANNED COMPLETED]")
	}

	if season.Status == StatusActive {
		active, err := s.repo.ActiveExists(ctx, "")
		if err != nil {
			return Season{}, err
		}
		if active {
			return Season{}, httpx.Conflict("Another season is already ACTIVE")
		}
	}

	code, err := s.NextCode(ctx)
	if err != nil {
		return Season{}, err
	}
	season.Code = code

	created, err := s.repo.Create(ctx, season)
	if err != nil {
		return Season{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "season", EntityID: created.ID})
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (Season, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Season{}, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return Season{}, httpx.Validation("Season name is required")
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return Season{}, httpx.Validation("Season status must be one of [ACTIVE PLANNED COMPLETED]")
		}
		if *patch.Status == StatusActive {
			active, err := s.repo.ActiveExists(ctx, id)
			if err != nil {
				return Season{}, err
			}
			if active {
				return Season{}, httpx.Conflict("Another season is already ACTIVE")
			}
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Season{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "season", EntityID: id})
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
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "season", EntityID: id})
	return nil
}

func (s *service) NextCode(ctx context.Context) (string, error) {
	last, err := s.repo.LastCode(ctx)
	if err != nil {
		return "", err
	}
	return shared.NextCode(CodePrefix, last), nil
}

func (s *service) Close(ctx context.Context, id string) (Season, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Season{}, err
	}
	closed, err := s.repo.Close(ctx, id)
	if err != nil {
		return Season{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "close", Entity: "season", EntityID: id})
	return closed, nil
}
