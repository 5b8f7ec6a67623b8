package schedule

import (
	"context"
	"strings"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Service validates input and orchestrates repository calls.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]WorkSchedule, shared.Pagination, error)
	Get(ctx context.Context, id string) (WorkSchedule, error)
	Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)
	Update(ctx context.Context, id string, patch Patch) (WorkSchedule, error)
	Delete(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string) (WorkSchedule, error)
}

type service struct {
	repo  Repository
	audit *shared.AuditLogger
}

// NewService creates a new schedule service.
func NewService(repo Repository, audit *shared.AuditLogger) Service {
	return &service{repo: repo, audit: audit}
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]WorkSchedule, shared.Pagination, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (WorkSchedule, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error) {
	ws.PartnerID = strings.TrimSpace(ws.PartnerID)
	ws.ShiftID = strings.TrimSpace(ws.ShiftID)
	ws.JobTypeID = strings.TrimSpace(ws.JobTypeID)
	if ws.PartnerID == "" {
		return WorkSchedule{}, httpx.Validation("Schedule partner ID is required")
	}
	if ws.ShiftID == "" {
		return WorkSchedule{}, httpx.Validation("Schedule shift ID is required")
	}
	if ws.JobTypeID == "" {
		return WorkSchedule{}, httpx.Validation("Schedule job type ID is required")
	}
	if ws.WorkDate.IsZero() {
		return WorkSchedule{}, httpx.Validation("Schedule work date is required")
	}
	if ws.Status == "" {
		ws.Status = StatusPlanned
	}

	if err := s.checkReferences(ctx, ws.PartnerID, ws.ShiftID, ws.JobTypeID, ws.SeasonID); err != nil {
		return WorkSchedule{}, err
	}

	created, err := s.repo.Create(ctx, ws)
	if err != nil {
		return WorkSchedule{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "work_schedule", EntityID: created.ID})
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (WorkSchedule, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return WorkSchedule{}, err
	}

	if patch.PartnerID != nil {
		if err := s.checkOne(ctx, s.repo.PartnerExists, *patch.PartnerID, "Partner"); err != nil {
			return WorkSchedule{}, err
		}
	}
	if patch.ShiftID != nil {
		if err := s.checkOne(ctx, s.repo.ShiftExists, *patch.ShiftID, "Work shift"); err != nil {
			return WorkSchedule{}, err
		}
	}
	if patch.JobTypeID != nil {
		if err := s.checkOne(ctx, s.repo.JobTypeExists, *patch.JobTypeID, "Job type"); err != nil {
			return WorkSchedule{}, err
		}
	}
	if patch.SeasonID != nil && *patch.SeasonID != "" {
		if err := s.checkOne(ctx, s.repo.SeasonExists, *patch.SeasonID, "Season"); err != nil {
			return WorkSchedule{}, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return WorkSchedule{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "work_schedule", EntityID: id})
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
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "work_schedule", EntityID: id})
	return nil
}

func (s *service) Confirm(ctx context.Context, id string) (WorkSchedule, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return WorkSchedule{}, err
	}
	confirmed, err := s.repo.Confirm(ctx, id)
	if err != nil {
		return WorkSchedule{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "confirm", Entity: "work_schedule", EntityID: id})
	return confirmed, nil
}

func (s *service) checkReferences(ctx context.Context, partnerID, shiftID, jobTypeID string, seasonID *string) error {
	if err := s.checkOne(ctx, s.repo.PartnerExists, partnerID, "Partner"); err != nil {
		return err
	}
	if err := s.checkOne(ctx, s.repo.ShiftExists, shiftID, "Work shift"); err != nil {
		return err
	}
	if err := s.checkOne(ctx, s.repo.JobTypeExists, jobTypeID, "Job type"); err != nil {
		return err
	}
	if seasonID != nil && *seasonID != "" {
		return s.checkOne(ctx, s.repo.SeasonExists, *seasonID, "Season")
	}
	return nil
}

func (s *service) checkOne(ctx context.Context, probe func(context.Context, string) (bool, error), id, label string) error {
	exists, err := probe(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return httpx.Validation("%s with ID '%s' does not exist", label, id)
	}
	return nil
}
