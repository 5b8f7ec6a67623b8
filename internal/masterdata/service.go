package masterdata

import (
	"context"
	"regexp"
	"strings"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Service validates input and orchestrates repository calls for the lookup
// entities.
type Service interface {
	ListJobTypes(ctx context.Context) ([]JobType, error)
	GetJobType(ctx context.Context, id string) (JobType, error)
	CreateJobType(ctx context.Context, jt JobType) (JobType, error)
	UpdateJobType(ctx context.Context, id string, patch JobTypePatch) (JobType, error)
	DeleteJobType(ctx context.Context, id string) error

	ListWorkShifts(ctx context.Context) ([]WorkShift, error)
	GetWorkShift(ctx context.Context, id string) (WorkShift, error)
	CreateWorkShift(ctx context.Context, ws WorkShift) (WorkShift, error)
	UpdateWorkShift(ctx context.Context, id string, patch WorkShiftPatch) (WorkShift, error)
	DeleteWorkShift(ctx context.Context, id string) error

	ListWarehouseTypes(ctx context.Context) ([]WarehouseType, error)
	GetWarehouseType(ctx context.Context, id string) (WarehouseType, error)
	CreateWarehouseType(ctx context.Context, wt WarehouseType) (WarehouseType, error)
	UpdateWarehouseType(ctx context.Context, id string, patch WarehouseTypePatch) (WarehouseType, error)
	DeleteWarehouseType(ctx context.Context, id string) error
}

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type service struct {
	repo  Repository
	audit *shared.AuditLogger
}

// NewService creates a new master data service.
func NewService(repo Repository, audit *shared.AuditLogger) Service {
	return &service{repo: repo, audit: audit}
}

// Job type operations

func (s *service) ListJobTypes(ctx context.Context) ([]JobType, error) {
	return s.repo.ListJobTypes(ctx)
}

func (s *service) GetJobType(ctx context.Context, id string) (JobType, error) {
	return s.repo.GetJobType(ctx, id)
}

func (s *service) CreateJobType(ctx context.Context, jt JobType) (JobType, error) {
	jt.Name = strings.TrimSpace(jt.Name)
	if jt.Name == "" {
		return JobType{}, httpx.Validation("Job name is required")
	}
	created, err := s.repo.CreateJobType(ctx, jt)
	if err != nil {
		return JobType{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "job_type", EntityID: created.ID})
	return created, nil
}

func (s *service) UpdateJobType(ctx context.Context, id string, patch JobTypePatch) (JobType, error) {
	if _, err := s.repo.GetJobType(ctx, id); err != nil {
		return JobType{}, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return JobType{}, httpx.Validation("Job name is required")
	}
	updated, err := s.repo.UpdateJobType(ctx, id, patch)
	if err != nil {
		return JobType{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "job_type", EntityID: id})
	}
	return updated, nil
}

func (s *service) DeleteJobType(ctx context.Context, id string) error {
	if _, err := s.repo.GetJobType(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteJobType(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "job_type", EntityID: id})
	return nil
}

// Work shift operations

func (s *service) ListWorkShifts(ctx context.Context) ([]WorkShift, error) {
	return s.repo.ListWorkShifts(ctx)
}

func (s *service) GetWorkShift(ctx context.Context, id string) (WorkShift, error) {
	return s.repo.GetWorkShift(ctx, id)
}

func (s *service) CreateWorkShift(ctx context.Context, ws WorkShift) (WorkShift, error) {
	ws.Name = strings.TrimSpace(ws.Name)
	ws.StartTime = strings.TrimSpace(ws.StartTime)
	ws.EndTime = strings.TrimSpace(ws.EndTime)
	if err := validateWorkShift(ws); err != nil {
		return WorkShift{}, err
	}
	created, err := s.repo.CreateWorkShift(ctx, ws)
	if err != nil {
		return WorkShift{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "work_shift", EntityID: created.ID})
	return created, nil
}

func (s *service) UpdateWorkShift(ctx context.Context, id string, patch WorkShiftPatch) (WorkShift, error) {
	if _, err := s.repo.GetWorkShift(ctx, id); err != nil {
		return WorkShift{}, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return WorkShift{}, httpx.Validation("Shift name is required")
	}
	if patch.StartTime != nil && !timeOfDayPattern.MatchString(*patch.StartTime) {
		return WorkShift{}, httpx.Validation("Shift start time must be in HH:MM format")
	}
	if patch.EndTime != nil && !timeOfDayPattern.MatchString(*patch.EndTime) {
		return WorkShift{}, httpx.Validation("Shift end time must be in HH:MM format")
	}
	updated, err := s.repo.UpdateWorkShift(ctx, id, patch)
	if err != nil {
		return WorkShift{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "work_shift", EntityID: id})
	}
	return updated, nil
}

func (s *service) DeleteWorkShift(ctx context.Context, id string) error {
	if _, err := s.repo.GetWorkShift(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteWorkShift(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "work_shift", EntityID: id})
	return nil
}

// Warehouse type operations

func (s *service) ListWarehouseTypes(ctx context.Context) ([]WarehouseType, error) {
	return s.repo.ListWarehouseTypes(ctx)
}

func (s *service) GetWarehouseType(ctx context.Context, id string) (WarehouseType, error) {
	return s.repo.GetWarehouseType(ctx, id)
}

func (s *service) CreateWarehouseType(ctx context.Context, wt WarehouseType) (WarehouseType, error) {
	wt.Name = strings.TrimSpace(wt.Name)
	if wt.Name == "" {
		return WarehouseType{}, httpx.Validation("Warehouse type name is required")
	}
	created, err := s.repo.CreateWarehouseType(ctx, wt)
	if err != nil {
		return WarehouseType{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "warehouse_type", EntityID: created.ID})
	return created, nil
}

func (s *service) UpdateWarehouseType(ctx context.Context, id string, patch WarehouseTypePatch) (WarehouseType, error) {
	if _, err := s.repo.GetWarehouseType(ctx, id); err != nil {
		return WarehouseType{}, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return WarehouseType{}, httpx.Validation("Warehouse type name is required")
	}
	updated, err := s.repo.UpdateWarehouseType(ctx, id, patch)
	if err != nil {
		return WarehouseType{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "warehouse_type", EntityID: id})
	}
	return updated, nil
}

func (s *service) DeleteWarehouseType(ctx context.Context, id string) error {
	if _, err := s.repo.GetWarehouseType(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteWarehouseType(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "warehouse_type", EntityID: id})
	return nil
}

func validateWorkShift(ws WorkShift) error {
	if ws.Name == "" {
		return httpx.Validation("Shift name is required")
	}
	if ws.StartTime == "" {
		return httpx.Validation("Shift start time is required")
	}
	if ws.EndTime == "" {
		return httpx.Validation("Shift end time is required")
	}
	if !timeOfDayPattern.MatchString(ws.StartTime) {
		return httpx.Validation("Shift start time must be in HH:MM format")
	}
	if !timeOfDayPattern.MatchString(ws.EndTime) {
		return httpx.Validation("Shift end time must be in HH:MM format")
	}
	return nil
}
