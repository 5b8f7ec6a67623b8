package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Service validates input and orchestrates repository calls.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]Payroll, error)
	Get(ctx context.Context, id string) (Payroll, error)
	Create(ctx context.Context, p Payroll) (Payroll, error)
	Update(ctx context.Context, id string, patch Patch) (Payroll, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status Status, paymentDate *time.Time) (Payroll, error)
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo  Repository
	audit *shared.AuditLogger
	cache *shared.StatsCache
}

// NewService creates a new payroll service.
func NewService(repo Repository, audit *shared.AuditLogger, cache *shared.StatsCache) Service {
	return &service{repo: repo, audit: audit, cache: cache}
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]Payroll, error) {
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, httpx.Validation("Payroll status must be one of [DRAFT APPROVED PAID CANCELLED]")
	}
	return s.repo.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (Payroll, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, p Payroll) (Payroll, error) {
	p.PartnerID = strings.TrimSpace(p.PartnerID)
	if p.PartnerID == "" {
		return Payroll{}, httpx.Validation("Payroll partner ID is required")
	}
	if p.FinalAmount < 0 {
		return Payroll{}, httpx.Validation("Payroll final amount must be greater than or equal to 0")
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if !p.Status.Valid() {
		return Payroll{}, httpx.Validation("Payroll status must be one of [DRAFT APPROVED PAID CANCELLED]")
	}

	exists, err := s.repo.PartnerExists(ctx, p.PartnerID)
	if err != nil {
		return Payroll{}, err
	}
	if !exists {
		return Payroll{}, httpx.Validation("Partner with ID '%s' does not exist", p.PartnerID)
	}

	last, err := s.repo.LastCode(ctx)
	if err != nil {
		return Payroll{}, err
	}
	p.Code = shared.NextCode(CodePrefix, last)

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Payroll{}, err
	}
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "create", Entity: "payroll", EntityID: created.ID})
	_ = s.cache.Bump(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (Payroll, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Payroll{}, err
	}
	if patch.FinalAmount != nil && *patch.FinalAmount < 0 {
		return Payroll{}, httpx.Validation("Payroll final amount must be greater than or equal to 0")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Payroll{}, err
	}
	if !patch.IsEmpty() {
		_ = s.audit.Record(ctx, shared.AuditLog{Action: "update", Entity: "payroll", EntityID: id})
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
	_ = s.audit.Record(ctx, shared.AuditLog{Action: "delete", Entity: "payroll", EntityID: id})
	_ = s.cache.Bump(ctx)
	return nil
}

// UpdateStatus moves a payroll to the given status. The PAID transition also
// records the payment: a single transaction inserts the EXPENSE movement,
// links it into the payroll and settles the partner balance together.
func (s *service) UpdateStatus(ctx context.Context, id string, status Status, paymentDate *time.Time) (Payroll, error) {
	if !status.Valid() {
		return Payroll{}, httpx.Validation("Payroll status must be one of [DRAFT APPROVED PAID CANCELLED]")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Payroll{}, err
	}

	if status == StatusPaid {
		if p.Status == StatusPaid {
			return Payroll{}, httpx.Conflict("Payroll '%s' is already PAID", p.Code)
		}
		date := time.Now()
		if paymentDate != nil {
			date = *paymentDate
		}
		err = s.repo.WithTx(ctx, func(tx TxRepository) error {
			// Transactions require a positive amount; a zero-amount payroll
			// is marked PAID with no money movement.
			var txID *string
			if p.FinalAmount > 0 {
				movementID, err := tx.InsertExpenseTransaction(ctx, PaymentRecord{
					PartnerID:   p.PartnerID,
					Amount:      p.FinalAmount,
					Description: "Payroll payment " + p.Code,
					Date:        date,
				})
				if err != nil {
					return err
				}
				txID = &movementID
			}
			if err := tx.MarkPaid(ctx, id, txID, date); err != nil {
				return err
			}
			if p.FinalAmount > 0 {
				return tx.AdjustPartnerBalance(ctx, p.PartnerID, -p.FinalAmount)
			}
			return nil
		})
	} else {
		err = s.repo.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return Payroll{}, err
	}

	_ = s.audit.Record(ctx, shared.AuditLog{Action: "update_status", Entity: "payroll", EntityID: id})
	_ = s.cache.Bump(ctx)
	return s.repo.Get(ctx, id)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.cache.FetchJSON(ctx, "payrolls", &stats, func(ctx context.Context) (any, error) {
		return s.repo.Stats(ctx)
	})
	return stats, err
}
