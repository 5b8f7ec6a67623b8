package payroll

import (
	"context"
	"time"
)

// PaymentRecord describes the finance transaction inserted when a payroll
// is paid.
type PaymentRecord struct {
	PartnerID   string
	Amount      float64
	Description string
	Date        time.Time
}

// TxRepository groups the writes of a payroll payment; implementations run
// every call of one WithTx closure in a single database transaction. A nil
// transaction id marks a zero-amount payroll PAID without a linked movement.
type TxRepository interface {
	InsertExpenseTransaction(ctx context.Context, rec PaymentRecord) (string, error)
	MarkPaid(ctx context.Context, id string, transactionID *string, paymentDate time.Time) error
	AdjustPartnerBalance(ctx context.Context, partnerID string, delta float64) error
}

// Repository is the persistence contract for payrolls.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Payroll, error)
	Get(ctx context.Context, id string) (Payroll, error)
	Create(ctx context.Context, p Payroll) (Payroll, error)
	Update(ctx context.Context, id string, patch Patch) (Payroll, error)
	Delete(ctx context.Context, id string) error
	LastCode(ctx context.Context) (string, error)
	PartnerExists(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Stats(ctx context.Context) (Stats, error)
	WithTx(ctx context.Context, fn func(tx TxRepository) error) error
}
