package payroll

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/db"
	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

// repo implements Repository on PostgreSQL.
type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new payroll repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repo{db: pool}
}

const payrollSelect = `
	SELECT pr.id, pr.payroll_code, pr.partner_id, COALESCE(p.partner_name, ''),
	       pr.season_id, COALESCE(s.season_name, ''), pr.total_amount, pr.bonus,
	       pr.deduction, pr.final_amount, pr.status, pr.transaction_id,
	       pr.payment_date, pr.created_at
	FROM payrolls pr
	LEFT JOIN partners p ON p.id = pr.partner_id
	LEFT JOIN seasons s ON s.id = pr.season_id`

func scanPayroll(row pgx.Row) (Payroll, error) {
	var p Payroll
	err := row.Scan(&p.ID, &p.Code, &p.PartnerID, &p.PartnerName, &p.SeasonID, &p.SeasonName,
		&p.TotalAmount, &p.Bonus, &p.Deduction, &p.FinalAmount, &p.Status,
		&p.TransactionID, &p.PaymentDate, &p.CreatedAt)
	return p, err
}

func (r *repo) List(ctx context.Context, filters ListFilters) ([]Payroll, error) {
	query := payrollSelect
	args := []interface{}{}
	argCount := 0

	add := func(cond string, value interface{}) {
		argCount++
		if argCount == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` ` + cond + ` $` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filters.Status != nil {
		add(`pr.status =`, *filters.Status)
	}
	if filters.SeasonID != "" {
		add(`pr.season_id =`, filters.SeasonID)
	}
	if filters.PartnerID != "" {
		add(`pr.partner_id =`, filters.PartnerID)
	}
	query += ` ORDER BY pr.payroll_code DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payrolls []Payroll
	for rows.Next() {
		var p Payroll
		if err := rows.Scan(&p.ID, &p.Code, &p.PartnerID, &p.PartnerName, &p.SeasonID, &p.SeasonName,
			&p.TotalAmount, &p.Bonus, &p.Deduction, &p.FinalAmount, &p.Status,
			&p.TransactionID, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

func (r *repo) Get(ctx context.Context, id string) (Payroll, error) {
	p, err := scanPayroll(r.db.QueryRow(ctx, payrollSelect+` WHERE pr.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payroll{}, httpx.NotFound("Payroll with ID '%s' not found", id)
	}
	return p, err
}

func (r *repo) Create(ctx context.Context, p Payroll) (Payroll, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO payrolls (id, payroll_code, partner_id, season_id, total_amount, bonus, deduction, final_amount, status, transaction_id, payment_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Code, p.PartnerID, p.SeasonID, p.TotalAmount, p.Bonus, p.Deduction,
		p.FinalAmount, p.Status, p.TransactionID, p.PaymentDate, p.CreatedAt)
	if err != nil {
		return Payroll{}, err
	}
	return r.Get(ctx, p.ID)
}

func (r *repo) Update(ctx context.Context, id string, patch Patch) (Payroll, error) {
	query := `UPDATE payrolls SET`
	args := []interface{}{}
	argPos := 0

	set := ""
	if patch.SeasonID != nil {
		argPos++
		set += fmt.Sprintf(" season_id = $%d,", argPos)
		if *patch.SeasonID == "" {
			args = append(args, nil)
		} else {
			args = append(args, *patch.SeasonID)
		}
	}
	if patch.TotalAmount != nil {
		argPos++
		set += fmt.Sprintf(" total_amount = $%d,", argPos)
		args = append(args, *patch.TotalAmount)
	}
	if patch.Bonus != nil {
		argPos++
		set += fmt.Sprintf(" bonus = $%d,", argPos)
		args = append(args, *patch.Bonus)
	}
	if patch.Deduction != nil {
		argPos++
		set += fmt.Sprintf(" deduction = $%d,", argPos)
		args = append(args, *patch.Deduction)
	}
	if patch.FinalAmount != nil {
		argPos++
		set += fmt.Sprintf(" final_amount = $%d,", argPos)
		args = append(args, *patch.FinalAmount)
	}

	// A patch carrying no fields never issues an UPDATE.
	if argPos == 0 {
		return r.Get(ctx, id)
	}

	argPos++
	query += set[:len(set)-1] + fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return Payroll{}, err
	}
	if tag.RowsAffected() == 0 {
		return Payroll{}, httpx.NotFound("Payroll with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Payroll with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.db.QueryRow(ctx,
		`SELECT payroll_code FROM payrolls WHERE payroll_code LIKE $1 ORDER BY payroll_code DESC LIMIT 1`,
		CodePrefix+"%").Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return code, err
}

func (r *repo) PartnerExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM partners WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repo) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE payrolls SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Payroll with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'DRAFT'),
		       COUNT(*) FILTER (WHERE status = 'APPROVED'),
		       COUNT(*) FILTER (WHERE status = 'PAID'),
		       COUNT(*) FILTER (WHERE status = 'CANCELLED'),
		       COALESCE(SUM(final_amount), 0),
		       COALESCE(SUM(final_amount) FILTER (WHERE status = 'PAID'), 0)
		FROM payrolls`).Scan(&s.Total, &s.Draft, &s.Approved, &s.Paid, &s.Cancelled,
		&s.TotalAmount, &s.PaidAmount)
	return s, err
}

// WithTx runs fn inside one database transaction; every TxRepository call in
// the closure commits or rolls back together.
func (r *repo) WithTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&txRepo{tx: tx})
	})
}

type txRepo struct {
	tx pgx.Tx
}

func (t *txRepo) InsertExpenseTransaction(ctx context.Context, rec PaymentRecord) (string, error) {
	id := uuid.NewString()
	_, err := t.tx.Exec(ctx,
		`INSERT INTO transactions (id, partner_id, type, amount, description, transaction_date, created_at)
		 VALUES ($1, $2, 'EXPENSE', $3, $4, $5, NOW())`,
		id, rec.PartnerID, rec.Amount, rec.Description, rec.Date)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (t *txRepo) MarkPaid(ctx context.Context, id string, transactionID *string, paymentDate time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE payrolls SET status = 'PAID', transaction_id = $1, payment_date = $2 WHERE id = $3`,
		transactionID, paymentDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Payroll with ID '%s' not found", id)
	}
	return nil
}

func (t *txRepo) AdjustPartnerBalance(ctx context.Context, partnerID string, delta float64) error {
	tag, err := t.tx.Exec(ctx, `UPDATE partners SET balance = balance + $1 WHERE id = $2`, delta, partnerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Partner with ID '%s' not found", partnerID)
	}
	return nil
}
