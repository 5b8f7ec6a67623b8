package finance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// repo implements Repository on PostgreSQL.
type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new finance repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

const txSelect = `
	SELECT t.id, t.partner_id, COALESCE(p.partner_name, ''), t.type, t.amount,
	       t.description, t.transaction_date, t.created_at
	FROM transactions t
	LEFT JOIN partners p ON p.id = t.partner_id`

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.PartnerID, &t.PartnerName, &t.Type, &t.Amount,
		&t.Description, &t.TransactionDate, &t.CreatedAt)
	return t, err
}

func buildFilterClause(filters ListFilters) (string, []interface{}) {
	clause := ""
	args := []interface{}{}
	argCount := 0

	add := func(cond string, value interface{}) {
		argCount++
		if argCount == 1 {
			clause += ` WHERE`
		} else {
			clause += ` AND`
		}
		clause += ` ` + fmt.Sprintf(cond, argCount)
		args = append(args, value)
	}

	if filters.Type != nil {
		add(`t.type = $%d`, *filters.Type)
	}
	if filters.PartnerID != "" {
		add(`t.partner_id = $%d`, filters.PartnerID)
	}
	if filters.From != nil {
		add(`t.transaction_date >= $%d`, *filters.From)
	}
	if filters.To != nil {
		add(`t.transaction_date <= $%d`, *filters.To)
	}
	return clause, args
}

func (r *repo) List(ctx context.Context, filters ListFilters) ([]Transaction, shared.Pagination, error) {
	clause, args := buildFilterClause(filters)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions t`+clause, args...).Scan(&total); err != nil {
		return nil, shared.Pagination{}, err
	}

	page := shared.NewPagination(filters.Page, filters.PerPage, total)
	query := txSelect + clause + ` ORDER BY t.transaction_date DESC, t.created_at DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, page.PerPage, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.PartnerID, &t.PartnerName, &t.Type, &t.Amount,
			&t.Description, &t.TransactionDate, &t.CreatedAt); err != nil {
			return nil, shared.Pagination{}, err
		}
		transactions = append(transactions, t)
	}
	return transactions, page, rows.Err()
}

func (r *repo) Get(ctx context.Context, id string) (Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, txSelect+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, httpx.NotFound("Transaction with ID '%s' not found", id)
	}
	return t, err
}

func (r *repo) Create(ctx context.Context, t Transaction) (Transaction, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO transactions (id, partner_id, type, amount, description, transaction_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.PartnerID, t.Type, t.Amount, t.Description, t.TransactionDate, t.CreatedAt)
	if err != nil {
		return Transaction{}, err
	}
	return r.Get(ctx, t.ID)
}

func (r *repo) Update(ctx context.Context, id string, patch Patch) (Transaction, error) {
	query := `UPDATE transactions SET`
	args := []interface{}{}
	argPos := 0

	set := ""
	if patch.PartnerID != nil {
		argPos++
		set += fmt.Sprintf(" partner_id = $%d,", argPos)
		if *patch.PartnerID == "" {
			args = append(args, nil)
		} else {
			args = append(args, *patch.PartnerID)
		}
	}
	if patch.Type != nil {
		argPos++
		set += fmt.Sprintf(" type = $%d,", argPos)
		args = append(args, *patch.Type)
	}
	if patch.Amount != nil {
		argPos++
		set += fmt.Sprintf(" amount = $%d,", argPos)
		args = append(args, *patch.Amount)
	}
	if patch.Description != nil {
		argPos++
		set += fmt.Sprintf(" description = $%d,", argPos)
		args = append(args, *patch.Description)
	}
	if patch.TransactionDate != nil {
		argPos++
		set += fmt.Sprintf(" transaction_date = $%d,", argPos)
		args = append(args, *patch.TransactionDate)
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
		return Transaction{}, err
	}
	if tag.RowsAffected() == 0 {
		return Transaction{}, httpx.NotFound("Transaction with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Transaction with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0),
		       COUNT(*)
		FROM transactions`).Scan(&s.TotalIncome, &s.TotalExpense, &s.Count)
	s.Net = s.TotalIncome - s.TotalExpense
	return s, err
}
