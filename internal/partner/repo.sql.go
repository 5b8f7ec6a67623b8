package partner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

// repo implements Repository on PostgreSQL.
type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new partner repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

const partnerColumns = `id, partner_code, partner_name, type, phone, email, address, note, balance, created_at`

func scanPartner(row pgx.Row) (Partner, error) {
	var p Partner
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Type, &p.Phone, &p.Email, &p.Address, &p.Note, &p.Balance, &p.CreatedAt)
	return p, err
}

func (r *repo) List(ctx context.Context, filters ListFilters) ([]Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners`
	args := []interface{}{}
	argCount := 0

	if filters.Type != nil {
		argCount++
		query += ` WHERE type = $` + strconv.Itoa(argCount)
		args = append(args, *filters.Type)
	}
	if filters.Search != "" {
		argCount++
		if argCount == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` (partner_name ILIKE $` + strconv.Itoa(argCount) + ` OR partner_code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	query += ` ORDER BY partner_name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Type, &p.Phone, &p.Email, &p.Address, &p.Note, &p.Balance, &p.CreatedAt); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func (r *repo) Get(ctx context.Context, id string) (Partner, error) {
	p, err := scanPartner(r.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, httpx.NotFound("Partner with ID '%s' not found", id)
	}
	return p, err
}

func (r *repo) Create(ctx context.Context, p Partner) (Partner, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO partners (`+partnerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Code, p.Name, p.Type, p.Phone, p.Email, p.Address, p.Note, p.Balance, p.CreatedAt)
	if err != nil {
		return Partner{}, mapUniqueViolation(err, p.Code)
	}
	return p, nil
}

func (r *repo) Update(ctx context.Context, id string, patch Patch) (Partner, error) {
	query := `UPDATE partners SET`
	args := []interface{}{}
	argPos := 0

	set := ""
	if patch.Code != nil {
		argPos++
		set += fmt.Sprintf(" partner_code = $%d,", argPos)
		args = append(args, *patch.Code)
	}
	if patch.Name != nil {
		argPos++
		set += fmt.Sprintf(" partner_name = $%d,", argPos)
		args = append(args, *patch.Name)
	}
	if patch.Type != nil {
		argPos++
		set += fmt.Sprintf(" type = $%d,", argPos)
		args = append(args, *patch.Type)
	}
	if patch.Phone != nil {
		argPos++
		set += fmt.Sprintf(" phone = $%d,", argPos)
		args = append(args, *patch.Phone)
	}
	if patch.Email != nil {
		argPos++
		set += fmt.Sprintf(" email = $%d,", argPos)
		args = append(args, *patch.Email)
	}
	if patch.Address != nil {
		argPos++
		set += fmt.Sprintf(" address = $%d,", argPos)
		args = append(args, *patch.Address)
	}
	if patch.Note != nil {
		argPos++
		set += fmt.Sprintf(" note = $%d,", argPos)
		args = append(args, *patch.Note)
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
		code := ""
		if patch.Code != nil {
			code = *patch.Code
		}
		return Partner{}, mapUniqueViolation(err, code)
	}
	if tag.RowsAffected() == 0 {
		return Partner{}, httpx.NotFound("Partner with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Partner with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM partners WHERE partner_code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *repo) Balance(ctx context.Context, id string) (float64, error) {
	var balance float64
	err := r.db.QueryRow(ctx, `SELECT balance FROM partners WHERE id = $1`, id).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, httpx.NotFound("Partner with ID '%s' not found", id)
	}
	return balance, err
}

func (r *repo) AdjustBalance(ctx context.Context, id string, delta float64) error {
	tag, err := r.db.Exec(ctx, `UPDATE partners SET balance = balance + $1 WHERE id = $2`, delta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Partner with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE type = 'SUPPLIER'),
		       COUNT(*) FILTER (WHERE type = 'BUYER'),
		       COUNT(*) FILTER (WHERE type = 'WORKER'),
		       COALESCE(SUM(balance), 0)
		FROM partners`).Scan(&s.Total, &s.Suppliers, &s.Buyers, &s.Workers, &s.TotalBalance)
	return s, err
}

// mapUniqueViolation converts the partner_code unique constraint into the
// conflict the probe in the service would have reported.
func mapUniqueViolation(err error, code string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.Conflict("Partner code '%s' already exists", code)
	}
	return err
}
