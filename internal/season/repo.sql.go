package season

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

// repo implements Repository on PostgreSQL.
type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new season repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

const seasonColumns = `id, season_code, season_name, start_date, end_date, status, closed_at, created_at`

func scanSeason(row pgx.Row) (Season, error) {
	var s Season
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.StartDate, &s.EndDate, &s.Status, &s.ClosedAt, &s.CreatedAt)
	return s, err
}

func (r *repo) List(ctx context.Context, filters ListFilters) ([]Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons`
	args := []interface{}{}
	if filters.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filters.Status)
	}
	query += ` ORDER BY season_code DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []Season
	for rows.Next() {
		var s Season
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.StartDate, &s.EndDate, &s.Status, &s.ClosedAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (r *repo) Get(ctx context.Context, id string) (Season, error) {
	s, err := scanSeason(r.db.QueryRow(ctx, `SELECT `+seasonColumns+` FROM seasons WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Season{}, httpx.NotFound("Season with ID '%s' not found", id)
	}
	return s, err
}

func (r *repo) Create(ctx context.Context, s Season) (Season, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO seasons (`+seasonColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Code, s.Name, s.StartDate, s.EndDate, s.Status, s.ClosedAt, s.CreatedAt)
	if err != nil {
		return Season{}, err
	}
	return s, nil
}

func (r *repo) Update(ctx context.Context, id string, patch Patch) (Season, error) {
	query := `UPDATE seasons SET`
	args := []interface{}{}
	argPos := 0

	set := ""
	if patch.Name != nil {
		argPos++
		set += fmt.Sprintf(" season_name = $%d,", argPos)
		args = append(args, *patch.Name)
	}
	if patch.StartDate != nil {
		argPos++
		set += fmt.Sprintf(" start_date = $%d,", argPos)
		args = append(args, *patch.StartDate)
	}
	if patch.EndDate != nil {
		argPos++
		set += fmt.Sprintf(" end_date = $%d,", argPos)
		if patch.EndDate.IsZero() {
			args = append(args, nil)
		} else {
			args = append(args, *patch.EndDate)
		}
	}
	if patch.Status != nil {
		argPos++
		set += fmt.Sprintf(" status = $%d,", argPos)
		args = append(args, *patch.Status)
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
		return Season{}, err
	}
	if tag.RowsAffected() == 0 {
		return Season{}, httpx.NotFound("Season with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Season with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.db.QueryRow(ctx,
		`SELECT season_code FROM seasons WHERE season_code LIKE $1 ORDER BY season_code DESC LIMIT 1`,
		CodePrefix+"%").Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return code, err
}

func (r *repo) ActiveExists(ctx context.Context, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM seasons WHERE status = 'ACTIVE' AND id <> $1)`,
		excludeID).Scan(&exists)
	return exists, err
}

func (r *repo) Close(ctx context.Context, id string) (Season, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE seasons SET status = 'COMPLETED', closed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return Season{}, err
	}
	if tag.RowsAffected() == 0 {
		return Season{}, httpx.NotFound("Season with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}
