package schedule

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

// NewRepository creates a new schedule repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

const scheduleSelect = `
	SELECT ws.id, ws.partner_id, COALESCE(p.partner_name, ''),
	       ws.shift_id, COALESCE(sh.shift_name, ''),
	       ws.job_type_id, COALESCE(jt.job_name, ''),
	       ws.season_id, COALESCE(se.season_name, ''),
	       ws.work_date, ws.status, ws.note, ws.created_at
	FROM work_schedules ws
	LEFT JOIN partners p ON p.id = ws.partner_id
	LEFT JOIN work_shifts sh ON sh.id = ws.shift_id
	LEFT JOIN job_types jt ON jt.id = ws.job_type_id
	LEFT JOIN seasons se ON se.id = ws.season_id`

func scanSchedule(row pgx.Row) (WorkSchedule, error) {
	var ws WorkSchedule
	err := row.Scan(&ws.ID, &ws.PartnerID, &ws.PartnerName, &ws.ShiftID, &ws.ShiftName,
		&ws.JobTypeID, &ws.JobName, &ws.SeasonID, &ws.SeasonName,
		&ws.WorkDate, &ws.Status, &ws.Note, &ws.CreatedAt)
	return ws, err
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
		clause += ` ` + cond + ` $` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filters.Status != "" {
		add(`ws.status =`, filters.Status)
	}
	if filters.PartnerID != "" {
		add(`ws.partner_id =`, filters.PartnerID)
	}
	if filters.SeasonID != "" {
		add(`ws.season_id =`, filters.SeasonID)
	}
	if filters.From != nil {
		add(`ws.work_date >=`, *filters.From)
	}
	if filters.To != nil {
		add(`ws.work_date <=`, *filters.To)
	}
	return clause, args
}

func (r *repo) List(ctx context.Context, filters ListFilters) ([]WorkSchedule, shared.Pagination, error) {
	clause, args := buildFilterClause(filters)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM work_schedules ws`+clause, args...).Scan(&total); err != nil {
		return nil, shared.Pagination{}, err
	}

	page := shared.NewPagination(filters.Page, filters.PerPage, total)
	query := scheduleSelect + clause + ` ORDER BY ws.work_date DESC, ws.created_at DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, page.PerPage, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	defer rows.Close()

	var schedules []WorkSchedule
	for rows.Next() {
		var ws WorkSchedule
		if err := rows.Scan(&ws.ID, &ws.PartnerID, &ws.PartnerName, &ws.ShiftID, &ws.ShiftName,
			&ws.JobTypeID, &ws.JobName, &ws.SeasonID, &ws.SeasonName,
			&ws.WorkDate, &ws.Status, &ws.Note, &ws.CreatedAt); err != nil {
			return nil, shared.Pagination{}, err
		}
		schedules = append(schedules, ws)
	}
	return schedules, page, rows.Err()
}

func (r *repo) Get(ctx context.Context, id string) (WorkSchedule, error) {
	ws, err := scanSchedule(r.db.QueryRow(ctx, scheduleSelect+` WHERE ws.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return WorkSchedule{}, httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	return ws, err
}

func (r *repo) Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error) {
	ws.ID = uuid.NewString()
	ws.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO work_schedules (id, partner_id, shift_id, job_type_id, season_id, work_date, status, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ws.ID, ws.PartnerID, ws.ShiftID, ws.JobTypeID, ws.SeasonID, ws.WorkDate, ws.Status, ws.Note, ws.CreatedAt)
	if err != nil {
		return WorkSchedule{}, err
	}
	return r.Get(ctx, ws.ID)
}

func (r *repo) Update(ctx context.Context, id string, patch Patch) (WorkSchedule, error) {
	query := `UPDATE work_schedules SET`
	args := []interface{}{}
	argPos := 0

	set := ""
	if patch.PartnerID != nil {
		argPos++
		set += fmt.Sprintf(" partner_id = $%d,", argPos)
		args = append(args, *patch.PartnerID)
	}
	if patch.ShiftID != nil {
		argPos++
		set += fmt.Sprintf(" shift_id = $%d,", argPos)
		args = append(args, *patch.ShiftID)
	}
	if patch.JobTypeID != nil {
		argPos++
		set += fmt.Sprintf(" job_type_id = $%d,", argPos)
		args = append(args, *patch.JobTypeID)
	}
	if patch.SeasonID != nil {
		argPos++
		set += fmt.Sprintf(" season_id = $%d,", argPos)
		if *patch.SeasonID == "" {
			args = append(args, nil)
		} else {
			args = append(args, *patch.SeasonID)
		}
	}
	if patch.WorkDate != nil {
		argPos++
		set += fmt.Sprintf(" work_date = $%d,", argPos)
		args = append(args, *patch.WorkDate)
	}
	if patch.Status != nil {
		argPos++
		set += fmt.Sprintf(" status = $%d,", argPos)
		args = append(args, *patch.Status)
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
		return WorkSchedule{}, err
	}
	if tag.RowsAffected() == 0 {
		return WorkSchedule{}, httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM work_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) Confirm(ctx context.Context, id string) (WorkSchedule, error) {
	tag, err := r.db.Exec(ctx, `UPDATE work_schedules SET status = 'CONFIRMED' WHERE id = $1`, id)
	if err != nil {
		return WorkSchedule{}, err
	}
	if tag.RowsAffected() == 0 {
		return WorkSchedule{}, httpx.NotFound("Work schedule with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}

func (r *repo) PartnerExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM partners WHERE id = $1)`, id)
}

func (r *repo) ShiftExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM work_shifts WHERE id = $1)`, id)
}

func (r *repo) JobTypeExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM job_types WHERE id = $1)`, id)
}

func (r *repo) SeasonExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM seasons WHERE id = $1)`, id)
}

func (r *repo) exists(ctx context.Context, query, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
