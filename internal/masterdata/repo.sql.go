package masterdata

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

// NewRepository creates a new master data repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

// Job type operations

func (r *repo) ListJobTypes(ctx context.Context) ([]JobType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, job_name, description, created_at FROM job_types ORDER BY job_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobTypes []JobType
	for rows.Next() {
		var jt JobType
		if err := rows.Scan(&jt.ID, &jt.Name, &jt.Description, &jt.CreatedAt); err != nil {
			return nil, err
		}
		jobTypes = append(jobTypes, jt)
	}
	return jobTypes, rows.Err()
}

func (r *repo) GetJobType(ctx context.Context, id string) (JobType, error) {
	var jt JobType
	err := r.db.QueryRow(ctx, `SELECT id, job_name, description, created_at FROM job_types WHERE id = $1`, id).
		Scan(&jt.ID, &jt.Name, &jt.Description, &jt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return JobType{}, httpx.NotFound("Job type with ID '%s' not found", id)
	}
	return jt, err
}

func (r *repo) CreateJobType(ctx context.Context, jt JobType) (JobType, error) {
	jt.ID = uuid.NewString()
	jt.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_types (id, job_name, description, created_at) VALUES ($1, $2, $3, $4)`,
		jt.ID, jt.Name, jt.Description, jt.CreatedAt)
	if err != nil {
		return JobType{}, err
	}
	return jt, nil
}

func (r *repo) UpdateJobType(ctx context.Context, id string, patch JobTypePatch) (JobType, error) {
	set := ""
	args := []interface{}{}
	argPos := 0

	if patch.Name != nil {
		argPos++
		set += fmt.Sprintf(" job_name = $%d,", argPos)
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		argPos++
		set += fmt.Sprintf(" description = $%d,", argPos)
		args = append(args, *patch.Description)
	}
	if argPos == 0 {
		return r.GetJobType(ctx, id)
	}

	argPos++
	args = append(args, id)
	tag, err := r.db.Exec(ctx, `UPDATE job_types SET`+set[:len(set)-1]+fmt.Sprintf(` WHERE id = $%d`, argPos), args...)
	if err != nil {
		return JobType{}, err
	}
	if tag.RowsAffected() == 0 {
		return JobType{}, httpx.NotFound("Job type with ID '%s' not found", id)
	}
	return r.GetJobType(ctx, id)
}

func (r *repo) DeleteJobType(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM job_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Job type with ID '%s' not found", id)
	}
	return nil
}

// Work shift operations

func (r *repo) ListWorkShifts(ctx context.Context) ([]WorkShift, error) {
	rows, err := r.db.Query(ctx, `SELECT id, shift_name, start_time, end_time, description, created_at FROM work_shifts ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []WorkShift
	for rows.Next() {
		var ws WorkShift
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.StartTime, &ws.EndTime, &ws.Description, &ws.CreatedAt); err != nil {
			return nil, err
		}
		shifts = append(shifts, ws)
	}
	return shifts, rows.Err()
}

func (r *repo) GetWorkShift(ctx context.Context, id string) (WorkShift, error) {
	var ws WorkShift
	err := r.db.QueryRow(ctx, `SELECT id, shift_name, start_time, end_time, description, created_at FROM work_shifts WHERE id = $1`, id).
		Scan(&ws.ID, &ws.Name, &ws.StartTime, &ws.EndTime, &ws.Description, &ws.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return WorkShift{}, httpx.NotFound("Work shift with ID '%s' not found", id)
	}
	return ws, err
}

func (r *repo) CreateWorkShift(ctx context.Context, ws WorkShift) (WorkShift, error) {
	ws.ID = uuid.NewString()
	ws.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO work_shifts (id, shift_name, start_time, end_time, description, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		ws.ID, ws.Name, ws.StartTime, ws.EndTime, ws.Description, ws.CreatedAt)
	if err != nil {
		return WorkShift{}, err
	}
	return ws, nil
}

func (r *repo) UpdateWorkShift(ctx context.Context, id string, patch WorkShiftPatch) (WorkShift, error) {
	set := ""
	args := []interface{}{}
	argPos := 0

	if patch.Name != nil {
		argPos++
		set += fmt.Sprintf(" shift_name = $%d,", argPos)
		args = append(args, *patch.Name)
	}
	if patch.StartTime != nil {
		argPos++
		set += fmt.Sprintf(" start_time = $%d,", argPos)
		args = append(args, *patch.StartTime)
	}
	if patch.EndTime != nil {
		argPos++
		set += fmt.Sprintf(" end_time = $%d,", argPos)
		args = append(args, *patch.EndTime)
	}
	if patch.Description != nil {
		argPos++
		set += fmt.Sprintf(" description = $%d,", argPos)
		args = append(args, *patch.Description)
	}
	if argPos == 0 {
		return r.GetWorkShift(ctx, id)
	}

	argPos++
	args = append(args, id)
	tag, err := r.db.Exec(ctx, `UPDATE work_shifts SET`+set[:len(set)-1]+fmt.Sprintf(` WHERE id = $%d`, argPos), args...)
	if err != nil {
		return WorkShift{}, err
	}
	if tag.RowsAffected() == 0 {
		return WorkShift{}, httpx.NotFound("Work shift with ID '%s' not found", id)
	}
	return r.GetWorkShift(ctx, id)
}

func (r *repo) DeleteWorkShift(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM work_shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Work shift with ID '%s' not found", id)
	}
	return nil
}

// Warehouse type operations

func (r *repo) ListWarehouseTypes(ctx context.Context) ([]WarehouseType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type_name, description, created_at FROM warehouse_types ORDER BY type_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []WarehouseType
	for rows.Next() {
		var wt WarehouseType
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Description, &wt.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, wt)
	}
	return types, rows.Err()
}

func (r *repo) GetWarehouseType(ctx context.Context, id string) (WarehouseType, error) {
	var wt WarehouseType
	err := r.db.QueryRow(ctx, `SELECT id, type_name, description, created_at FROM warehouse_types WHERE id = $1`, id).
		Scan(&wt.ID, &wt.Name, &wt.Description, &wt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return WarehouseType{}, httpx.NotFound("Warehouse type with ID '%s' not found", id)
	}
	return wt, err
}

func (r *repo) CreateWarehouseType(ctx context.Context, wt WarehouseType) (WarehouseType, error) {
	wt.ID = uuid.NewString()
	wt.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO warehouse_types (id, type_name, description, created_at) VALUES ($1, $2, $3, $4)`,
		wt.ID, wt.Name, wt.Description, wt.CreatedAt)
	if err != nil {
		return WarehouseType{}, err
	}
	return wt, nil
}

func (r *repo) UpdateWarehouseType(ctx context.Context, id string, patch WarehouseTypePatch) (WarehouseType, error) {
	set := ""
	args := []interface{}{}
	argPos := 0

	if patch.Name != nil {
		argPos++
		set += fmt.Sprintf(" type_name = $%d,", argPos)
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		argPos++
		set += fmt.Sprintf(" description = $%d,", argPos)
		args = append(args, *patch.Description)
	}
	if argPos == 0 {
		return r.GetWarehouseType(ctx, id)
	}

	argPos++
	args = append(args, id)
	tag, err := r.db.Exec(ctx, `UPDATE warehouse_types SET`+set[:len(set)-1]+fmt.Sprintf(` WHERE id = $%d`, argPos), args...)
	if err != nil {
		return WarehouseType{}, err
	}
	if tag.RowsAffected() == 0 {
		return WarehouseType{}, httpx.NotFound("Warehouse type with ID '%s' not found", id)
	}
	return r.GetWarehouseType(ctx, id)
}

func (r *repo) DeleteWarehouseType(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM warehouse_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Warehouse type with ID '%s' not found", id)
	}
	return nil
}
