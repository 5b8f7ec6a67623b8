package inventory

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
)

// repo implements Repository on PostgreSQL.
type repo struct {
	db *pgxpool.Pool
}

// NewRepository creates a new inventory repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repo{db: db}
}

const itemSelect = `
	SELECT i.id, i.item_code, i.item_name, i.category_id, COALESCE(w.type_name, ''),
	       i.unit, i.quantity, i.min_quantity, i.last_import_price, i.import_date, i.created_at
	FROM inventory_items i
	LEFT JOIN warehouse_types w ON w.id = i.category_id`

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.CategoryID, &it.CategoryName,
		&it.Unit, &it.Quantity, &it.MinQuantity, &it.LastImportPrice, &it.ImportDate, &it.CreatedAt)
	return it, err
}

func (r *repo) List(ctx context.Context, filters ListFilters) ([]Item, error) {
	query := itemSelect
	args := []interface{}{}
	argCount := 0

	if filters.CategoryID != "" {
		argCount++
		query += ` WHERE i.category_id = $` + strconv.Itoa(argCount)
		args = append(args, filters.CategoryID)
	}
	if filters.Search != "" {
		argCount++
		if argCount == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` (i.item_name ILIKE $` + strconv.Itoa(argCount) + ` OR i.item_code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	query += ` ORDER BY i.item_name`

	return r.queryItems(ctx, query, args...)
}

func (r *repo) Get(ctx context.Context, id string) (Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, itemSelect+` WHERE i.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, httpx.NotFound("Inventory item with ID '%s' not found", id)
	}
	return it, err
}

func (r *repo) Create(ctx context.Context, item Item) (Item, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO inventory_items (id, item_code, item_name, category_id, unit, quantity, min_quantity, last_import_price, import_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.Code, item.Name, item.CategoryID, item.Unit, item.Quantity,
		item.MinQuantity, item.LastImportPrice, item.ImportDate, item.CreatedAt)
	if err != nil {
		return Item{}, err
	}
	return r.Get(ctx, item.ID)
}

func (r *repo) Update(ctx context.Context, id string, patch Patch) (Item, error) {
	query := `UPDATE inventory_items SET`
	args := []interface{}{}
	argPos := 0

	set := ""
	if patch.Code != nil {
		argPos++
		set += fmt.Sprintf(" item_code = $%d,", argPos)
		args = append(args, *patch.Code)
	}
	if patch.Name != nil {
		argPos++
		set += fmt.Sprintf(" item_name = $%d,", argPos)
		args = append(args, *patch.Name)
	}
	if patch.CategoryID != nil {
		argPos++
		set += fmt.Sprintf(" category_id = $%d,", argPos)
		if *patch.CategoryID == "" {
			args = append(args, nil)
		} else {
			args = append(args, *patch.CategoryID)
		}
	}
	if patch.Unit != nil {
		argPos++
		set += fmt.Sprintf(" unit = $%d,", argPos)
		args = append(args, *patch.Unit)
	}
	if patch.MinQuantity != nil {
		argPos++
		set += fmt.Sprintf(" min_quantity = $%d,", argPos)
		args = append(args, *patch.MinQuantity)
	}
	if patch.LastImportPrice != nil {
		argPos++
		set += fmt.Sprintf(" last_import_price = $%d,", argPos)
		args = append(args, *patch.LastImportPrice)
	}
	if patch.ImportDate != nil {
		argPos++
		set += fmt.Sprintf(" import_date = $%d,", argPos)
		args = append(args, *patch.ImportDate)
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
		return Item{}, err
	}
	if tag.RowsAffected() == 0 {
		return Item{}, httpx.NotFound("Inventory item with ID '%s' not found", id)
	}
	return r.Get(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("Inventory item with ID '%s' not found", id)
	}
	return nil
}

func (r *repo) AdjustStock(ctx context.Context, id string, change float64) (Item, error) {
	// The guard repeats the service check so concurrent adjustments
	// cannot race the quantity below zero.
	tag, err := r.db.Exec(ctx,
		`UPDATE inventory_items SET quantity = quantity + $1 WHERE id = $2 AND quantity + $1 >= 0`,
		change, id)
	if err != nil {
		return Item{}, err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return Item{}, getErr
		}
		return Item{}, httpx.Validation("Stock quantity cannot become negative")
	}
	return r.Get(ctx, id)
}

func (r *repo) ListLowStock(ctx context.Context) ([]Item, error) {
	return r.queryItems(ctx, itemSelect+` WHERE i.quantity <= i.min_quantity ORDER BY i.quantity`)
}

func (r *repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COUNT(*) FILTER (WHERE quantity <= min_quantity)
		FROM inventory_items`).Scan(&s.TotalItems, &s.TotalQuantity, &s.LowStockItems)
	return s, err
}

func (r *repo) queryItems(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.CategoryID, &it.CategoryName,
			&it.Unit, &it.Quantity, &it.MinQuantity, &it.LastImportPrice, &it.ImportDate, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
