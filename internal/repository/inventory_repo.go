package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"backhouse-backend/internal/models"
)

type InventoryRepo struct {
	pool *pgxpool.Pool
}

func NewInventoryRepo(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

func (r *InventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	item.ID = uuid.New()
	query := `
		INSERT INTO inventory_items (id, name, unit, on_hand, reorder_threshold, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.ID, item.Name, item.Unit, item.OnHand, item.ReorderThreshold, item.UpdatedBy,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *InventoryRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.pool.QueryRow(ctx, `
		UPDATE inventory_items
		SET name = $1, unit = $2, on_hand = $3, reorder_threshold = $4, updated_by = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`,
		item.Name, item.Unit, item.OnHand, item.ReorderThreshold, item.UpdatedBy, item.ID,
	).Scan(&item.UpdatedAt)
}

func (r *InventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, unit, on_hand, reorder_threshold, updated_by, created_at, updated_at
		FROM inventory_items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Name, &item.Unit, &item.OnHand, &item.ReorderThreshold,
		&item.UpdatedBy, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List supports the back-office search and sort controls. sortBy is
// whitelisted to a column name; anything else falls back to name order.
func (r *InventoryRepo) List(ctx context.Context, search, sortBy string) ([]models.InventoryItem, error) {
	order := "name"
	switch sortBy {
	case "on_hand", "reorder_threshold", "updated_at":
		order = sortBy + " DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, name, unit, on_hand, reorder_threshold, updated_by, created_at, updated_at
		FROM inventory_items
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
		ORDER BY %s`, order)

	rows, err := r.pool.Query(ctx, query, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Unit, &item.OnHand, &item.ReorderThreshold,
			&item.UpdatedBy, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListBelowThreshold returns items at or under their reorder threshold.
func (r *InventoryRepo) ListBelowThreshold(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, unit, on_hand, reorder_threshold, updated_by, created_at, updated_at
		FROM inventory_items
		WHERE on_hand <= reorder_threshold
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Unit, &item.OnHand, &item.ReorderThreshold,
			&item.UpdatedBy, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *InventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM inventory_items WHERE id = $1", id)
	return err
}
