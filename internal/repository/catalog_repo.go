package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"backhouse-backend/internal/models"
)

// CatalogRepo covers the menu catalog: categories, items, and sauces.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

func (r *CatalogRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	c.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, sort_order) VALUES ($1, $2, $3)
		RETURNING created_at`,
		c.ID, c.Name, c.SortOrder,
	).Scan(&c.CreatedAt)
}

func (r *CatalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, sort_order, created_at FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CatalogRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

func (r *CatalogRepo) CreateItem(ctx context.Context, item *models.Item) error {
	item.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO items (id, category_id, name, price_cents, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		item.ID, item.CategoryID, item.Name, item.PriceCents, item.IsActive,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *CatalogRepo) UpdateItem(ctx context.Context, item *models.Item) error {
	return r.pool.QueryRow(ctx, `
		UPDATE items SET category_id = $1, name = $2, price_cents = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		item.CategoryID, item.Name, item.PriceCents, item.IsActive, item.ID,
	).Scan(&item.UpdatedAt)
}

func (r *CatalogRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item := &models.Item{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, category_id, name, price_cents, is_active, created_at, updated_at
		FROM items WHERE id = $1`, id,
	).Scan(&item.ID, &item.CategoryID, &item.Name, &item.PriceCents, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *CatalogRepo) ListItems(ctx context.Context, search string, categoryID *uuid.UUID) ([]models.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, price_cents, is_active, created_at, updated_at
		FROM items
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2::uuid IS NULL OR category_id = $2)
		ORDER BY name`, search, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.PriceCents,
			&item.IsActive, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CatalogRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	return err
}

func (r *CatalogRepo) CreateSauce(ctx context.Context, s *models.Sauce) error {
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO sauces (id, name, is_active) VALUES ($1, $2, $3)
		RETURNING created_at`,
		s.ID, s.Name, s.IsActive,
	).Scan(&s.CreatedAt)
}

func (r *CatalogRepo) ListSauces(ctx context.Context) ([]models.Sauce, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, is_active, created_at FROM sauces ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sauces []models.Sauce
	for rows.Next() {
		var s models.Sauce
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		sauces = append(sauces, s)
	}
	return sauces, rows.Err()
}

func (r *CatalogRepo) UpdateSauce(ctx context.Context, s *models.Sauce) error {
	_, err := r.pool.Exec(ctx, `UPDATE sauces SET name = $1, is_active = $2 WHERE id = $3`,
		s.Name, s.IsActive, s.ID)
	return err
}

func (r *CatalogRepo) DeleteSauce(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM sauces WHERE id = $1", id)
	return err
}
