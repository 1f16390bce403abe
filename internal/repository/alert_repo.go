package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"backhouse-backend/internal/models"
)

type AlertRepo struct {
	pool *pgxpool.Pool
}

func NewAlertRepo(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

func (r *AlertRepo) Create(ctx context.Context, a *models.Alert) error {
	a.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO alerts (id, kind, message, reference_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		a.ID, a.Kind, a.Message, a.ReferenceID,
	).Scan(&a.CreatedAt)
}

func (r *AlertRepo) ListOpen(ctx context.Context) ([]models.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, kind, message, reference_id, acknowledged, created_at
		FROM alerts
		WHERE acknowledged = FALSE
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.Kind, &a.Message, &a.ReferenceID, &a.Acknowledged, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *AlertRepo) Acknowledge(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE alerts SET acknowledged = TRUE WHERE id = $1", id)
	return err
}

// HasOpenAlert prevents duplicate alerts for the same reference while one is
// still unacknowledged.
func (r *AlertRepo) HasOpenAlert(ctx context.Context, kind string, referenceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM alerts
			WHERE kind = $1 AND reference_id = $2 AND acknowledged = FALSE
		)`, kind, referenceID,
	).Scan(&exists)
	return exists, err
}
