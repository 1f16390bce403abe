package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backhouse-backend/internal/models"
)

type SafeCountRepo struct {
	pool *pgxpool.Pool
}

func NewSafeCountRepo(pool *pgxpool.Pool) *SafeCountRepo {
	return &SafeCountRepo{pool: pool}
}

func (r *SafeCountRepo) Create(ctx context.Context, sc *models.SafeCount) error {
	sc.ID = uuid.New()
	if len(sc.DenomsJSON) == 0 {
		sc.DenomsJSON = []byte("{}")
	}

	query := `
		INSERT INTO safe_counts (id, count_date, shift, counted_by, actual_cents, expected_cents, variance_cents, denoms_json, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		sc.ID, sc.CountDate, sc.Shift, sc.CountedBy, sc.ActualCents,
		sc.ExpectedCents, sc.VarianceCents, sc.DenomsJSON, sc.Notes,
	).Scan(&sc.CreatedAt)
}

// LatestClose returns the most recent closing count strictly before the
// given date, used to carry the expected balance forward. Returns nil when
// no prior close exists.
func (r *SafeCountRepo) LatestClose(ctx context.Context, before time.Time) (*models.SafeCount, error) {
	sc := &models.SafeCount{}
	query := `
		SELECT id, count_date, shift, counted_by, actual_cents, expected_cents, variance_cents, denoms_json, notes, created_at
		FROM safe_counts
		WHERE shift = 'close' AND count_date < $1
		ORDER BY count_date DESC
		LIMIT 1`

	err := r.pool.QueryRow(ctx, query, before).Scan(
		&sc.ID, &sc.CountDate, &sc.Shift, &sc.CountedBy, &sc.ActualCents,
		&sc.ExpectedCents, &sc.VarianceCents, &sc.DenomsJSON, &sc.Notes, &sc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (r *SafeCountRepo) ListRange(ctx context.Context, from, to time.Time) ([]models.SafeCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, count_date, shift, counted_by, actual_cents, expected_cents, variance_cents, denoms_json, notes, created_at
		FROM safe_counts
		WHERE count_date >= $1 AND count_date <= $2
		ORDER BY count_date, shift`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.SafeCount
	for rows.Next() {
		var sc models.SafeCount
		if err := rows.Scan(&sc.ID, &sc.CountDate, &sc.Shift, &sc.CountedBy, &sc.ActualCents,
			&sc.ExpectedCents, &sc.VarianceCents, &sc.DenomsJSON, &sc.Notes, &sc.CreatedAt); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}
