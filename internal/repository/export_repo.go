package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"backhouse-backend/internal/models"
)

type ExportRepo struct {
	pool *pgxpool.Pool
}

func NewExportRepo(pool *pgxpool.Pool) *ExportRepo {
	return &ExportRepo{pool: pool}
}

func (r *ExportRepo) Create(ctx context.Context, j *models.ExportJob) error {
	j.ID = uuid.New()
	j.Status = "pending"

	query := `INSERT INTO export_jobs (id, user_id, report_type, from_date, to_date, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		j.ID, j.UserID, j.ReportType, j.FromDate, j.ToDate, j.Status,
	).Scan(&j.CreatedAt)
}

func (r *ExportRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ExportJob, error) {
	j := &models.ExportJob{}
	query := `SELECT id, user_id, report_type, to_char(from_date, 'YYYY-MM-DD'), to_char(to_date, 'YYYY-MM-DD'),
			status, file_path, error_message, created_at, completed_at
		FROM export_jobs WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.UserID, &j.ReportType, &j.FromDate, &j.ToDate,
		&j.Status, &j.FilePath, &j.ErrorMessage, &j.CreatedAt, &j.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *ExportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := "UPDATE export_jobs SET status = $1 WHERE id = $2"
	if status == "completed" || status == "failed" {
		now := time.Now()
		query = "UPDATE export_jobs SET status = $1, completed_at = $2 WHERE id = $3"
		_, err := r.pool.Exec(ctx, query, status, now, id)
		return err
	}
	_, err := r.pool.Exec(ctx, query, status, id)
	return err
}

func (r *ExportRepo) MarkCompleted(ctx context.Context, id uuid.UUID, filePath string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE export_jobs SET status = 'completed', file_path = $1, completed_at = NOW() WHERE id = $2`,
		filePath, id)
	return err
}

func (r *ExportRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE export_jobs SET status = 'failed', error_message = $1, completed_at = NOW() WHERE id = $2`,
		message, id)
	return err
}
