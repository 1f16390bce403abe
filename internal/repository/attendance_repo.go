package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backhouse-backend/internal/attendance"
)

// ErrVersionConflict is returned by a compare-and-swap save when the stored
// document changed since it was read.
var ErrVersionConflict = errors.New("attendance document was modified concurrently")

// AttendanceRepo stores one JSONB document per employee-month. Writes replace
// the whole document; last write wins unless the caller opts into the version
// check via SaveVersioned.
type AttendanceRepo struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepo(pool *pgxpool.Pool) *AttendanceRepo {
	return &AttendanceRepo{pool: pool}
}

// GetMonth loads the document for an employee and "YYYY-MM" month. A missing
// document comes back as a fresh empty one with version 0.
func (r *AttendanceRepo) GetMonth(ctx context.Context, userID uuid.UUID, month string) (*attendance.Document, int, error) {
	var raw []byte
	var version int

	err := r.pool.QueryRow(ctx,
		`SELECT doc, version FROM attendance_documents WHERE user_id = $1 AND month = $2`,
		userID, month,
	).Scan(&raw, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.NewDocument(time.Now().UTC()), 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load attendance document: %w", err)
	}

	doc := &attendance.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, 0, fmt.Errorf("failed to decode attendance document: %w", err)
	}
	return doc, version, nil
}

// Save replaces the stored document unconditionally (last write wins).
func (r *AttendanceRepo) Save(ctx context.Context, userID uuid.UUID, month string, doc *attendance.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode attendance document: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO attendance_documents (user_id, month, doc, version)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (user_id, month)
		DO UPDATE SET doc = EXCLUDED.doc, version = attendance_documents.version + 1
	`, userID, month, raw)
	return err
}

// SaveVersioned replaces the document only when its version still matches
// the one read. expectedVersion 0 means the document must not exist yet.
func (r *AttendanceRepo) SaveVersioned(ctx context.Context, userID uuid.UUID, month string, doc *attendance.Document, expectedVersion int) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode attendance document: %w", err)
	}

	if expectedVersion == 0 {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO attendance_documents (user_id, month, doc, version)
			VALUES ($1, $2, $3, 1)
			ON CONFLICT (user_id, month) DO NOTHING
		`, userID, month, raw)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrVersionConflict
		}
		return nil
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE attendance_documents
		SET doc = $1, version = version + 1
		WHERE user_id = $2 AND month = $3 AND version = $4
	`, raw, userID, month, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}
