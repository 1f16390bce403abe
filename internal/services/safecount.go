package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
)

// SafeCountService reconciles recorded safe counts against the balance
// carried forward from the previous close. An opening count is expected to
// match the last close exactly; a closing count is expected to equal the
// last close plus the day's cash sales.
type SafeCountService struct {
	safeRepo          *repository.SafeCountRepo
	salesRepo         *repository.SalesRepo
	alerts            *AlertService
	varianceThreshold int64
}

func NewSafeCountService(safeRepo *repository.SafeCountRepo, salesRepo *repository.SalesRepo, alerts *AlertService, varianceThreshold int64) *SafeCountService {
	return &SafeCountService{
		safeRepo:          safeRepo,
		salesRepo:         salesRepo,
		alerts:            alerts,
		varianceThreshold: varianceThreshold,
	}
}

func (s *SafeCountService) Record(ctx context.Context, countedBy uuid.UUID, req models.RecordSafeCountRequest) (*models.SafeCount, error) {
	fieldErrors := make(map[string]string)

	countDate, err := time.Parse("2006-01-02", req.CountDate)
	if err != nil {
		fieldErrors["count_date"] = "Count date must be formatted YYYY-MM-DD"
	}
	if req.Shift != "open" && req.Shift != "close" {
		fieldErrors["shift"] = "Shift must be open or close"
	}
	if req.ActualCents < 0 {
		fieldErrors["actual_cents"] = "Counted amount cannot be negative"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	expected, baseline, err := s.expectedBalance(ctx, countDate, req.Shift)
	if err != nil {
		return nil, err
	}
	if baseline {
		// First count on record sets its own baseline; no variance to report.
		expected = req.ActualCents
	}

	denoms, err := json.Marshal(req.Denominations)
	if err != nil || req.Denominations == nil {
		denoms = []byte("{}")
	}

	sc := &models.SafeCount{
		CountDate:     countDate,
		Shift:         req.Shift,
		CountedBy:     countedBy,
		ActualCents:   req.ActualCents,
		ExpectedCents: expected,
		VarianceCents: req.ActualCents - expected,
		DenomsJSON:    denoms,
		Notes:         req.Notes,
	}

	if err := s.safeRepo.Create(ctx, sc); err != nil {
		return nil, err
	}

	if abs64(sc.VarianceCents) >= s.varianceThreshold {
		s.alerts.Raise(ctx, "safe_variance", fmt.Sprintf(
			"Safe count %s on %s is off by $%.2f", sc.Shift, sc.CountDate.Format("2006-01-02"),
			float64(sc.VarianceCents)/100), &sc.ID)
	}

	return sc, nil
}

func (s *SafeCountService) ListRange(ctx context.Context, from, to time.Time) ([]models.SafeCount, error) {
	return s.safeRepo.ListRange(ctx, from, to)
}

// expectedBalance carries the last closing count forward. The second return
// is true when no prior close exists, i.e. this count establishes the
// baseline.
func (s *SafeCountService) expectedBalance(ctx context.Context, countDate time.Time, shift string) (int64, bool, error) {
	prevClose, err := s.safeRepo.LatestClose(ctx, countDate)
	if err != nil {
		return 0, false, err
	}
	if prevClose == nil {
		return 0, true, nil
	}

	if shift == "open" {
		return prevClose.ActualCents, false, nil
	}

	daySales, err := s.salesRepo.DayTotal(ctx, countDate)
	if err != nil {
		return 0, false, err
	}
	return prevClose.ActualCents + daySales, false, nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
