package services

import (
	"context"
	"time"

	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
)

// ReportsService formats the sales report aggregations. The arithmetic lives
// in SQL; this layer validates ranges and maps report types to buckets.
type ReportsService struct {
	salesRepo *repository.SalesRepo
}

func NewReportsService(salesRepo *repository.SalesRepo) *ReportsService {
	return &ReportsService{salesRepo: salesRepo}
}

// ParseRange validates a from/to date pair. The range is inclusive of both
// days; queries treat it as [from, to+1d).
func ParseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	fieldErrors := make(map[string]string)

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		fieldErrors["from"] = "From date must be formatted YYYY-MM-DD"
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		fieldErrors["to"] = "To date must be formatted YYYY-MM-DD"
	}
	if len(fieldErrors) == 0 && to.Before(from) {
		fieldErrors["to"] = "To date cannot be before from date"
	}
	if len(fieldErrors) > 0 {
		return time.Time{}, time.Time{}, &ValidationError{Fields: fieldErrors}
	}
	return from, to.AddDate(0, 0, 1), nil
}

func (s *ReportsService) Bucketed(ctx context.Context, reportType string, from, to time.Time) ([]models.SalesBucket, error) {
	trunc, ok := map[string]string{
		"hourly":  "hour",
		"daily":   "day",
		"weekly":  "week",
		"monthly": "month",
	}[reportType]
	if !ok {
		return nil, &ValidationError{Fields: map[string]string{"report_type": "Report type must be hourly, daily, weekly, or monthly"}}
	}
	return s.salesRepo.BucketedTotals(ctx, trunc, from, to)
}

func (s *ReportsService) ItemTotals(ctx context.Context, from, to time.Time) ([]models.ItemSales, error) {
	return s.salesRepo.ItemTotals(ctx, from, to)
}

func (s *ReportsService) CustomerTrend(ctx context.Context, from, to time.Time) ([]models.CustomerTrendPoint, error) {
	return s.salesRepo.CustomerTrend(ctx, from, to)
}
