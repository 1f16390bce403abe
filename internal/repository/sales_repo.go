package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"backhouse-backend/internal/models"
)

// SalesRepo runs the report aggregations over settled tickets. All queries
// are plain group-by-and-sum; the service layer formats the buckets.
type SalesRepo struct {
	pool *pgxpool.Pool
}

func NewSalesRepo(pool *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{pool: pool}
}

// BucketedTotals groups tickets by a time bucket. trunc must be one of the
// date_trunc units: "hour", "day", "week", "month".
func (r *SalesRepo) BucketedTotals(ctx context.Context, trunc string, from, to time.Time) ([]models.SalesBucket, error) {
	format := map[string]string{
		"hour":  "HH24:00",
		"day":   "YYYY-MM-DD",
		"week":  `IYYY"-W"IW`,
		"month": "YYYY-MM",
	}[trunc]

	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc($1, sold_at), $2) AS bucket,
		       COUNT(*) AS orders,
		       COALESCE(SUM(total_cents), 0) AS total_cents
		FROM sales_transactions
		WHERE sold_at >= $3 AND sold_at < $4
		GROUP BY date_trunc($1, sold_at)
		ORDER BY date_trunc($1, sold_at)`,
		trunc, format, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.SalesBucket
	for rows.Next() {
		var b models.SalesBucket
		if err := rows.Scan(&b.Bucket, &b.Orders, &b.TotalCents); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// ItemTotals sums quantity and revenue per menu item over the range.
func (r *SalesRepo) ItemTotals(ctx context.Context, from, to time.Time) ([]models.ItemSales, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.item_id, i.name, SUM(l.quantity) AS quantity, COALESCE(SUM(l.line_cents), 0) AS total_cents
		FROM sales_lines l
		JOIN sales_transactions t ON t.id = l.transaction_id
		JOIN items i ON i.id = l.item_id
		WHERE t.sold_at >= $1 AND t.sold_at < $2
		GROUP BY l.item_id, i.name
		ORDER BY total_cents DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.ItemSales
	for rows.Next() {
		var it models.ItemSales
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.Quantity, &it.TotalCents); err != nil {
			return nil, err
		}
		totals = append(totals, it)
	}
	return totals, rows.Err()
}

// CustomerTrend counts distinct customers and orders per day.
func (r *SalesRepo) CustomerTrend(ctx context.Context, from, to time.Time) ([]models.CustomerTrendPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc('day', sold_at), 'YYYY-MM-DD') AS day,
		       COUNT(DISTINCT customer_id) FILTER (WHERE customer_id IS NOT NULL) AS customers,
		       COUNT(*) AS orders
		FROM sales_transactions
		WHERE sold_at >= $1 AND sold_at < $2
		GROUP BY date_trunc('day', sold_at)
		ORDER BY date_trunc('day', sold_at)`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.CustomerTrendPoint
	for rows.Next() {
		var p models.CustomerTrendPoint
		if err := rows.Scan(&p.Date, &p.Customers, &p.Orders); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// DayTotal returns the cash-relevant total for one business day, used by the
// safe-count expected balance.
func (r *SalesRepo) DayTotal(ctx context.Context, day time.Time) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_cents), 0)
		FROM sales_transactions
		WHERE sold_at >= $1 AND sold_at < $2`,
		day, day.AddDate(0, 0, 1),
	).Scan(&total)
	return total, err
}
