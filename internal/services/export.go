package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"

	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
)

// ExportQueue is the Redis list the worker pool pops export jobs from.
const ExportQueue = "queue:report-export"

// ExportService queues XLSX exports and renders report data into workbooks
// and CSV. The heavy lifting happens in the worker pool; handlers only
// enqueue.
type ExportService struct {
	exportRepo *repository.ExportRepo
	redis      *redis.Client
}

func NewExportService(exportRepo *repository.ExportRepo, redisClient *redis.Client) *ExportService {
	return &ExportService{exportRepo: exportRepo, redis: redisClient}
}

var exportReportTypes = map[string]bool{
	"hourly": true, "daily": true, "weekly": true, "monthly": true,
	"items": true, "customers": true,
}

// Enqueue validates the request, records the job, and pushes it onto the
// export queue.
func (s *ExportService) Enqueue(ctx context.Context, job *models.ExportJob) error {
	fieldErrors := make(map[string]string)
	if !exportReportTypes[job.ReportType] {
		fieldErrors["report_type"] = "Report type must be hourly, daily, weekly, monthly, items, or customers"
	}
	if _, _, err := ParseRange(job.FromDate, job.ToDate); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			for k, v := range ve.Fields {
				fieldErrors[k] = v
			}
		}
	}
	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}

	if err := s.exportRepo.Create(ctx, job); err != nil {
		return err
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.redis.RPush(ctx, ExportQueue, payload).Err()
}

func (s *ExportService) GetJob(ctx context.Context, id uuid.UUID) (*models.ExportJob, error) {
	return s.exportRepo.GetByID(ctx, id)
}

// BuildBucketWorkbook renders a bucketed sales report into an XLSX workbook.
func BuildBucketWorkbook(reportType string, buckets []models.SalesBucket) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Period", "Orders", "Total"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, b := range buckets {
		f.SetCellValue(sheet, cellRef(1, row+2), b.Bucket)
		f.SetCellValue(sheet, cellRef(2, row+2), b.Orders)
		f.SetCellValue(sheet, cellRef(3, row+2), centsToDollars(b.TotalCents))
	}

	f.SetSheetName(sheet, reportTitle(reportType))
	return f, nil
}

// BuildItemWorkbook renders item-level sales totals.
func BuildItemWorkbook(items []models.ItemSales) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Item", "Quantity", "Revenue"}
	for col, h := range headers {
		f.SetCellValue(sheet, cellRef(col+1, 1), h)
	}

	for row, it := range items {
		f.SetCellValue(sheet, cellRef(1, row+2), it.ItemName)
		f.SetCellValue(sheet, cellRef(2, row+2), it.Quantity)
		f.SetCellValue(sheet, cellRef(3, row+2), centsToDollars(it.TotalCents))
	}

	f.SetSheetName(sheet, "Item Sales")
	return f, nil
}

// BuildCustomerWorkbook renders the customer-trend report.
func BuildCustomerWorkbook(points []models.CustomerTrendPoint) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Date", "Customers", "Orders"}
	for col, h := range headers {
		f.SetCellValue(sheet, cellRef(col+1, 1), h)
	}

	for row, p := range points {
		f.SetCellValue(sheet, cellRef(1, row+2), p.Date)
		f.SetCellValue(sheet, cellRef(2, row+2), p.Customers)
		f.SetCellValue(sheet, cellRef(3, row+2), p.Orders)
	}

	f.SetSheetName(sheet, "Customer Trend")
	return f, nil
}

// WriteBucketsCSV streams a bucketed report as CSV for inline download.
func WriteBucketsCSV(w io.Writer, buckets []models.SalesBucket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "orders", "total_cents"}); err != nil {
		return err
	}
	for _, b := range buckets {
		if err := cw.Write([]string{b.Bucket, strconv.Itoa(b.Orders), strconv.FormatInt(b.TotalCents, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellRef(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func centsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

func reportTitle(reportType string) string {
	switch reportType {
	case "hourly":
		return "Hourly Sales"
	case "daily":
		return "Daily Sales"
	case "weekly":
		return "Weekly Sales"
	case "monthly":
		return "Monthly Sales"
	}
	return "Sales"
}

// ExportFileName is the on-disk name for a completed export.
func ExportFileName(job *models.ExportJob) string {
	return fmt.Sprintf("%s_%s_%s_%s.xlsx", job.ReportType, job.FromDate, job.ToDate, job.ID.String()[:8])
}
