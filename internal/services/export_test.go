package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"backhouse-backend/internal/models"
)

func TestBuildBucketWorkbook(t *testing.T) {
	buckets := []models.SalesBucket{
		{Bucket: "2025-03-01", Orders: 42, TotalCents: 123456},
		{Bucket: "2025-03-02", Orders: 10, TotalCents: 9900},
	}

	f, err := BuildBucketWorkbook("daily", buckets)
	if err != nil {
		t.Fatalf("BuildBucketWorkbook failed: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Daily Sales" {
		t.Errorf("sheet name = %q, want %q", sheet, "Daily Sales")
	}

	header, _ := f.GetCellValue(sheet, "A1")
	if header != "Period" {
		t.Errorf("A1 = %q, want %q", header, "Period")
	}

	period, _ := f.GetCellValue(sheet, "A2")
	if period != "2025-03-01" {
		t.Errorf("A2 = %q, want %q", period, "2025-03-01")
	}
	total, _ := f.GetCellValue(sheet, "C2")
	if total != "1234.56" {
		t.Errorf("C2 = %q, want %q", total, "1234.56")
	}
}

func TestBuildItemWorkbook(t *testing.T) {
	items := []models.ItemSales{
		{ItemName: "Spicy Sandwich", Quantity: 200, TotalCents: 99800},
	}

	f, err := BuildItemWorkbook(items)
	if err != nil {
		t.Fatalf("BuildItemWorkbook failed: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != "Item Sales" {
		t.Errorf("sheet name = %q, want %q", sheet, "Item Sales")
	}
	name, _ := f.GetCellValue(sheet, "A2")
	if name != "Spicy Sandwich" {
		t.Errorf("A2 = %q, want %q", name, "Spicy Sandwich")
	}
}

func TestWriteBucketsCSV(t *testing.T) {
	buckets := []models.SalesBucket{
		{Bucket: "2025-03-01", Orders: 5, TotalCents: 2500},
		{Bucket: "2025-03-02", Orders: 0, TotalCents: 0},
	}

	var buf bytes.Buffer
	if err := WriteBucketsCSV(&buf, buckets); err != nil {
		t.Fatalf("WriteBucketsCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if lines[0] != "period,orders,total_cents" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-03-01,5,2500" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestExportFileName(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	job := &models.ExportJob{
		ID:         id,
		ReportType: "weekly",
		FromDate:   "2025-03-01",
		ToDate:     "2025-03-31",
	}

	got := ExportFileName(job)
	want := "weekly_2025-03-01_2025-03-31_a1b2c3d4.xlsx"
	if got != want {
		t.Errorf("ExportFileName = %q, want %q", got, want)
	}
}
