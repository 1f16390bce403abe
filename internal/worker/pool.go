package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"

	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
	"backhouse-backend/internal/services"
)

// Pool pops report-export jobs off the Redis queue and renders them into
// XLSX files on disk.
type Pool struct {
	redis       *redis.Client
	pubsub      *redis.Client
	exportRepo  *repository.ExportRepo
	reports     *services.ReportsService
	exportPath  string
	workerCount int
	stopChan    chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	pubsubClient *redis.Client,
	exportRepo *repository.ExportRepo,
	reports *services.ReportsService,
	exportPath string,
	workerCount int,
) *Pool {
	return &Pool{
		redis:       redisClient,
		pubsub:      pubsubClient,
		exportRepo:  exportRepo,
		reports:     reports,
		exportPath:  exportPath,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	if err := os.MkdirAll(p.exportPath, 0o755); err != nil {
		log.Printf("Failed to create export directory %s: %v", p.exportPath, err)
	}

	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}

	log.Printf("Started %d export worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, services.ExportQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.ExportJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse export job: %v", id, err)
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("job_lock:%s", job.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this job
		}

		log.Printf("Worker %d: exporting %s report %s", id, job.ReportType, job.ID)

		p.exportRepo.UpdateStatus(ctx, job.ID, "processing")

		filePath, processErr := p.process(ctx, &job)
		if processErr != nil {
			p.handleFailure(ctx, &job, processErr)
		} else {
			p.handleSuccess(ctx, &job, filePath)
		}

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) process(ctx context.Context, job *models.ExportJob) (string, error) {
	from, to, err := services.ParseRange(job.FromDate, job.ToDate)
	if err != nil {
		return "", fmt.Errorf("invalid date range: %w", err)
	}

	var f *excelize.File
	switch job.ReportType {
	case "hourly", "daily", "weekly", "monthly":
		buckets, qErr := p.reports.Bucketed(ctx, job.ReportType, from, to)
		if qErr != nil {
			return "", fmt.Errorf("failed to query %s totals: %w", job.ReportType, qErr)
		}
		f, err = services.BuildBucketWorkbook(job.ReportType, buckets)
	case "items":
		items, qErr := p.reports.ItemTotals(ctx, from, to)
		if qErr != nil {
			return "", fmt.Errorf("failed to query item totals: %w", qErr)
		}
		f, err = services.BuildItemWorkbook(items)
	case "customers":
		points, qErr := p.reports.CustomerTrend(ctx, from, to)
		if qErr != nil {
			return "", fmt.Errorf("failed to query customer trend: %w", qErr)
		}
		f, err = services.BuildCustomerWorkbook(points)
	default:
		return "", fmt.Errorf("unknown report type: %s", job.ReportType)
	}
	if err != nil {
		return "", fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	filePath := filepath.Join(p.exportPath, services.ExportFileName(job))
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return filePath, nil
}

func (p *Pool) handleSuccess(ctx context.Context, job *models.ExportJob, filePath string) {
	if err := p.exportRepo.MarkCompleted(ctx, job.ID, filePath); err != nil {
		log.Printf("Failed to mark export %s completed: %v", job.ID, err)
	}

	p.publish(ctx, models.WSMessage{
		Type:   "export_ready",
		UserID: job.UserID,
		Payload: models.ExportReadyEvent{
			JobID:      job.ID,
			ReportType: job.ReportType,
			FilePath:   filePath,
		},
	})

	log.Printf("Export %s completed: %s", job.ID, filePath)
}

func (p *Pool) handleFailure(ctx context.Context, job *models.ExportJob, err error) {
	errMsg := err.Error()
	log.Printf("Export %s failed: %s", job.ID, errMsg)

	if markErr := p.exportRepo.MarkFailed(ctx, job.ID, errMsg); markErr != nil {
		log.Printf("Failed to mark export %s failed: %v", job.ID, markErr)
	}

	p.publish(ctx, models.WSMessage{
		Type:   "export_failed",
		UserID: job.UserID,
		Payload: models.ExportFailedEvent{
			JobID:        job.ID,
			ErrorMessage: errMsg,
		},
	})
}

func (p *Pool) publish(ctx context.Context, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := p.pubsub.Publish(ctx, services.AlertChannel, data).Err(); err != nil {
		log.Printf("Failed to publish %s event: %v", msg.Type, err)
	}
}
