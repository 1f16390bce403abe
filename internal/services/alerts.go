package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
)

// AlertChannel is the Redis pub/sub channel the websocket hub listens on.
const AlertChannel = "alerts"

// AlertService persists alerts and pushes them to connected back-office
// clients through the alert channel.
type AlertService struct {
	repo  *repository.AlertRepo
	redis *redis.Client
}

func NewAlertService(repo *repository.AlertRepo, redisClient *redis.Client) *AlertService {
	return &AlertService{repo: repo, redis: redisClient}
}

// Raise records an alert and broadcasts it. Failures are logged, not
// returned: an alert must never fail the operation that triggered it.
func (s *AlertService) Raise(ctx context.Context, kind, message string, referenceID *uuid.UUID) {
	alert := &models.Alert{
		Kind:        kind,
		Message:     message,
		ReferenceID: referenceID,
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		log.Printf("alert: failed to persist %s alert: %v", kind, err)
		return
	}

	payload, err := json.Marshal(models.WSMessage{
		Type: "alert",
		Payload: models.AlertEvent{
			AlertID:   alert.ID,
			Kind:      alert.Kind,
			Message:   alert.Message,
			CreatedAt: alert.CreatedAt,
		},
	})
	if err != nil {
		return
	}
	if err := s.redis.Publish(ctx, AlertChannel, payload).Err(); err != nil {
		log.Printf("alert: failed to publish %s alert: %v", kind, err)
	}
}

func (s *AlertService) ListOpen(ctx context.Context) ([]models.Alert, error) {
	return s.repo.ListOpen(ctx)
}

func (s *AlertService) Acknowledge(ctx context.Context, id uuid.UUID) error {
	return s.repo.Acknowledge(ctx, id)
}

// AlertScanner periodically sweeps inventory for items at or under their
// reorder threshold and raises a low_stock alert for each, skipping items
// that already have one open. Explicit Start/Stop lifecycle, owned by main.
type AlertScanner struct {
	inventoryRepo *repository.InventoryRepo
	alertRepo     *repository.AlertRepo
	alerts        *AlertService
	interval      time.Duration
	stopChan      chan struct{}
}

func NewAlertScanner(inventoryRepo *repository.InventoryRepo, alertRepo *repository.AlertRepo, alerts *AlertService, interval time.Duration) *AlertScanner {
	return &AlertScanner{
		inventoryRepo: inventoryRepo,
		alertRepo:     alertRepo,
		alerts:        alerts,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

func (s *AlertScanner) Start() {
	go s.loop()
	log.Printf("Alert scanner started (every %s)", s.interval)
}

func (s *AlertScanner) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *AlertScanner) loop() {
	// Run on startup as well as by interval.
	s.scan(context.Background())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.scan(context.Background())
		}
	}
}

func (s *AlertScanner) scan(ctx context.Context) {
	items, err := s.inventoryRepo.ListBelowThreshold(ctx)
	if err != nil {
		log.Printf("alert scan: failed to list low-stock items: %v", err)
		return
	}

	for _, item := range items {
		open, err := s.alertRepo.HasOpenAlert(ctx, "low_stock", item.ID)
		if err != nil {
			log.Printf("alert scan: failed to check open alert for %s: %v", item.Name, err)
			continue
		}
		if open {
			continue
		}

		id := item.ID
		s.alerts.Raise(ctx, "low_stock", lowStockMessage(item), &id)
	}
}

func lowStockMessage(item models.InventoryItem) string {
	return item.Name + " is at or below its reorder threshold"
}
