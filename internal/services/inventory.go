package services

import (
	"context"

	"github.com/google/uuid"

	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
)

type InventoryService struct {
	repo      *repository.InventoryRepo
	alertRepo *repository.AlertRepo
	alerts    *AlertService
}

func NewInventoryService(repo *repository.InventoryRepo, alertRepo *repository.AlertRepo, alerts *AlertService) *InventoryService {
	return &InventoryService{repo: repo, alertRepo: alertRepo, alerts: alerts}
}

func (s *InventoryService) Create(ctx context.Context, updatedBy uuid.UUID, req models.UpsertInventoryRequest) (*models.InventoryItem, error) {
	if err := validateInventory(req); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		Name:             req.Name,
		Unit:             req.Unit,
		OnHand:           req.OnHand,
		ReorderThreshold: req.ReorderThreshold,
		UpdatedBy:        updatedBy,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.checkThreshold(ctx, item)
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, updatedBy uuid.UUID, id uuid.UUID, req models.UpsertInventoryRequest) (*models.InventoryItem, error) {
	if err := validateInventory(req); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Inventory item not found"}
	}

	item.Name = req.Name
	item.Unit = req.Unit
	item.OnHand = req.OnHand
	item.ReorderThreshold = req.ReorderThreshold
	item.UpdatedBy = updatedBy

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.checkThreshold(ctx, item)
	return item, nil
}

func (s *InventoryService) List(ctx context.Context, search, sortBy string) ([]models.InventoryItem, error) {
	return s.repo.List(ctx, search, sortBy)
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// checkThreshold raises a low_stock alert immediately on a count update that
// drops an item to or under its reorder point; the scanner acts as a
// backstop for anything missed.
func (s *InventoryService) checkThreshold(ctx context.Context, item *models.InventoryItem) {
	if item.OnHand > item.ReorderThreshold {
		return
	}
	open, err := s.alertRepo.HasOpenAlert(ctx, "low_stock", item.ID)
	if err != nil || open {
		return
	}
	id := item.ID
	s.alerts.Raise(ctx, "low_stock", lowStockMessage(*item), &id)
}

func validateInventory(req models.UpsertInventoryRequest) error {
	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	switch req.Unit {
	case "each", "case", "lb", "gal":
	default:
		fieldErrors["unit"] = "Unit must be each, case, lb, or gal"
	}
	if req.OnHand < 0 {
		fieldErrors["on_hand"] = "On-hand count cannot be negative"
	}
	if req.ReorderThreshold < 0 {
		fieldErrors["reorder_threshold"] = "Reorder threshold cannot be negative"
	}
	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}
