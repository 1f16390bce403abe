package models

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Unit             string    `json:"unit"` // "each" | "case" | "lb" | "gal"
	OnHand           float64   `json:"on_hand"`
	ReorderThreshold float64   `json:"reorder_threshold"`
	UpdatedBy        uuid.UUID `json:"updated_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpsertInventoryRequest struct {
	Name             string  `json:"name"`
	Unit             string  `json:"unit"`
	OnHand           float64 `json:"on_hand"`
	ReorderThreshold float64 `json:"reorder_threshold"`
}

type Alert struct {
	ID           uuid.UUID  `json:"id"`
	Kind         string     `json:"kind"` // "low_stock" | "safe_variance"
	Message      string     `json:"message"`
	ReferenceID  *uuid.UUID `json:"reference_id"`
	Acknowledged bool       `json:"acknowledged"`
	CreatedAt    time.Time  `json:"created_at"`
}
