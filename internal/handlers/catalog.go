package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backhouse-backend/internal/models"
	"backhouse-backend/internal/repository"
)

// CatalogHandler serves the menu catalog: categories, items, and sauces.
type CatalogHandler struct {
	repo *repository.CatalogRepo
}

func NewCatalogHandler(repo *repository.CatalogRepo) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.repo.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": cats})
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Category name is required", r))
		return
	}

	cat := &models.Category{Name: req.Name, SortOrder: req.SortOrder}
	if err := h.repo.CreateCategory(r.Context(), cat); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"category": cat})
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid category ID", r))
		return
	}
	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// ListItems supports ?search= and ?category= filters.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid category filter", r))
			return
		}
		categoryID = &id
	}

	items, err := h.repo.ListItems(r.Context(), r.URL.Query().Get("search"), categoryID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.parseItem(w, r)
	if !ok {
		return
	}

	if err := h.repo.CreateItem(r.Context(), item); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"item": item})
}

func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid item ID", r))
		return
	}

	item, ok := h.parseItem(w, r)
	if !ok {
		return
	}
	item.ID = id

	if err := h.repo.UpdateItem(r.Context(), item); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid item ID", r))
		return
	}
	if err := h.repo.DeleteItem(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

func (h *CatalogHandler) ListSauces(w http.ResponseWriter, r *http.Request) {
	sauces, err := h.repo.ListSauces(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sauces": sauces})
}

func (h *CatalogHandler) CreateSauce(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertSauceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Sauce name is required", r))
		return
	}

	sauce := &models.Sauce{Name: req.Name, IsActive: true}
	if req.IsActive != nil {
		sauce.IsActive = *req.IsActive
	}
	if err := h.repo.CreateSauce(r.Context(), sauce); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"sauce": sauce})
}

func (h *CatalogHandler) DeleteSauce(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid sauce ID", r))
		return
	}
	if err := h.repo.DeleteSauce(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sauce deleted"})
}

func (h *CatalogHandler) parseItem(w http.ResponseWriter, r *http.Request) (*models.Item, bool) {
	var req models.UpsertItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return nil, false
	}

	fieldErrors := make(map[string]string)
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		fieldErrors["category_id"] = "Invalid category ID"
	}
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.PriceCents < 0 {
		fieldErrors["price_cents"] = "Price cannot be negative"
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return nil, false
	}

	item := &models.Item{CategoryID: categoryID, Name: req.Name, PriceCents: req.PriceCents, IsActive: true}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	return item, true
}
