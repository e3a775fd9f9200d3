package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/dimaa-cafe/api/internal/enum"
	"github.com/dimaa-cafe/api/internal/service"
	"github.com/dimaa-cafe/api/internal/store"
	"github.com/dimaa-cafe/api/internal/ws"
)

// CategoryCatalog defines the catalog methods needed by category handlers.
// Satisfied by *service.Catalog; narrow interface for testability.
type CategoryCatalog interface {
	ListCategories(ctx context.Context) (store.CategoryDocument, error)
	AddCategory(ctx context.Context, id string, name store.LanguageText) (store.Category, error)
	ReorderCategories(ctx context.Context, newOrder []store.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryHandler handles category CRUD endpoints.
type CategoryHandler struct {
	catalog CategoryCatalog
	hub     Notifier
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(catalog CategoryCatalog, hub Notifier) *CategoryHandler {
	return &CategoryHandler{catalog: catalog, hub: hub}
}

// RegisterPublicRoutes registers the unauthenticated category read.
// Expected mount: /categories
func (h *CategoryHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// RegisterAdminRoutes registers the category mutation endpoints.
// Expected mount: /categories, behind the auth gate.
func (h *CategoryHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/", h.Add)
	r.Put("/", h.Reorder)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type addCategoryRequest struct {
	ID   string             `json:"id"`
	Name store.LanguageText `json:"name"`
}

type reorderCategoriesRequest struct {
	Categories []store.Category `json:"categories"`
}

type reorderCategoriesResponse struct {
	Success    bool             `json:"success"`
	Categories []store.Category `json:"categories"`
}

// --- Handlers ---

// List returns the ordered category list plus the protected predefined ids.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		logrus.Errorf("list categories: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Add appends a new category. The id may be omitted; it is then derived
// from the English name.
func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	category, err := h.catalog.AddCategory(r.Context(), req.ID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateCategory):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrPartialWrite):
			logrus.Errorf("add category %s: %v", req.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "stores are out of sync; re-fetch the category list",
			})
		default:
			logrus.Errorf("add category %s: %v", req.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.notifyCategories()
	writeJSON(w, http.StatusCreated, category)
}

// Reorder replaces the category order wholesale and cascades the new order
// into the menu sections.
func (h *CategoryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Categories == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "categories array is required"})
		return
	}

	if err := h.catalog.ReorderCategories(r.Context(), req.Categories); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrPartialWrite):
			logrus.Errorf("reorder categories: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "stores are out of sync; re-fetch the category list",
			})
		default:
			logrus.Errorf("reorder categories: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.notifyCategories()
	writeJSON(w, http.StatusOK, reorderCategoriesResponse{Success: true, Categories: req.Categories})
}

// Delete removes a category and destructively drops its menu section.
// Predefined categories are rejected.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrPredefinedCategory):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrValidation):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrPartialWrite):
			logrus.Errorf("delete category %s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "stores are out of sync; re-fetch the category list",
			})
		default:
			logrus.Errorf("delete category %s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	h.notifyCategories()
	w.WriteHeader(http.StatusNoContent)
}

// notifyCategories announces a category change. Category mutations cascade
// into the menu document, so both events fire and clients re-fetch both.
func (h *CategoryHandler) notifyCategories() {
	if h.hub == nil {
		return
	}
	empty := json.RawMessage(`{}`)
	h.hub.Broadcast(ws.Event{Type: enum.EventCategoriesUpdated, Payload: empty})
	h.hub.Broadcast(ws.Event{Type: enum.EventMenuUpdated, Payload: empty})
}
