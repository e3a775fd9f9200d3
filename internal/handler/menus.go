package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dimaa-cafe/api/internal/enum"
	"github.com/dimaa-cafe/api/internal/service"
	"github.com/dimaa-cafe/api/internal/store"
	"github.com/dimaa-cafe/api/internal/ws"
)

// MenuCatalog defines the catalog methods needed by menu handlers.
// Satisfied by *service.Catalog; narrow interface for testability.
type MenuCatalog interface {
	ListVisibleSections(ctx context.Context, lang string) ([]store.Section, error)
	Sections(ctx context.Context) ([]store.Section, error)
	UpsertItem(ctx context.Context, item store.MenuItem) error
	DeleteItem(ctx context.Context, id string) (service.DeleteItemResult, error)
}

// Notifier pushes catalog-change events to connected menu clients.
// Satisfied by *ws.Hub.
type Notifier interface {
	Broadcast(event ws.Event)
}

// MenuHandler handles the public menu read and the admin item endpoints.
type MenuHandler struct {
	catalog MenuCatalog
	hub     Notifier
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(catalog MenuCatalog, hub Notifier) *MenuHandler {
	return &MenuHandler{catalog: catalog, hub: hub}
}

// RegisterPublicRoutes registers the unauthenticated menu read.
// Expected mount: /menu
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.ListVisible)
}

// RegisterAdminRoutes registers the item CRUD endpoints.
// Expected mount: /menu/items, behind the auth gate.
func (h *MenuHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Upsert)
	r.Delete("/{id}", h.Delete)
}

// --- Response types ---

type upsertItemResponse struct {
	Success bool           `json:"success"`
	Item    store.MenuItem `json:"item"`
}

type deleteItemResponse struct {
	Found    bool   `json:"found"`
	Category string `json:"category,omitempty"`
}

// --- Handlers ---

// ListVisible returns the sections filtered for one display language.
// A missing lang defaults to Persian; an unsupported value is rejected.
// Storage failures degrade to an empty menu rather than an error page: the
// public site shows "no items available" instead of breaking.
func (h *MenuHandler) ListVisible(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = enum.DefaultLanguage
	}

	sections, err := h.catalog.ListVisibleSections(r.Context(), lang)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLanguage) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		logrus.Errorf("list visible sections: %v", err)
		writeJSON(w, http.StatusOK, []store.Section{})
		return
	}

	writeJSON(w, http.StatusOK, sections)
}

// List returns the raw unfiltered sections document for the admin panel.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.catalog.Sections(r.Context())
	if err != nil {
		logrus.Errorf("list sections: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, sections)
}

// Upsert creates or replaces a menu item. An omitted id is generated here,
// so clients that never supply ids still get stable ones back.
func (h *MenuHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var item store.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := h.catalog.UpsertItem(r.Context(), item); err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		logrus.Errorf("upsert item %s: %v", item.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.notify(enum.EventMenuUpdated, map[string]string{"id": item.ID, "category": item.Category})
	writeJSON(w, http.StatusOK, upsertItemResponse{Success: true, Item: item})
}

// Delete removes an item by id. An unknown id is a soft miss, reported in
// the body rather than as an error status.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.catalog.DeleteItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		logrus.Errorf("delete item %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if result.Found {
		h.notify(enum.EventMenuUpdated, map[string]string{"id": id, "category": result.Category})
	} else {
		logrus.Warnf("delete item %s: not found", id)
	}

	writeJSON(w, http.StatusOK, deleteItemResponse{Found: result.Found, Category: result.Category})
}

func (h *MenuHandler) notify(eventType string, payload any) {
	if h.hub == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("marshal %s payload: %v", eventType, err)
		return
	}
	h.hub.Broadcast(ws.Event{Type: eventType, Payload: data})
}
