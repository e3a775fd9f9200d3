package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dimaa-cafe/api/internal/config"
	"github.com/dimaa-cafe/api/internal/enum"
	"github.com/dimaa-cafe/api/internal/router"
	"github.com/dimaa-cafe/api/internal/service"
	"github.com/dimaa-cafe/api/internal/store"
	"github.com/dimaa-cafe/api/internal/ws"
)

// newTestServer wires the real router over real JSON stores in a temp dir.
func newTestServer(t *testing.T) chi.Router {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	cfg := &config.Config{
		Port:              "0",
		DataDir:           t.TempDir(),
		UploadsDir:        t.TempDir(),
		JWTSecret:         testJWTSecret,
		AdminEmail:        testAdminEmail,
		AdminPasswordHash: string(hash),
	}

	catalog := service.NewCatalog(
		store.NewMenuStore(cfg.DataDir),
		store.NewCategoryStore(cfg.DataDir),
	)
	hub := ws.NewHub()
	go hub.Run()

	return router.New(cfg, catalog, hub)
}

func doAuthedRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv chi.Router) string {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	return resp.AccessToken
}

func TestIntegration_HealthAndPublicReads(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: got %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/menu", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("menu: got %d", rec.Code)
	}
	var sections []store.Section
	decodeBody(t, rec, &sections)
	if len(sections) != 0 {
		t.Errorf("fresh menu should be empty, got %+v", sections)
	}

	rec = doRequest(t, srv, http.MethodGet, "/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("categories: got %d", rec.Code)
	}
	var doc store.CategoryDocument
	decodeBody(t, rec, &doc)
	if len(doc.Categories) != len(enum.PredefinedCategories) {
		t.Errorf("expected seeded categories, got %d", len(doc.Categories))
	}
}

func TestIntegration_MutationsRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/menu/items"},
		{http.MethodPost, "/menu/items"},
		{http.MethodDelete, "/menu/items/esp1"},
		{http.MethodPost, "/categories"},
		{http.MethodPut, "/categories"},
		{http.MethodDelete, "/categories/seasonal"},
		{http.MethodPost, "/uploads"},
	}
	for _, c := range cases {
		rec := doRequest(t, srv, c.method, c.path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want %d", c.method, c.path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestIntegration_ItemLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Create an item without an id; the server assigns one
	item := store.MenuItem{
		Category:    enum.CategoryHotCoffee,
		Name:        store.LanguageText{En: "Espresso", Fa: "اسپرسو"},
		Price:       store.LanguageText{En: "4.50", Fa: "85000"},
		IsAvailable: true,
	}
	rec := doAuthedRequest(t, srv, http.MethodPost, "/menu/items", token, item)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Item store.MenuItem `json:"item"`
	}
	decodeBody(t, rec, &created)
	if created.Item.ID == "" {
		t.Fatal("server did not assign an id")
	}

	// Visible on the public menu in both languages
	for _, lang := range []string{"en", "fa"} {
		rec = doRequest(t, srv, http.MethodGet, "/menu?lang="+lang, nil)
		var sections []store.Section
		decodeBody(t, rec, &sections)
		if len(sections) != 1 || len(sections[0].Items) != 1 {
			t.Fatalf("%s: expected the created item, got %+v", lang, sections)
		}
	}

	// Delete it; section goes with it
	rec = doAuthedRequest(t, srv, http.MethodDelete, "/menu/items/"+created.Item.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}
	var deleted struct {
		Found bool `json:"found"`
	}
	decodeBody(t, rec, &deleted)
	if !deleted.Found {
		t.Fatal("expected found=true")
	}

	rec = doRequest(t, srv, http.MethodGet, "/menu", nil)
	var sections []store.Section
	decodeBody(t, rec, &sections)
	if len(sections) != 0 {
		t.Errorf("expected empty menu after delete, got %+v", sections)
	}
}

func TestIntegration_CategoryLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Add with a derived id
	rec := doAuthedRequest(t, srv, http.MethodPost, "/categories", token, map[string]any{
		"name": map[string]string{"en": "Iced Tea", "fa": "چای یخ"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: %d %s", rec.Code, rec.Body.String())
	}
	var category store.Category
	decodeBody(t, rec, &category)
	if category.ID != "iced-tea" {
		t.Fatalf("derived id: got %q", category.ID)
	}

	// The new category gets an empty menu section immediately
	rec = doAuthedRequest(t, srv, http.MethodGet, "/menu/items", token, nil)
	var sections []store.Section
	decodeBody(t, rec, &sections)
	found := false
	for _, s := range sections {
		if s.Category == "iced-tea" && len(s.Items) == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("empty section for iced-tea missing: %+v", sections)
	}

	// Predefined categories cannot be deleted
	rec = doAuthedRequest(t, srv, http.MethodDelete, "/categories/"+enum.CategoryBreakfast, token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("predefined delete: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	// Custom categories can
	rec = doAuthedRequest(t, srv, http.MethodDelete, "/categories/iced-tea", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = doRequest(t, srv, http.MethodGet, "/categories", nil)
	var doc store.CategoryDocument
	decodeBody(t, rec, &doc)
	for _, c := range doc.Categories {
		if c.ID == "iced-tea" {
			t.Error("deleted category still listed")
		}
	}
}

func TestIntegration_ReorderCascadesIntoSections(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Two sections created through item upserts
	for _, c := range []string{enum.CategoryBreakfast, enum.CategoryHotCoffee} {
		item := store.MenuItem{
			ID:       "item-" + c,
			Category: c,
			Name:     store.LanguageText{En: "Item " + c},
		}
		rec := doAuthedRequest(t, srv, http.MethodPost, "/menu/items", token, item)
		if rec.Code != http.StatusOK {
			t.Fatalf("upsert %s: %d %s", c, rec.Code, rec.Body.String())
		}
	}

	// Reverse the order
	rec := doAuthedRequest(t, srv, http.MethodPut, "/categories", token, map[string]any{
		"categories": []map[string]any{
			{"id": enum.CategoryHotCoffee, "name": map[string]string{"en": "Hot Coffee"}},
			{"id": enum.CategoryBreakfast, "name": map[string]string{"en": "Breakfast"}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: %d %s", rec.Code, rec.Body.String())
	}

	rec = doAuthedRequest(t, srv, http.MethodGet, "/menu/items", token, nil)
	var sections []store.Section
	decodeBody(t, rec, &sections)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %+v", sections)
	}
	if sections[0].Category != enum.CategoryHotCoffee || sections[1].Category != enum.CategoryBreakfast {
		t.Errorf("sections not reordered: %+v", sections)
	}
}

func TestIntegration_RefreshFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d", rec.Code)
	}
	var tokens struct {
		RefreshToken string `json:"refresh_token"`
	}
	decodeBody(t, rec, &tokens)

	rec = doRequest(t, srv, http.MethodPost, "/auth/refresh", map[string]string{
		"refresh_token": tokens.RefreshToken,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: %d %s", rec.Code, rec.Body.String())
	}

	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &refreshed)

	// The refreshed token opens the admin surface
	rec = doAuthedRequest(t, srv, http.MethodGet, "/menu/items", refreshed.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin read with refreshed token: %d", rec.Code)
	}
}
