package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dimaa-cafe/api/internal/auth"
	"github.com/dimaa-cafe/api/internal/enum"
	"github.com/dimaa-cafe/api/internal/handler"
)

const (
	testAdminEmail    = "admin@dimaa.cafe"
	testAdminPassword = "correct-horse"
	testJWTSecret     = "test-secret"
)

func newAuthRouter(t *testing.T) chi.Router {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	h := handler.NewAuthHandler(testAdminEmail, string(hash), testJWTSecret)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestLogin_Success(t *testing.T) {
	r := newAuthRouter(t)

	body := map[string]string{"email": testAdminEmail, "password": testAdminPassword}
	rec := doRequest(t, r, http.MethodPost, "/auth/login", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens in response")
	}
	if resp.User.Role != enum.RoleAdmin {
		t.Errorf("role: got %q, want %q", resp.User.Role, enum.RoleAdmin)
	}

	claims, err := auth.ValidateToken(testJWTSecret, resp.AccessToken)
	if err != nil {
		t.Fatalf("issued access token does not validate: %v", err)
	}
	if claims.Email != testAdminEmail || claims.Role != enum.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	r := newAuthRouter(t)

	body := map[string]string{"email": "ADMIN@dimaa.cafe", "password": testAdminPassword}
	rec := doRequest(t, r, http.MethodPost, "/auth/login", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newAuthRouter(t)

	body := map[string]string{"email": testAdminEmail, "password": "wrong"}
	rec := doRequest(t, r, http.MethodPost, "/auth/login", body)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	r := newAuthRouter(t)

	body := map[string]string{"email": "intruder@dimaa.cafe", "password": testAdminPassword}
	rec := doRequest(t, r, http.MethodPost, "/auth/login", body)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	r := newAuthRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/auth/login", map[string]string{"email": testAdminEmail})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRefresh_Success(t *testing.T) {
	r := newAuthRouter(t)

	refreshToken, err := auth.GenerateRefreshToken(testJWTSecret, testAdminEmail)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	rec := doRequest(t, r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refreshToken})

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	if resp.AccessToken == "" {
		t.Error("expected a fresh access token")
	}
}

func TestRefresh_WrongSubjectRejected(t *testing.T) {
	r := newAuthRouter(t)

	refreshToken, err := auth.GenerateRefreshToken(testJWTSecret, "someone-else@dimaa.cafe")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	rec := doRequest(t, r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refreshToken})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	r := newAuthRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": "not-a-jwt"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	r := newAuthRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/auth/refresh", map[string]string{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
