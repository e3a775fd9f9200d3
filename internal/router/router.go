package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/dimaa-cafe/api/internal/config"
	"github.com/dimaa-cafe/api/internal/handler"
	mw "github.com/dimaa-cafe/api/internal/middleware"
	"github.com/dimaa-cafe/api/internal/service"
	"github.com/dimaa-cafe/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Menu and category reads are public; every mutation sits behind the
// bearer-token gate.
func New(cfg *config.Config, catalog *service.Catalog, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	allowedOrigins := []string{
		"http://localhost:3000", // Next.js dev server
		"https://menu.dimaa.cafe",
		"https://admin.dimaa.cafe",
	}
	if cfg.CORSAllowOrigins != "" {
		allowedOrigins = strings.Split(cfg.CORSAllowOrigins, ",")
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route: open menus listen for catalog changes
	r.Get("/ws/menu", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	authenticate := mw.Authenticate(cfg.JWTSecret)

	// Menu: public filtered read, protected item CRUD
	menuHandler := handler.NewMenuHandler(catalog, hub)
	r.Route("/menu", func(r chi.Router) {
		menuHandler.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Route("/items", menuHandler.RegisterAdminRoutes)
		})
	})

	// Categories: public read, protected mutations on the same mount
	categoryHandler := handler.NewCategoryHandler(catalog, hub)
	r.Route("/categories", func(r chi.Router) {
		categoryHandler.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			categoryHandler.RegisterAdminRoutes(r)
		})
	})

	// Uploads: protected write, public static serving
	uploadHandler := handler.NewUploadHandler(cfg.UploadsDir)
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Route("/uploads", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			uploadHandler.RegisterRoutes(r)
		})
		r.Get("/*", fileServer.ServeHTTP)
	})

	logrus.Info("Router initialized with all handlers")
	return r
}
