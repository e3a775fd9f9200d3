package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dimaa-cafe/api/internal/config"
	"github.com/dimaa-cafe/api/internal/router"
	"github.com/dimaa-cafe/api/internal/service"
	"github.com/dimaa-cafe/api/internal/store"
	"github.com/dimaa-cafe/api/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if cfg.AdminPasswordHash == "" {
		logrus.Warn("ADMIN_PASSWORD_HASH is not set; admin login is disabled until it is")
	}

	menuStore := store.NewMenuStore(cfg.DataDir)
	categoryStore := store.NewCategoryStore(cfg.DataDir)
	catalog := service.NewCatalog(menuStore, categoryStore)

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, catalog, hub)

	logrus.Infof("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logrus.Fatal(err)
	}
}
