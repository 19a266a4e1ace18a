package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/terraincognita07/sitelog/internal/api"
	"github.com/terraincognita07/sitelog/internal/config"
	"github.com/terraincognita07/sitelog/internal/db"
	"github.com/terraincognita07/sitelog/internal/geo"
	"github.com/terraincognita07/sitelog/internal/metrics"
	"github.com/terraincognita07/sitelog/internal/storage"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:]); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	app, err := newApp(cfg, database)
	if err != nil {
		log.Fatalf("app init failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("sitelog listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newApp(cfg config.Config, database *gorm.DB) (*fiber.App, error) {
	uploads, err := storage.NewLocalUploads(cfg.Uploads.Dir, cfg.Uploads.BaseURL, cfg.Uploads.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("upload storage: %w", err)
	}

	recorder := metrics.NewRecorder()
	handler, err := api.NewHandler(cfg.SecretKey, cfg.Location, cfg.CookieSecure, api.Dependencies{
		Repositories: db.NewRepositories(database),
		Geocoder:     geo.NewNominatimGeocoder(cfg.Geocoder.URL, cfg.Geocoder.RequestsPerSecond, cfg.HTTPTimeout, recorder),
		Weather:      geo.NewOpenMeteoWeather(cfg.Weather.ForecastURL, cfg.Weather.ArchiveURL, cfg.HTTPTimeout, cfg.Location, recorder),
		Uploads:      uploads,
		Recorder:     recorder,
	})
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "sitelog",
		DisableStartupMessage: true,
		BodyLimit:             int(uploads.MaxBytes()) + 1<<20,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())
	app.Use(cors.New(corsConfig()))
	app.Use(recorder.Middleware())

	api.RegisterRoutes(app, handler)
	return app, nil
}

// corsConfig admits cross-origin API clients. Browsers only send the session
// cookie same-origin; other origins authenticate with a bearer token.
func corsConfig() cors.Config {
	return cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}
}
