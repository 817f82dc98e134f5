package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/gateway"
	"github.com/i474232898/weather-dashboard/internal/persist"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound weather and geocoding calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Device location capability, if an endpoint is configured.
	var locator gateway.DeviceLocator
	if cfg.DeviceLocationBaseURL != "" {
		locator = gateway.NewIPLocator(httpClient, cfg.DeviceLocationBaseURL)
	}

	gw := gateway.New(gateway.Config{
		Client:                httpClient,
		ForecastBaseURL:       cfg.ForecastBaseURL,
		GeocodingBaseURL:      cfg.GeocodingBaseURL,
		ReverseGeocodeBaseURL: cfg.ReverseGeocodeBaseURL,
		UserAgent:             cfg.UserAgent,
		CacheTTL:              cfg.CacheTTL,
		Locator:               locator,
	})

	// Recent locations and preferences survive restarts; Redis when
	// configured, a JSON state file otherwise.
	var persister persist.Persister
	if cfg.RedisAddr != "" {
		redisStore := persist.NewRedisStore(cfg.RedisAddr)
		defer redisStore.Close()
		persister = redisStore
	} else {
		persister = persist.NewFileStore(cfg.StateFile)
	}

	st := store.New(gw, persister)

	// Background refresh of the active location's weather.
	sched := scheduler.New(st, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, st)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
