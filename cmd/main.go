// File: spoiler-storefront/cmd/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spoiler-storefront/internal/api"
	"spoiler-storefront/internal/checkout"
	"spoiler-storefront/internal/config"
	"spoiler-storefront/internal/mailer"
	"spoiler-storefront/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const (
	defaultAppName = "SpoilerStorefront" // App name for logger
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found or failed to load, relying on system environment")
	}
	logger := log.New(os.Stdout, fmt.Sprintf("[%s] ", defaultAppName), log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
	logger.Println("INFO: Starting service...")

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("FATAL: Error loading configuration: %v", err)
	}
	logger.Printf("INFO: Configuration loaded for APP_ENV: %s, LogLevel: %s", cfg.AppEnv, cfg.LogLevel)

	// --- Storage Backend ---
	var (
		st store.Store
		db *sql.DB // nil for the memory backend
	)
	switch cfg.Storage.Backend {
	case "memory":
		st = store.NewMemoryStore()
		logger.Println("INFO: Using seeded in-memory storage (non-durable).")
	case "postgres":
		db, err = sql.Open("postgres", cfg.Storage.Postgres.DSN())
		if err != nil {
			logger.Fatalf("FATAL: Failed to initialize database connection: %v", err)
		}
		if err := db.PingContext(context.Background()); err != nil {
			logger.Fatalf("FATAL: Failed to ping database: %v", err)
		}
		pgStore := store.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			logger.Fatalf("FATAL: Failed to ensure database schema: %v", err)
		}
		st = pgStore
		logger.Println("INFO: Database connection established and schema ensured.")
	default:
		logger.Fatalf("FATAL: Unknown STORAGE_BACKEND %q (want memory or postgres)", cfg.Storage.Backend)
	}
	defer func() {
		// Fallback if startup fails before graceful shutdown takes over.
		if err := st.Close(); err != nil {
			logger.Printf("WARN: Error closing store on deferred cleanup: %v", err)
		}
	}()

	// --- Mailer ---
	var m mailer.Mailer = mailer.Noop{}
	if cfg.SMTP.Host != "" {
		m = mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.NotifyTo)
		logger.Printf("INFO: SMTP mailer configured for host %s", cfg.SMTP.Host)
	} else {
		logger.Println("INFO: SMTP_HOST not set, mail notifications disabled.")
	}

	// --- Checkout Workflow & API Handlers ---
	checkoutSvc := checkout.NewService(st, cfg.Pricing.Engine(), cfg.Pricing.VerifyTotals, m)
	if cfg.Pricing.VerifyTotals {
		logger.Println("INFO: Order total verification enabled.")
	}
	httpAPIHandler := api.NewHTTPHandler(st, st, st, st, checkoutSvc, m) // st implements all storer interfaces

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger)
	registerHealthCheck(httpRouter, logger, cfg.Storage.Backend, db)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.Printf("INFO: HTTP server listening on port %s", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("FATAL: HTTP server ListenAndServe error: %v", err)
		}
		logger.Println("INFO: HTTP server has stopped.")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, st, shutdownComplete)

	<-shutdownComplete // Block until graceful shutdown is complete
	logger.Println("INFO: Service shutdown sequence finished.")
}

func setupBaseMiddleware(router *chi.Mux, logger *log.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger) // Chi's request logger
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second)) // Default timeout for requests
	logger.Println("INFO: Base HTTP middleware registered.")
}

func registerHealthCheck(router *chi.Mux, logger *log.Logger, backend string, db *sql.DB) {
	healthPath := "/api/healthz"
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		storageStatus := "healthy"
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				storageStatus = "unhealthy"
				logger.Printf("WARN: Health check DB ping failed: %v", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK) // Always 200, but payload indicates detailed status
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"serviceName": defaultAppName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"storage":     backend,
			"storageOk":   storageStatus,
		})
	})
	logger.Printf("INFO: HTTP health check registered at %s", healthPath)
}

func waitForShutdown(
	logger *log.Logger,
	httpServer *http.Server,
	st store.Store,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete) // Ensure channel is closed when function exits

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Printf("INFO: Received signal: %s. Starting graceful shutdown...", receivedSignal)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	logger.Println("INFO: Attempting to gracefully shut down HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("WARN: HTTP server graceful shutdown failed: %v", err)
	} else {
		logger.Println("INFO: HTTP server gracefully shut down.")
	}

	if err := st.Close(); err != nil {
		logger.Printf("WARN: Error closing store: %v", err)
	}

	logger.Println("INFO: Graceful shutdown sequence completed.")
}
