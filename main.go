package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/analytics"
	analytics_api "github.com/abdul-aleem23/AnalyticsCo-backend/internal/analytics/api"
	analytics_db "github.com/abdul-aleem23/AnalyticsCo-backend/internal/analytics/db"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/auth"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/auth/auth_api"
	auth_db "github.com/abdul-aleem23/AnalyticsCo-backend/internal/auth/db"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/campaigns"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/campaigns/campaign_api"
	campaign_db "github.com/abdul-aleem23/AnalyticsCo-backend/internal/campaigns/db"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/config"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/database/migrations"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/logger"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/privacy"
	privacy_db "github.com/abdul-aleem23/AnalyticsCo-backend/internal/privacy/db"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/privacy/privacy_api"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/qr"
	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/scans"
	scan_db "github.com/abdul-aleem23/AnalyticsCo-backend/internal/scans/db"
)

func connectDatabase(cfg *config.Config, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting QR analytics service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectDatabase(cfg, log)
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions(), log)
	if err := runner.MigrateUp(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
	}

	// Wire storage layers.
	campaignDB := &campaign_db.DB{Bun: bunDB}
	scanDB := &scan_db.DB{Bun: bunDB}
	analyticsDB := analytics_db.NewDB(bunDB)
	adminDB := &auth_db.DB{Bun: bunDB}
	privacyDB := &privacy_db.DB{Bun: bunDB}

	// Wire services. Scan recording uses the no-op geo resolver; passing nil
	// keeps city and country empty until a real resolver exists.
	campaignService := campaigns.NewCampaignService(campaignDB, analyticsDB)
	scanService := scans.NewScanService(scanDB, campaignDB, nil)
	analyticsService := analytics.NewService(analyticsDB, campaignDB, log)
	authService := auth.NewAuthService(adminDB, &cfg.Auth, log)
	privacyService := privacy.NewPrivacyService(privacyDB)
	qrGenerator := qr.NewGenerator(cfg.App.BaseURL)

	if err := authService.EnsureAdmin(ctx); err != nil {
		log.Fatal("AUTH", fmt.Sprintf("Failed to ensure admin account: %v", err))
	}

	publicHandler := analytics_api.NewHandler(analyticsService, scanService, campaignService, log)
	adminHandler := campaign_api.NewHandler(campaignService, analyticsService, qrGenerator, log)
	authHandler := auth_api.NewHandler(authService, log)
	privacyHandler := privacy_api.NewHandler(privacyService, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes ---
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"service":"qr-analytics","status":"running"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	publicHandler.RegisterRoutes(r)
	privacyHandler.RegisterPublicRoutes(r)
	authHandler.RegisterPublicRoutes(r)
	log.Info("ROUTER", "Public scan, validate, stats and privacy endpoints registered")

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.SecretKey))
		log.Info("AUTH", "JWT middleware applied to admin routes")

		r.Route("/admin", func(r chi.Router) {
			authHandler.RegisterProtectedRoutes(r)
			adminHandler.RegisterRoutes(r)
			privacyHandler.RegisterAdminRoutes(r)
		})
		log.Info("ROUTER", "Admin routes registered under /admin")
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("QR analytics service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "QR analytics service shutdown complete")
	}
}
