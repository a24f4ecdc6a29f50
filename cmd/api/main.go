package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-report-api/internal/config"
	"github.com/jwalitptl/clinic-report-api/internal/handler"
	"github.com/jwalitptl/clinic-report-api/internal/handler/prometheus"
	reportHandler "github.com/jwalitptl/clinic-report-api/internal/handler/report"
	"github.com/jwalitptl/clinic-report-api/internal/middleware"
	"github.com/jwalitptl/clinic-report-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-report-api/internal/router"
	reportService "github.com/jwalitptl/clinic-report-api/internal/service/report"
	"github.com/jwalitptl/clinic-report-api/pkg/auth"
	"github.com/jwalitptl/clinic-report-api/pkg/logger"
	"github.com/jwalitptl/clinic-report-api/pkg/metrics"
)

const metricsNamespace = "clinic"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(os.Getenv("CLINIC_CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		JSON:       cfg.Log.Format == "json",
	})
	log.Logger = appLogger.Zerolog()
	zerolog.DefaultContextLogger = &log.Logger

	location, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid report configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)
	medicalRecordRepo := postgres.NewMedicalRecordRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)

	// Metrics share one registry with the HTTP collectors
	promHandler := prometheus.New(metricsNamespace, nil)
	appMetrics := metrics.NewMetrics(metricsNamespace, promHandler.Registry())

	// Initialize services
	reportSvc := reportService.NewService(appointmentRepo, medicalRecordRepo, medicineRepo, appMetrics, appLogger, reportService.Options{
		Location:       location,
		MaxConcurrency: cfg.Report.MaxConcurrency,
	})

	// Initialize middleware
	var authMiddleware *middleware.AuthMiddleware
	if cfg.Auth.Enabled {
		jwtSvc, err := auth.NewJWTService(cfg.Auth.JWTSecret, "")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure authentication")
		}
		authMiddleware = middleware.NewAuthMiddleware(jwtSvc, cfg.Auth.AllowedRoles)
	}

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		handler.NewHandler(db),
		reportHandler.NewHandler(reportSvc),
		promHandler,
		router.RouterConfig{
			Mode:           cfg.Server.Mode,
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RateClientTTL:  cfg.RateLimit.ClientTTL,
			RateLimitOff:   !cfg.RateLimit.Enabled,
			CORSConfig:     middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins),
			RequestTimeout: cfg.Server.WriteTimeout,
			Logger:         &log.Logger,
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
