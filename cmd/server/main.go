package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guber-mobility/service-trips/internal/application"
	"github.com/guber-mobility/service-trips/internal/clients/geocoding"
	"github.com/guber-mobility/service-trips/internal/clients/routing"
	"github.com/guber-mobility/service-trips/internal/config"
	"github.com/guber-mobility/service-trips/internal/domain/tracking"
	"github.com/guber-mobility/service-trips/internal/domain/trip"
	"github.com/guber-mobility/service-trips/internal/events"
	"github.com/guber-mobility/service-trips/internal/handler"
	"github.com/guber-mobility/service-trips/internal/logger"
	"github.com/guber-mobility/service-trips/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-trips")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-trips",
		zap.String("port", cfg.Port),
		zap.String("geocoding_base_url", cfg.Geocoding.BaseURL),
		zap.String("routing_base_url", cfg.Routing.BaseURL),
	)

	// Initialize provider clients
	geocoder := geocoding.NewClient(geocoding.Config{
		BaseURL:       cfg.Geocoding.BaseURL,
		UserAgent:     cfg.Geocoding.UserAgent,
		Timeout:       time.Duration(cfg.Geocoding.TimeoutSeconds) * time.Second,
		MaxAttempts:   cfg.Retry.MaxAttempts,
		RetryInterval: cfg.Retry.RetryInterval(),
	}, log)

	router := routing.NewClient(routing.Config{
		BaseURL:       cfg.Routing.BaseURL,
		Timeout:       time.Duration(cfg.Routing.TimeoutSeconds) * time.Second,
		MaxAttempts:   cfg.Retry.MaxAttempts,
		RetryInterval: cfg.Retry.RetryInterval(),
	}, log)

	// Initialize fare calculator
	fareCalc := trip.NewFareCalculator(trip.FareConfig{
		BaseFare:       cfg.Fare.BaseFare,
		PerKm:          cfg.Fare.PerKm,
		LargeSurcharge: cfg.Fare.LargeSurcharge,
		PetFee:         cfg.Fare.PetFee,
	})

	// Initialize Kafka producer when enabled
	var publisher application.EventPublisher
	if cfg.Kafka.Enabled {
		producer := events.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	// Initialize application services
	estimateService := application.NewEstimateService(geocoder, router, fareCalc, log)
	fareService := application.NewFareService(fareCalc, log)
	trackingService := application.NewTrackingService(tracking.NewStore(), publisher, log)

	// Initialize HTTP handlers
	estimateHandler := handler.NewEstimateHandler(estimateService)
	fareHandler := handler.NewFareHandler(fareService)
	trackingHandler := handler.NewTrackingHandler(trackingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Apply global middleware
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.LoggerMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware(cfg.AllowOrigins))
	engine.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler("service-trips")
	healthHandler.RegisterRoutes(engine)

	// Register routes
	estimateHandler.RegisterRoutes(&engine.RouterGroup)
	fareHandler.RegisterRoutes(&engine.RouterGroup)
	trackingHandler.RegisterRoutes(&engine.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-trips...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-trips stopped")
}
