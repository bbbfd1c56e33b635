package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vision360/backend/internal/adapters/cache"
	"github.com/vision360/backend/internal/adapters/memory"
	"github.com/vision360/backend/internal/api/handlers"
	"github.com/vision360/backend/internal/api/routes"
	"github.com/vision360/backend/internal/application/services"
	"github.com/vision360/backend/internal/domain/providers"
	"github.com/vision360/backend/internal/infrastructure/clients/gemini"
	"github.com/vision360/backend/internal/infrastructure/clients/groq"
	"github.com/vision360/backend/internal/infrastructure/clients/redis"
	"github.com/vision360/backend/internal/infrastructure/observability"
	"github.com/vision360/backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize Redis client
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// The service works without Redis, upstream responses just go uncached
		logger.Warn().Err(err).Msg("Failed to initialize Redis client; running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized successfully")
	}

	// Initialize upstream AI clients

	var sceneDescriber providers.SceneDescriber
	if cfg.Gemini.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set; scene description disabled")
	} else {
		geminiClient, err := gemini.NewClient(&cfg.Gemini, metrics)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			sceneDescriber = geminiClient
		}
	}

	var adviceGenerator providers.AdviceGenerator
	if cfg.Groq.APIKey == "" {
		logger.Warn().Msg("GROQ_API_KEY is not set; advice generation disabled")
	} else {
		groqClient, err := groq.NewClient(&cfg.Groq, metrics)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Groq client")
		} else {
			adviceGenerator = groqClient
		}
	}

	// Initialize services

	enrichmentService := services.NewEnrichmentService()
	adviceService := services.NewAdviceService()
	reservationService := services.NewReservationService(memory.NewReservationAdapter())

	profileService, err := services.NewProfileService(cfg.Profiles.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load profile catalog")
	}
	logger.Info().Strs("profiles", profileService.Names()).Msg("Profile catalog loaded")

	// Initialize handlers

	guidanceHandler := handlers.NewGuidanceHandler(enrichmentService, adviceService)
	describeHandler := handlers.NewDescribeHandler(sceneDescriber, adviceGenerator, profileService, cacheProvider, metrics)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	// Set up router

	router := routes.NewRouter(
		guidanceHandler,
		describeHandler,
		reservationHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // upstream AI calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	logger.Info().Msg("Server stopped")
}
