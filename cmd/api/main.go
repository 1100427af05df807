package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clinicdesk/backend/internal/adapters/database"
	"github.com/clinicdesk/backend/internal/adapters/events"
	"github.com/clinicdesk/backend/internal/adapters/providers/astronomy"
	"github.com/clinicdesk/backend/internal/adapters/storage"
	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/api/routes"
	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/postgres"
	redisclient "github.com/clinicdesk/backend/internal/infrastructure/clients/redis"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	"github.com/clinicdesk/backend/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var metrics *observability.Metrics
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()

			metrics, err = observability.InitMetrics()
			if err != nil {
				log.Fatalf("Failed to initialize metrics: %v", err)
			}
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client; the application can run without it on the
	// file storage driver.
	var redisClient *redisclient.Client
	if cfg.Storage.Driver == "redis" {
		redisClient, err = redisclient.NewClient(&cfg.Redis)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis client: %v. Falling back to file storage", err)
		} else {
			defer redisClient.Close()
			log.Println("Redis client initialized successfully")
		}
	}

	// Key-value backend for the appointment collection and sessions
	var kv providers.KeyValueStore
	if redisClient != nil {
		kv = storage.NewRedisStore(redisClient)
	} else {
		kv = storage.NewFileStore(cfg.Storage.DataDir)
		log.Printf("Using file storage in %s", cfg.Storage.DataDir)
	}

	collectionStore := storage.NewCollectionStore(kv)
	collectionStore.Load(ctx)
	sessionStore := storage.NewSessionStore(kv)

	// Event bus piggybacks on Redis; without it the SSE stream is disabled.
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		defer eventBus.Close()
	}

	// Adapters and services
	pictureProvider := astronomy.NewProvider(&cfg.Astronomy)
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)

	enrichmentService := services.NewEnrichmentService(pictureProvider, metrics)
	appointmentService := services.NewAppointmentService(collectionStore, enrichmentService, eventBus)
	pictureService := services.NewPictureService(pictureProvider, collectionStore)
	doctorService := services.NewDoctorService(doctorAdapter)
	authService := services.NewAuthService(userAdapter, sessionStore,
		time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)

	// Handlers
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, pictureService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	authHandler := handlers.NewAuthHandler(authService)
	pictureHandler := handlers.NewPictureHandler(pictureService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	router := routes.NewRouter(
		appointmentHandler,
		doctorHandler,
		authHandler,
		pictureHandler,
		sseHandler,
		authService,
		metrics,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
