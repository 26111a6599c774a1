package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/internal/config"
	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/internal/domain/festival"
	travelEvents "github.com/monastery360/service-travel/internal/events"
	"github.com/monastery360/service-travel/internal/gemini"
	"github.com/monastery360/service-travel/internal/geocoding"
	"github.com/monastery360/service-travel/internal/handler"
	"github.com/monastery360/service-travel/internal/repository"
	"github.com/monastery360/service-travel/internal/routing"
	"github.com/monastery360/service-travel/internal/spreadsheet"
	"github.com/monastery360/service-travel/migrations"
	"github.com/monastery360/service-travel/pkg/database"
	"github.com/monastery360/service-travel/pkg/health"
	"github.com/monastery360/service-travel/pkg/kafka"
	"github.com/monastery360/service-travel/pkg/logger"
	"github.com/monastery360/service-travel/pkg/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "service-travel"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.AppEnv, serviceName, logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database; the festival mirror is optional
	var db *gorm.DB
	var festivalMirror festival.Repository
	if cfg.DBConfig.Enabled() {
		db, err = database.Connect(cfg.DBConfig, log)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("failed to get sql.DB", zap.Error(err))
		}
		if err := database.RunMigrations(ctx, sqlDB, migrations.FS, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		festivalMirror = repository.NewGormFestivalRepository(db)
	} else {
		log.Info("DB_HOST not set, festival mirror disabled")
	}

	// Connect to Redis for shared rate limits
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	var eventPublisher travelEvents.EventPublisher
	if cfg.KafkaConfig.Enabled() {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		eventPublisher = kafkaProducer
	} else {
		log.Info("KAFKA_BROKERS not set, booking events disabled")
	}
	bookingPublisher := travelEvents.NewBookingPublisher(eventPublisher, cfg.KafkaConfig.Topic, log)

	// Initialize upstream clients
	geocoder := geocoding.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.Timeout)
	routeClient := routing.NewClient(cfg.Routing.BaseURL, cfg.Routing.Timeout)

	var generator application.TextGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal("failed to create gemini client", zap.Error(err))
		}
		generator = client
	} else {
		log.Warn("GEMINI_API_KEY is not configured, assistant endpoints will fail")
	}

	// Initialize application services
	clock := application.SystemClock()
	locationService := application.NewLocationService(geocoder, log)
	routeService := application.NewRouteService(routeClient, log)
	travelService := application.NewTravelService(
		repository.NewMemorySessionRepository(),
		routeService,
		bookingDomain.NewTierPricingStrategy(),
		bookingPublisher,
		clock,
		log,
	)
	festivalService := application.NewFestivalService(
		spreadsheet.NewFestivalSheet(cfg.FestivalsSheet),
		festivalMirror,
		clock,
		log,
	)
	assistantService := application.NewAssistantService(generator, log)
	monasteryService := application.NewMonasteryService()

	// Mirror the festival sheet and keep it fresh from Kafka notifications
	if festivalMirror != nil {
		if _, err := festivalService.Sync(ctx); err != nil {
			log.Warn("initial festival sync skipped", zap.Error(err))
		}
		if cfg.KafkaConfig.Enabled() {
			festivalConsumer := travelEvents.NewFestivalEventConsumer(
				kafka.NewConsumer(cfg.KafkaConfig.Brokers, serviceName+"-festivals", travelEvents.TopicFestivalEvents, log),
				festivalService,
				log,
			)
			defer func() { _ = festivalConsumer.Close() }()

			go func() {
				log.Info("starting festival event consumer")
				if err := festivalConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("festival event consumer error", zap.Error(err))
				}
			}()
		}
	}

	// Sweep idle wizard sessions
	go travelService.RunJanitor(ctx, cfg.SessionTTL, cfg.SweepInterval)

	// Rate limit the generative endpoints
	limiterStore, err := middleware.NewLimiterStore(rdb, "assistant")
	if err != nil {
		log.Fatal("failed to create rate limiter store", zap.Error(err))
	}
	assistantLimit, err := middleware.RateLimit(limiterStore, cfg.ChatRateLimit)
	if err != nil {
		log.Fatal("invalid CHAT_RATE_LIMIT", zap.Error(err))
	}

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	// Apply global middleware
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.LoggerMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	engine.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(engine)

	// Register routes
	api := &engine.RouterGroup
	handler.NewLocationHandler(locationService).RegisterRoutes(api)
	handler.NewRouteHandler(routeService).RegisterRoutes(api)
	handler.NewSessionHandler(travelService).RegisterRoutes(api)
	handler.NewTransportHandler(travelService).RegisterRoutes(api)
	handler.NewFestivalHandler(festivalService).RegisterRoutes(api)
	handler.NewAssistantHandler(assistantService, cfg.IsDevelopment()).RegisterRoutes(api, assistantLimit)
	handler.NewMonasteryHandler(monasteryService).RegisterRoutes(api)

	// Register admin routes only when an operator token is configured
	if cfg.AdminToken != "" {
		handler.NewAdminHandler(travelService, festivalService).RegisterRoutes(api, cfg.AdminToken)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Stop the consumer and the janitor
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
