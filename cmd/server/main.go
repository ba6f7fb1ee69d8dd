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
	"github.com/turfmanager/service-booking/internal/application"
	"github.com/turfmanager/service-booking/internal/config"
	bookingDomain "github.com/turfmanager/service-booking/internal/domain/booking"
	"github.com/turfmanager/service-booking/internal/events"
	"github.com/turfmanager/service-booking/internal/handler"
	"github.com/turfmanager/service-booking/internal/health"
	"github.com/turfmanager/service-booking/internal/logger"
	"github.com/turfmanager/service-booking/internal/middleware"
	"github.com/turfmanager/service-booking/internal/notifier"
	"github.com/turfmanager/service-booking/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "service-turf-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-turf-booking",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&repository.BookingModel{}, &repository.RatesModel{}); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	ratesRepo := repository.NewGormRatesRepository(db)

	// Sheets forwarding: fire-and-forget, off the request path
	sheets := notifier.NewSheetsNotifier(log)
	dispatcher := notifier.NewAsyncDispatcher(sheets, log)
	defer dispatcher.Close()

	// An endpoint from the environment seeds the policy until an admin
	// saves one explicitly.
	if cfg.SheetsURL != "" {
		seedNotificationEndpoint(ratesRepo, cfg.SheetsURL, log)
	}

	// Event stream is optional; the service runs fine without brokers
	var publisher application.EventPublisher
	if cfg.Kafka.Enabled {
		producer := events.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
		log.Info("kafka event stream enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		ratesRepo,
		bookingDomain.NewStandardPricer(),
		dispatcher,
		publisher,
		log,
	)
	ratesService := application.NewRatesService(ratesRepo, publisher, log)

	// The facility timezone resolves "today" for the schedule view
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("invalid timezone, falling back to UTC",
			zap.String("timezone", cfg.Timezone),
			zap.Error(err),
		)
		loc = time.UTC
	}

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService, loc)
	adminHandler := handler.NewAdminHandler(ratesService, bookingService)

	// Setup Gin router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())

	healthHandler := health.NewHandler(db, "service-turf-booking")
	healthHandler.RegisterRoutes(router)

	bookingHandler.RegisterRoutes(&router.RouterGroup)
	adminHandler.RegisterRoutes(&router.RouterGroup)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

	log.Info("shutting down service-turf-booking...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-turf-booking stopped")
}

// seedNotificationEndpoint fills in the webhook endpoint from the environment
// when the stored rate policy has none.
func seedNotificationEndpoint(ratesRepo bookingDomain.RatesRepository, url string, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rates, err := ratesRepo.Load(ctx)
	if err != nil {
		log.Warn("failed to load rates for endpoint seeding", zap.Error(err))
		return
	}
	if rates.NotificationEndpoint != "" {
		return
	}

	rates.NotificationEndpoint = url
	if err := ratesRepo.Save(ctx, rates); err != nil {
		log.Warn("failed to seed notification endpoint", zap.Error(err))
		return
	}
	log.Info("notification endpoint seeded from environment")
}
