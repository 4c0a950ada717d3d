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

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/parking_booking/internal/adapter/cache"
	"github.com/srgjo27/parking_booking/internal/adapter/events"
	"github.com/srgjo27/parking_booking/internal/adapter/handler"
	"github.com/srgjo27/parking_booking/internal/adapter/identity"
	"github.com/srgjo27/parking_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/parking_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/srgjo27/parking_booking/internal/core/ports"
	"github.com/srgjo27/parking_booking/internal/core/services"
	"github.com/srgjo27/parking_booking/internal/platform/clock"
	"github.com/srgjo27/parking_booking/internal/platform/config"
	"github.com/srgjo27/parking_booking/internal/platform/database"
	"github.com/srgjo27/parking_booking/internal/platform/logger"
	"github.com/srgjo27/parking_booking/internal/platform/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg config.App, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(tctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	repos, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	slotCache, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	publisher, closeEvents := openEvents(cfg, log)
	defer closeEvents()

	collab := services.Collaborators{
		Identity: identity.ContextProvider{},
		Clock:    clock.System{},
		Cache:    slotCache,
		Events:   publisher,
		Logger:   log,
	}

	bookingService := services.NewBookingService(repos, collab, services.BookingPolicy{
		Window: domain.WindowPolicy{
			MinDuration:    cfg.MinBookingDuration,
			AllowPastStart: cfg.AllowPastStart,
		},
		RequireApproval: cfg.RequireApproval,
	})
	billingService := services.NewBillingService(repos, collab)
	slotService := services.NewSlotService(repos.Slots, slotCache, log)

	tokens := identity.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)

	router := handler.NewRouter(handler.Handlers{
		Bookings: handler.NewBookingHandler(bookingService),
		Billings: handler.NewBillingHandler(billingService, cfg.Currency),
		Slots:    handler.NewSlotHandler(slotService),
	}, tokens, log)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server startup failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(sctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exiting")
	return nil
}

func openStorage(ctx context.Context, cfg config.App, log *zap.Logger) (services.Repositories, func(), error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore()
		seedDemo(store, log)
		return services.Repositories{
			Tx:        store,
			Slots:     store.Slots(),
			Bookings:  store.Bookings(),
			Histories: store.Histories(),
			Billings:  store.Billings(),
		}, func() {}, nil
	}

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		DBName:       cfg.DBName,
		SSLMode:      cfg.DBSSLMode,
		MaxOpenConns: cfg.DBMaxOpenConns,
		Retries:      cfg.DBRetries,
	}, log)
	if err != nil {
		return services.Repositories{}, nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return services.Repositories{}, nil, err
	}

	return services.Repositories{
		Tx:        postgres.NewTxManager(db),
		Slots:     postgres.NewSlotRepository(db),
		Bookings:  postgres.NewBookingRepository(db),
		Histories: postgres.NewHistoryRepository(db),
		Billings:  postgres.NewBillingRepository(db),
	}, func() { db.Close() }, nil
}

// openCache returns a nil interface when Redis is unreachable; slot listings
// then go straight to storage.
func openCache(ctx context.Context, cfg config.App, log *zap.Logger) (ports.SlotCache, func()) {
	addr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
	log.Info("connecting to redis", zap.String("addr", addr))

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 0})

	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		log.Warn("redis unavailable, slot cache disabled", zap.Error(err))
		client.Close()
		return nil, func() {}
	}

	log.Info("redis connected")
	return cache.NewSlotCache(client, cfg.SlotCacheTTL), func() { client.Close() }
}

func openEvents(cfg config.App, log *zap.Logger) (ports.EventPublisher, func()) {
	if cfg.RabbitURL == "" {
		log.Info("RABBIT_URL not set, booking events disabled")
		return events.Noop{}, func() {}
	}

	publisher, err := events.NewPublisher(cfg.RabbitURL, cfg.EventsExchange)
	if err != nil {
		log.Warn("rabbitmq unavailable, booking events disabled", zap.Error(err))
		return events.Noop{}, func() {}
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Warn("closing event publisher", zap.Error(err))
		}
	}
}

// seedDemo fills the in-memory store with one location so a local run has
// slots to book.
func seedDemo(store *memory.Store, log *zap.Logger) {
	location := uuid.New()
	store.AddLocation(location, "Demo Garage")
	for _, number := range []string{"A1", "A2", "A3", "B1", "B2"} {
		store.AddSlot(domain.Slot{ID: uuid.New(), LocationID: location, SlotNumber: number, IsAvailable: true})
	}
	log.Info("seeded in-memory store", zap.Stringer("location_id", location))
}
