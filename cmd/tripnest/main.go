package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tripnest/internal/app/commands"
	adminapp "tripnest/internal/app/handlers/admin"
	bookingapp "tripnest/internal/app/handlers/booking"
	meapp "tripnest/internal/app/handlers/me"
	appmiddleware "tripnest/internal/app/middleware"
	appoutbox "tripnest/internal/app/outbox"
	"tripnest/internal/app/queries"
	"tripnest/internal/app/uow"
	domainpricing "tripnest/internal/domain/pricing"
	"tripnest/internal/infra/broker/kafka"
	"tripnest/internal/infra/config"
	mongodb "tripnest/internal/infra/db/mongo"
	ginserver "tripnest/internal/infra/http/gin"
	"tripnest/internal/infra/obs"
	infraoutbox "tripnest/internal/infra/outbox"
	"tripnest/internal/infra/security"
	"tripnest/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *infraoutbox.Worker
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	cleanup := func() {}

	var (
		factory uow.Factory
		box     appoutbox.Outbox
		idStore appmiddleware.IdempotencyStore
		worker  *infraoutbox.Worker
		ready   = func() error { return nil }
	)

	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, cleanup, err
		}
		producer = p
		cleanup = func() { _ = p.Close() }
	}

	switch cfg.StorageMode {
	case config.StorageMongo:
		client, err := mongodb.New(mongodb.Options{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDB,
			AppName:        "tripnest-" + cfg.Env,
			ConnectTimeout: cfg.MongoConnectTimeout,
		})
		if err != nil {
			return application{}, cleanup, err
		}
		prev := cleanup
		cleanup = func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(disconnectCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
			prev()
		}
		listingsRepo := mongodb.NewListingRepository(client.DB)
		bookingsRepo := mongodb.NewBookingRepository(client.DB)
		factory = mongodb.Factory{DB: client.DB, ListingsRepo: listingsRepo, BookingsRepo: bookingsRepo}
		idStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		store := infraoutbox.NewStore(client.DB)
		box = store
		if producer != nil {
			worker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		}
		ready = func() error { return client.Ping(context.Background()) }
	default:
		listingsRepo := memory.NewListingRepository()
		bookingsRepo := memory.NewBookingRepository()
		factory = memory.Factory{ListingsRepo: listingsRepo, BookingsRepo: bookingsRepo}
		idStore = memory.NewIdempotencyStore()
		memBox := memory.NewOutbox()
		if producer != nil {
			p := producer
			prefix := cfg.KafkaTopicPrefix
			memBox.Publish = func(ctx context.Context, rec appoutbox.EventRecord) error {
				return p.Publish(ctx, prefix+"booking.events.v1", rec.Aggregate, rec.Payload, rec.Headers)
			}
		}
		box = memBox

		if err := seedListings(ctx, listingsRepo, os.Getenv("LISTING_FIXTURES"), logger); err != nil {
			logger.Warn("listing fixtures load failed", "error", err)
		}
	}

	locks := bookingapp.NewListingLocks()
	pricing := domainpricing.NightlyCalculator{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ReserveBookingCommand{}.Key(), &bookingapp.ReserveBookingHandler{
		UoWFactory:     factory,
		Pricing:        pricing,
		Outbox:         box,
		Locks:          locks,
		MaxGuests:      cfg.MaxGuests,
		AllowPastDates: cfg.AllowPastDates,
		Logger:         logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.ApproveBookingCommand{}.Key(), &bookingapp.ApproveBookingHandler{
		UoWFactory: factory,
		Outbox:     box,
		Logger:     logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.RejectBookingCommand{}.Key(), &bookingapp.RejectBookingHandler{
		UoWFactory: factory,
		Outbox:     box,
		Logger:     logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingCommand{}.Key(), &bookingapp.CancelBookingHandler{
		UoWFactory: factory,
		Outbox:     box,
		Logger:     logger,
	})

	wrappedCommands := appmiddleware.ChainCommands(commandBus,
		appmiddleware.Idempotency(idStore, nil),
		appmiddleware.OutboxFlush(box),
	)

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.CheckAvailabilityQuery{}.Key(), &bookingapp.CheckAvailabilityHandler{
		UoWFactory: factory,
	})
	queries.RegisterHandler(queryBus, meapp.ListMyBookingsQuery{}.Key(), &meapp.ListMyBookingsHandler{
		UoWFactory: factory,
		Logger:     logger,
	})
	queries.RegisterHandler(queryBus, adminapp.ListAllBookingsQuery{}.Key(), &adminapp.ListAllBookingsHandler{
		UoWFactory: factory,
		Logger:     logger,
	})

	authMW := ginserver.AuthMiddleware{
		Tokens: security.TokenManager{Secret: []byte(cfg.JWTSecret)},
		Logger: logger,
	}

	handlers := ginserver.Handlers{
		Booking:        ginserver.BookingHandler{Commands: wrappedCommands, Queries: queryBus},
		Me:             ginserver.MeHandler{Queries: queryBus},
		Admin:          ginserver.AdminHandler{Queries: queryBus},
		AuthMiddleware: authMW.Handle,
	}

	return application{handlers: handlers, worker: worker, ready: ready}, cleanup, nil
}
