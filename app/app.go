package app

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"eventtickets/artifact"
	"eventtickets/booking"
	"eventtickets/clock"
	dbLib "eventtickets/db"
	"eventtickets/http"
	"eventtickets/migration"
	"eventtickets/pubsub"
	"eventtickets/pubsub/event"
	"eventtickets/pubsub/outbox"
)

type Config struct {
	HTTPAddr      string
	SecureCookies bool
}

type App struct {
	db              *sqlx.DB
	watermillRouter *message.Router
	httpServer      *http.Server
	dataLake        dbLib.DataLake
	eventsHandler   event.Handler
	traceProvider   *tracesdk.TracerProvider
}

func New(
	config Config,
	db *sqlx.DB,
	redisClient *redis.Client,
	traceProvider *tracesdk.TracerProvider,
) App {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := pubsub.NewRedisPublisher(redisClient, watermillLogger)
	redisSubscriber := pubsub.NewRedisSubscriber(redisClient, watermillLogger)
	postgresSubscriber := outbox.NewPostgresSubscriber(db, watermillLogger)

	clk := clock.NewSystem()

	eventsRepo := dbLib.NewEventsPostgresRepository(db)
	ticketsRepo := dbLib.NewTicketsPostgresRepository(db)
	paymentsRepo := dbLib.NewPaymentsPostgresRepository(db)
	salesReadModel := dbLib.NewSalesReadModel(db)
	dataLake := dbLib.NewDataLake(db)

	bookingService := booking.NewService(
		dbLib.NewBookingStore(db),
		artifact.NewQREncoder(),
		clk,
	)

	eventsHandler := event.NewHandler(paymentsRepo, clk)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)

	watermillRouter, err := pubsub.NewWatermillRouter(
		postgresSubscriber,
		redisPublisher,
		redisSubscriber,
		eventProcessorConfig,
		eventsHandler.Handlers(),
		dataLake,
		watermillLogger,
	)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(
		http.ServerConfig{
			Addr:          config.HTTPAddr,
			SecureCookies: config.SecureCookies,
		},
		eventsRepo,
		ticketsRepo,
		paymentsRepo,
		salesReadModel,
		bookingService,
	)

	return App{
		db:              db,
		watermillRouter: watermillRouter,
		httpServer:      httpServer,
		dataLake:        dataLake,
		eventsHandler:   eventsHandler,
		traceProvider:   traceProvider,
	}
}

func (a App) Run(ctx context.Context) error {
	if err := dbLib.InitializeDatabaseSchema(a.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	watermillLogger := log.NewWatermill(log.FromContext(ctx))
	if err := outbox.InitializeSchema(a.db, watermillLogger); err != nil {
		return fmt.Errorf("failed to initialize outbox schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := migration.MigratePayments(ctx, a.dataLake, a.eventsHandler.RecordPaymentHandler())
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to migrate payments")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.traceProvider.Shutdown(context.Background())
	})

	g.Go(func() error {
		return a.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// the HTTP server starts after the router, so the app isn't healthy before it can process messages
		<-a.watermillRouter.Running()

		return a.httpServer.Run(ctx)
	})

	return g.Wait()
}
