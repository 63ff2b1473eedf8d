package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	orderserver "github.com/bookhaven/order-service/go"

	catalogclient "github.com/bookhaven/order-service/internal/clients/http/catalog"
	orderscatalog "github.com/bookhaven/order-service/internal/domains/orders/adapters/catalog"
	ordersevents "github.com/bookhaven/order-service/internal/domains/orders/adapters/events"
	orderskafka "github.com/bookhaven/order-service/internal/domains/orders/adapters/events/kafka"
	ordersmemory "github.com/bookhaven/order-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/bookhaven/order-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/bookhaven/order-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/bookhaven/order-service/internal/domains/orders/application"
	ordersports "github.com/bookhaven/order-service/internal/domains/orders/ports"
	platformobservability "github.com/bookhaven/order-service/internal/platform/observability"
	platformpostgres "github.com/bookhaven/order-service/internal/platform/postgres"
)

// Run boots the order HTTP API with observability, adapters, and the
// submission pipeline wired.
func Run(ctx context.Context) error {
	const serviceName = "order-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	client, err := catalogclient.NewClient(cfg.CatalogServiceURL, &http.Client{Timeout: 5 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to build catalog client: %w", err)
	}
	lookup := orderscatalog.NewLookup(client)

	repo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	publisher, closePublisher := buildEventPublisher(cfg, logger)
	defer closePublisher()

	coreService := ordersapp.NewService(lookup, repo,
		ordersapp.WithEventPublisher(publisher),
		ordersapp.WithLogger(logger),
	)
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	handlers := orderserver.ApiHandleFunctions{
		OrderAPI: orderserver.NewOrderAPI(orderService),
	}
	router := orderserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr), slog.String("catalog", cfg.CatalogServiceURL))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

func buildEventPublisher(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, order accepted events disabled")
		return ordersevents.NopPublisher{}, func() {}
	}
	publisher, err := orderskafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
	if err != nil {
		logger.Warn("failed to build kafka publisher, order accepted events disabled", slog.String("error", err.Error()))
		return ordersevents.NopPublisher{}, func() {}
	}
	logger.Info("order accepted events enabled", slog.String("topic", cfg.KafkaOrdersTopic))
	return publisher, func() { _ = publisher.Close() }
}
