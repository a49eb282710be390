package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	activityservice "orderflow/contexts/commerce/activity-service"
	activityredis "orderflow/contexts/commerce/activity-service/adapters/redis"
	activityworkers "orderflow/contexts/commerce/activity-service/application/workers"
	activityports "orderflow/contexts/commerce/activity-service/ports"
	customerservice "orderflow/contexts/commerce/customer-service"
	customerpostgres "orderflow/contexts/commerce/customer-service/adapters/postgres"
	entityservice "orderflow/contexts/commerce/entity-service"
	entitypostgres "orderflow/contexts/commerce/entity-service/adapters/postgres"
	orderservice "orderflow/contexts/commerce/order-service"
	ordergrpc "orderflow/contexts/commerce/order-service/adapters/grpc"
	orderpostgres "orderflow/contexts/commerce/order-service/adapters/postgres"
	orderports "orderflow/contexts/commerce/order-service/ports"
	"orderflow/internal/platform/config"
	"orderflow/internal/platform/db"
	"orderflow/internal/platform/httpserver"
	"orderflow/internal/platform/messaging"
	"orderflow/internal/platform/rpc"
	"orderflow/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type eventBus interface {
	events.Bus
	events.Subscriber
	Close() error
}

type APIApp struct {
	httpServer    *httpserver.Server
	grpcServer    *rpc.Server
	router        *events.Router
	bus           eventBus
	consume       bool
	consumerGroup string
	publishers    []*events.AsyncPublisher
	closers       []func() error
	logger        *slog.Logger
}

type WorkerApp struct {
	httpServer    *httpserver.Server
	router        *events.Router
	bus           eventBus
	consumerGroup string
	closers       []func() error
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger().With("service", cfg.ServiceName, "process", "api")
	return NewAPI(cfg, logger)
}

// NewAPI wires every service against cfg. Memory adapters are used for
// whatever cfg leaves unconfigured.
func NewAPI(cfg config.Config, logger *slog.Logger) (app *APIApp, err error) {
	app = &APIApp{
		consume:       cfg.EnableActivityConsumer,
		consumerGroup: cfg.ConsumerGroup,
		logger:        logger,
	}
	defer func() {
		if err != nil {
			_ = app.Close()
			app = nil
		}
	}()

	app.bus, err = newBus(cfg, logger)
	if err != nil {
		return app, err
	}
	app.closers = append(app.closers, app.bus.Close)

	customerPublisher := app.newPublisher(cfg, "customer-service")
	orderPublisher := app.newPublisher(cfg, "order-service")
	entityPublisher := app.newPublisher(cfg, "entity-service")

	var customers customerservice.Module
	var orders orderservice.Module
	var entities entityservice.Module
	var directory orderports.CustomerDirectory

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return app, err
		}
		app.closers = append(app.closers, pg.Close)

		var models []any
		models = append(models, customerpostgres.Models()...)
		models = append(models, orderpostgres.Models()...)
		models = append(models, entitypostgres.Models()...)
		if err := pg.Migrate(context.Background(), models...); err != nil {
			return app, err
		}

		customers = customerservice.NewModule(customerservice.Dependencies{
			Customers:   customerpostgres.NewRepository(pg.DB, logger),
			Publisher:   customerPublisher,
			Clock:       customerpostgres.SystemClock{},
			IDGenerator: customerpostgres.UUIDGenerator{},
			Logger:      logger,
		})
		directory, err = app.customerDirectory(cfg, customers, logger)
		if err != nil {
			return app, err
		}
		orders = orderservice.NewModule(orderservice.Dependencies{
			Orders:      orderpostgres.NewRepository(pg.DB, logger),
			Customers:   directory,
			Publisher:   orderPublisher,
			Clock:       orderpostgres.SystemClock{},
			IDGenerator: orderpostgres.UUIDGenerator{},
			Logger:      logger,
		})
		entities = entityservice.NewModule(entityservice.Dependencies{
			Entities:    entitypostgres.NewRepository(pg.DB, logger),
			Publisher:   entityPublisher,
			Clock:       entitypostgres.SystemClock{},
			IDGenerator: entitypostgres.UUIDGenerator{},
			Logger:      logger,
		})
	} else {
		customers = customerservice.NewInMemoryModule(nil, customerPublisher, logger)
		directory, err = app.customerDirectory(cfg, customers, logger)
		if err != nil {
			return app, err
		}
		orders = orderservice.NewInMemoryModule(directory, orderPublisher, logger)
		entities = entityservice.NewInMemoryModule(entityPublisher, logger)
	}

	activity, router, closeActivity, err := buildActivity(cfg, logger)
	app.closers = append(app.closers, closeActivity)
	if err != nil {
		return app, err
	}
	app.router = router

	app.grpcServer = rpc.NewServer(normalizeAddr(cfg.GRPCPort, ":9090"), logger)
	customers.GRPC.Register(app.grpcServer.Registrar())

	modules := httpserver.Modules{
		Customers: &customers,
		Orders:    &orders,
		Entities:  &entities,
	}
	if app.consume {
		modules.Activity = &activity
	}
	app.httpServer = httpserver.New(modules, cfg.ServiceName, logger, normalizeAddr(cfg.HTTPPort, ":8080"))
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger().With("service", cfg.ServiceName, "process", "worker")
	return NewWorker(cfg, logger)
}

// NewWorker wires a consumer-only process: the activity subscriber behind the
// event router plus health and activity endpoints.
func NewWorker(cfg config.Config, logger *slog.Logger) (*WorkerApp, error) {
	if cfg.EventBus == config.BusMemory {
		logger.Warn("worker started on the in-process bus; it will only see events published by itself",
			"event", "bootstrap_worker_memory_bus",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	bus, err := newBus(cfg, logger)
	if err != nil {
		return nil, err
	}
	activity, router, closeActivity, err := buildActivity(cfg, logger)
	if err != nil {
		return nil, errors.Join(err, closeActivity(), bus.Close())
	}
	return &WorkerApp{
		httpServer:    httpserver.New(httpserver.Modules{Activity: &activity}, cfg.ServiceName, logger, normalizeAddr(cfg.HTTPPort, ":8081")),
		router:        router,
		bus:           bus,
		consumerGroup: cfg.ConsumerGroup,
		closers:       []func() error{bus.Close, closeActivity},
		logger:        logger,
	}, nil
}

// Start subscribes the router when the activity consumer is enabled. Run
// calls it; it is exported for callers that serve the handlers themselves.
func (a *APIApp) Start(ctx context.Context) error {
	if !a.consume {
		return nil
	}
	return a.router.Start(ctx, a.bus, a.consumerGroup)
}

func (a *APIApp) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := a.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.httpServer.Serve(gctx) })
	g.Go(func() error { return a.grpcServer.Serve(gctx) })
	a.httpServer.MarkStarted()

	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"activity_consumer", a.consume,
	)
	return g.Wait()
}

// HTTPHandler exposes the HTTP surface without listening.
func (a *APIApp) HTTPHandler() http.Handler {
	return a.httpServer.Handler()
}

// Close flushes in-flight publishes before releasing the bus and stores.
func (a *APIApp) Close() error {
	for _, publisher := range a.publishers {
		publisher.Flush()
	}
	return closeAll(a.closers)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := w.router.Start(ctx, w.bus, w.consumerGroup); err != nil {
		return err
	}
	w.httpServer.MarkStarted()
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"topics", w.router.Topics(),
	)
	return w.httpServer.Serve(ctx)
}

func (w *WorkerApp) Close() error {
	return closeAll(w.closers)
}

func (a *APIApp) newPublisher(cfg config.Config, source string) *events.AsyncPublisher {
	publisher := events.NewAsyncPublisher(events.Publisher{
		Bus:         a.bus,
		Source:      source,
		MaxAttempts: cfg.PublishMaxAttempts,
		Logger:      a.logger,
	}, cfg.PublishTimeout, a.logger)
	a.publishers = append(a.publishers, publisher)
	return publisher
}

func (a *APIApp) customerDirectory(
	cfg config.Config,
	customers customerservice.Module,
	logger *slog.Logger,
) (orderports.CustomerDirectory, error) {
	if strings.TrimSpace(cfg.CustomersGRPCAddr) == "" {
		return customerLookupDirectory{lookup: customers.Lookup}, nil
	}
	conn, err := rpc.Dial(cfg.CustomersGRPCAddr)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, conn.Close)
	return ordergrpc.NewCustomerDirectory(conn, cfg.DependencyTimeout, logger), nil
}

func newBus(cfg config.Config, logger *slog.Logger) (eventBus, error) {
	switch cfg.EventBus {
	case config.BusKafka:
		bus, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
		if err != nil {
			return nil, err
		}
		return bus, nil
	case config.BusMemory, "":
		return messaging.NewMemory(0, logger), nil
	default:
		return nil, fmt.Errorf("unsupported event bus %q", cfg.EventBus)
	}
}

func buildActivity(cfg config.Config, logger *slog.Logger) (activityservice.Module, *events.Router, func() error, error) {
	closeFn := func() error { return nil }

	var dedup activityports.EventDedupStore
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		client := activityredis.NewClient(addr)
		dedup = activityredis.NewDedupStore(client)
		closeFn = client.Close
	}
	activity := activityservice.NewInMemoryModule(dedup, logger)

	router, err := events.NewRouter(logger)
	if err != nil {
		return activityservice.Module{}, nil, closeFn, err
	}
	specs, err := loadSubscriptionSpecs(cfg.SubscriptionsFile)
	if err != nil {
		return activityservice.Module{}, nil, closeFn, err
	}
	if err := activity.Register(router, specs); err != nil {
		return activityservice.Module{}, nil, closeFn, err
	}
	return activity, router, closeFn, nil
}

// loadSubscriptionSpecs returns nil, meaning the defaults, when path is empty.
func loadSubscriptionSpecs(path string) ([]activityworkers.SubscriptionSpec, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	file, err := config.LoadSubscriptions(path)
	if err != nil {
		return nil, err
	}
	specs := make([]activityworkers.SubscriptionSpec, 0, len(file.Subscriptions))
	for _, entry := range file.Subscriptions {
		specs = append(specs, activityworkers.SubscriptionSpec{
			Topic:    entry.Topic,
			Filter:   entry.Filter,
			Priority: entry.Priority,
			Handler:  entry.Handler,
			Fallback: entry.Fallback,
		})
	}
	return specs, nil
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string, fallback string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, ":") || strings.Contains(value, ":") {
		return value
	}
	return ":" + value
}
