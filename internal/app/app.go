package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Quino300923/frontera-backend/internal/auth"
	"github.com/Quino300923/frontera-backend/internal/cache"
	"github.com/Quino300923/frontera-backend/internal/catalog"
	"github.com/Quino300923/frontera-backend/internal/config"
	"github.com/Quino300923/frontera-backend/internal/content"
	"github.com/Quino300923/frontera-backend/internal/event"
	"github.com/Quino300923/frontera-backend/internal/flexxus"
	handler "github.com/Quino300923/frontera-backend/internal/handler/http"
	"github.com/Quino300923/frontera-backend/internal/overrides"
	"github.com/Quino300923/frontera-backend/internal/repository/postgres"
	"github.com/Quino300923/frontera-backend/internal/service"
	"github.com/Quino300923/frontera-backend/migrations"
	"github.com/Quino300923/frontera-backend/pkg/database"
	"github.com/Quino300923/frontera-backend/pkg/health"
	"github.com/Quino300923/frontera-backend/pkg/httpclient"
	pkgkafka "github.com/Quino300923/frontera-backend/pkg/kafka"
	"github.com/Quino300923/frontera-backend/pkg/middleware"
	"github.com/Quino300923/frontera-backend/pkg/tracing"
)

// App wires together all dependencies and runs the catalog backend.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing first so everything downstream picks up the global provider.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "frontera-backend",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	database.RegisterPoolMetrics(pool)
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Kafka producer for storefront domain events.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Flexxus upstream client behind a retrying HTTP client and a circuit
	// breaker. The breaker keeps a flapping Flexxus from holding requests
	// hostage; the client falls back to the disk snapshot either way.
	disk := cache.NewDisk(cfg.DataDir, logger)
	retryClient := httpclient.New(httpclient.DefaultConfig())
	breakerClient := httpclient.NewCircuitBreakerClient(
		retryClient,
		httpclient.DefaultCircuitBreakerConfig("flexxus"),
		logger,
	)
	flexClient := flexxus.NewClient(cfg.FlexxusBase, cfg.FlexxusToken, breakerClient, disk, logger)

	inventory := cache.NewInventory(cache.InventoryConfig{
		Disk:   disk,
		Fetch:  flexClient.Inventory,
		Logger: logger,
	})

	// Local JSON stores.
	overrideStore := overrides.NewStore(cfg.DataDir, logger)
	contentStore := content.NewStore(cfg.DataDir, logger)
	featured := content.NewFeatured(content.FeaturedConfig{
		DataDir:   cfg.DataDir,
		Store:     contentStore,
		Inventory: inventory,
		Overrides: overrideStore,
		Logger:    logger,
	})

	// Domain services.
	catalogService := catalog.NewService(inventory, overrideStore, logger)
	eventProducer := event.NewProducer(kafkaProducer, logger)
	appointmentService := service.NewAppointmentService(postgres.NewAppointmentRepository(pool), eventProducer, logger)
	subscriberService := service.NewSubscriberService(postgres.NewSubscriberRepository(pool), eventProducer, logger)
	authService := auth.NewService(
		postgres.NewAdminRepository(pool),
		auth.NewJWTManager(cfg.AdminJWTSecret),
		logger,
	)

	// Health checks. Flexxus is non-critical: the catalog serves from the
	// disk snapshot while the upstream is down, so readiness must not flap
	// with it.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
	})
	healthHandler.RegisterNonCritical("flexxus", flexClient.Ping)

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:      catalogService,
		Content:      contentStore,
		Featured:     featured,
		Appointments: appointmentService,
		Subscribers:  subscriberService,
		Auth:         authService,
		Overrides:    overrideStore,
		Inventory:    inventory,
		Health:       healthHandler,
		CORS: middleware.CORSConfig{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowCredentials: true,
			Environment:      cfg.Environment,
		},
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		producer:        kafkaProducer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: drain HTTP first, then flush
// events and traces, then release the database.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
