package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	reactionledger "galleria/contexts/gallery/reaction-ledger"
	gatewayadapter "galleria/contexts/gallery/reaction-ledger/adapters/gateway"
	postgresadapter "galleria/contexts/gallery/reaction-ledger/adapters/postgres"
	"galleria/contexts/gallery/reaction-ledger/application/workers"
	"galleria/internal/platform/config"
	"galleria/internal/platform/db"
	"galleria/internal/platform/gateway"
	"galleria/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres
	consumer workers.ReactionConsumer
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		_ = pg.Close()
		return nil, err
	}

	bus := gateway.NewBus(logger)
	module := reactionledger.NewModule(reactionledger.Dependencies{
		Items: repo,
		Votes: repo,
		Sink: gatewayadapter.Sink{
			Publisher: bus,
			IDGen:     postgresadapter.UUIDGenerator{},
			Clock:     postgresadapter.SystemClock{},
			Logger:    logger,
		},
		// The API process registers items posted by the external generation
		// routine; publish wiring (generator/poster) lives with the gateway
		// runtime and is absent here, so the publish endpoint answers 501
		// until that wiring lands.
		Clock:        postgresadapter.SystemClock{},
		IDGen:        postgresadapter.UUIDGenerator{},
		SelfIdentity: cfg.SelfIdentity,
		Logger:       logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		_ = pg.Close()
		return nil, err
	}

	// The bus is the attachment point for the chat-platform gateway bridge:
	// the bridge publishes reaction.added/reaction.removed into it and
	// consumes reaction.retract out of it. Until that bridge process exists
	// the worker's loop is inert; see DESIGN.md.
	bus := gateway.NewBus(logger)
	module := reactionledger.NewModule(reactionledger.Dependencies{
		Items: repo,
		Votes: repo,
		Sink: gatewayadapter.Sink{
			Publisher: bus,
			IDGen:     postgresadapter.UUIDGenerator{},
			Clock:     postgresadapter.SystemClock{},
			Logger:    logger,
		},
		Clock:        postgresadapter.SystemClock{},
		IDGen:        postgresadapter.UUIDGenerator{},
		SelfIdentity: cfg.SelfIdentity,
		Logger:       logger,
	})

	return &WorkerApp{
		postgres: pg,
		consumer: workers.ReactionConsumer{
			Subscriber:    bus,
			Ledger:        module.Ledger,
			ConsumerGroup: cfg.ReactionConsumerGroup,
			Gesture:       cfg.VoteGesture,
			Logger:        logger,
		},
		logger: logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.consumer.Start(ctx); err != nil {
		return err
	}
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	<-ctx.Done()
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
