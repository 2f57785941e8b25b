package main

import (
	"context"
	"fmt"

	"github.com/labbench/backend/internal/application/dilution"
	"github.com/labbench/backend/internal/infrastructure/cache"
	"github.com/labbench/backend/internal/infrastructure/config"
	"github.com/labbench/backend/internal/infrastructure/event"
	"github.com/labbench/backend/internal/infrastructure/logger"
	"github.com/labbench/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// bench is the wired application shared by every subcommand
type bench struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *persistence.Database
	catalog cache.SubstanceCatalog
	bus     *event.InMemoryEventBus
	service *dilution.Service
}

// openBench loads configuration and wires logger, storage, catalog, event bus and service.
// Interactive commands keep stdout for results, so their logs go to stderr.
func openBench(ctx context.Context, opts *globalOpts, interactive bool) (*bench, error) {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return nil, err
	}
	if interactive && cfg.Log.Output == "stdout" {
		cfg.Log.Output = "stderr"
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	b := &bench{cfg: cfg, log: log}

	b.db, err = persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		b.Close(ctx)
		return nil, fmt.Errorf("failed to open notebook database: %w", err)
	}
	if err := b.db.AutoMigrate(); err != nil {
		b.Close(ctx)
		return nil, fmt.Errorf("failed to migrate notebook database: %w", err)
	}

	b.catalog, err = cache.NewSubstanceCatalogFactory(cfg.Redis, cache.WithLogger(log)).CreateCatalog()
	if err != nil {
		b.Close(ctx)
		return nil, err
	}

	b.bus = event.NewInMemoryEventBus(log)
	b.bus.Subscribe(dilution.NewBenchLogHandler(log))
	if err := b.bus.Start(ctx); err != nil {
		b.Close(ctx)
		return nil, err
	}

	b.service = dilution.NewService(
		persistence.NewGormEntryRepository(b.db.DB),
		b.catalog,
		dilution.WithPublisher(b.bus),
		dilution.WithTolerances(cfg.Tolerances()),
		dilution.WithLogger(log),
	)

	log.Debug("bench ready",
		zap.String("database", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)
	return b, nil
}

// Close releases everything openBench acquired, in reverse order
func (b *bench) Close(ctx context.Context) {
	if b.bus != nil {
		_ = b.bus.Stop(ctx)
	}
	if b.catalog != nil {
		if err := b.catalog.Close(); err != nil {
			b.log.Warn("failed to close substance catalog", zap.Error(err))
		}
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			b.log.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = b.log.Sync()
}
