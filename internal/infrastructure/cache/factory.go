package cache

import (
	"fmt"

	"github.com/labbench/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SubstanceCatalogFactory creates substance catalogs based on configuration
type SubstanceCatalogFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SubstanceCatalogFactoryOption is a functional option for configuring the factory
type SubstanceCatalogFactoryOption func(*SubstanceCatalogFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SubstanceCatalogFactoryOption {
	return func(f *SubstanceCatalogFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory catalog when Redis
// is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SubstanceCatalogFactoryOption {
	return func(f *SubstanceCatalogFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSubstanceCatalogFactory creates a new factory
func NewSubstanceCatalogFactory(cfg config.RedisConfig, opts ...SubstanceCatalogFactoryOption) *SubstanceCatalogFactory {
	f := &SubstanceCatalogFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCatalog creates a Redis-backed catalog
func (f *SubstanceCatalogFactory) CreateRedisCatalog() (*RedisSubstanceCatalog, error) {
	c, err := NewRedisSubstanceCatalog(RedisConfig{
		Addr:      f.redisConfig.Addr(),
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.redisConfig.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis substance catalog: %w", err)
	}
	return c, nil
}

// CreateCatalog returns a Redis catalog when Redis is enabled and reachable, otherwise
// an in-memory catalog if fallback is allowed.
func (f *SubstanceCatalogFactory) CreateCatalog() (SubstanceCatalog, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory substance catalog")
		return NewInMemorySubstanceCatalog(), nil
	}

	c, err := f.CreateRedisCatalog()
	if err == nil {
		f.logger.Info("using Redis substance catalog", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for substance catalog but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory substance catalog. "+
		"Molar masses will not be shared between instances.",
		zap.Error(err),
	)
	return NewInMemorySubstanceCatalog(), nil
}
