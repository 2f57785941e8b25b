package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labbench/backend/internal/domain/shared/valueobject"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "labbench:substance:"

// RedisSubstanceCatalog implements SubstanceCatalog using Redis, so molar masses
// entered on one bench are known to every instance sharing the server.
type RedisSubstanceCatalog struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	KeyPrefix   string
	DialTimeout time.Duration
}

// NewRedisSubstanceCatalog connects to Redis and verifies the connection
func NewRedisSubstanceCatalog(cfg RedisConfig) (*RedisSubstanceCatalog, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSubstanceCatalogWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisSubstanceCatalogWithClient creates a catalog with an existing Redis client
func NewRedisSubstanceCatalogWithClient(client *redis.Client, keyPrefix string) *RedisSubstanceCatalog {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisSubstanceCatalog{client: client, keyPrefix: keyPrefix}
}

func (c *RedisSubstanceCatalog) key(name string) string {
	return c.keyPrefix + catalogKey(name)
}

// Get returns the molar mass recorded for name
func (c *RedisSubstanceCatalog) Get(ctx context.Context, name string) (valueobject.Quantity, bool, error) {
	data, err := c.client.Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return valueobject.Quantity{}, false, nil
	}
	if err != nil {
		return valueobject.Quantity{}, false, fmt.Errorf("failed to read substance %s: %w", name, err)
	}
	q, err := valueobject.ParseQuantityFromJSON(data)
	if err != nil {
		return valueobject.Quantity{}, false, err
	}
	return q, true, nil
}

// Set records the molar mass of name without expiry
func (c *RedisSubstanceCatalog) Set(ctx context.Context, name string, molarMass valueobject.Quantity) error {
	data, err := molarMass.MarshalJSON()
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store substance %s: %w", name, err)
	}
	return nil
}

// Delete forgets name
func (c *RedisSubstanceCatalog) Delete(ctx context.Context, name string) error {
	return c.client.Del(ctx, c.key(name)).Err()
}

// Ping checks the Redis connection
func (c *RedisSubstanceCatalog) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisSubstanceCatalog) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client
func (c *RedisSubstanceCatalog) GetClient() *redis.Client {
	return c.client
}

var _ SubstanceCatalog = (*RedisSubstanceCatalog)(nil)
