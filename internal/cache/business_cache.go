package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/config"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

const businessKeyPrefix = "hotel:business:"

// BusinessLoader reads a business from the source of truth
type BusinessLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
}

// BusinessCache is a read-through cache of business rows.
// Only the business record is cached, never derived room status.
type BusinessCache struct {
	client *redis.Client
	loader BusinessLoader
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisClient creates the Redis client; it returns nil when no address is configured
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewBusinessCache creates the cache. A nil client turns it into a pass-through to loader.
func NewBusinessCache(client *redis.Client, loader BusinessLoader, ttl time.Duration, logger *logrus.Logger) *BusinessCache {
	return &BusinessCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		logger: logger,
	}
}

func businessKey(id uuid.UUID) string {
	return businessKeyPrefix + id.String()
}

// GetByID returns the business, from Redis when present. Redis failures are logged
// and the loader is used instead; loader errors are returned unchanged.
func (c *BusinessCache) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	if c.client == nil {
		return c.loader.GetByID(ctx, id)
	}

	key := businessKey(id)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var business models.Business
		if jsonErr := json.Unmarshal(raw, &business); jsonErr == nil {
			return &business, nil
		}
		c.logger.WithField("key", key).Warn("Discarding unreadable cached business")
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WithError(err).WithField("key", key).Warn("Business cache read failed, falling back to database")
	}

	business, err := c.loader.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(business); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("Business cache write failed")
		}
	}

	return business, nil
}

// Ping checks the Redis connection; a disabled cache is always healthy
func (c *BusinessCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
