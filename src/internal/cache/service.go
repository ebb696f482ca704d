package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"classbook-svc/src/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Service is a JSON read-through cache over Redis. Domain services own
// their keys and TTLs; a cache miss is reported as found=false, not as an
// error.
type Service interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) Service {
	return &cacheService{client: client}
}

func (c *cacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", key).Debug("Cache miss")
			return false, nil
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get value from cache")
		return false, models.ErrRedisGet
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal cached value")
		return false, models.ErrRedisGet
	}

	logrus.WithField("key", key).Debug("Cache hit")
	return true, nil
}

func (c *cacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to marshal value for cache")
		return models.ErrRedisSet
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to cache value")
		return models.ErrRedisSet
	}

	logrus.WithField("key", key).Debug("Value cached")
	return nil
}

func (c *cacheService) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to delete cached value")
		return models.ErrRedisDel
	}
	return nil
}
