package cache

import (
	"context"
	"fmt"
	"time"

	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service is the redis cache backend. Entries share the same key scheme
// as the in-memory backend so the two are interchangeable.
type Service struct {
	config *config.Config
	client *redis.Client
}

// NewService connects to redis and verifies the connection with a ping.
func NewService(cfg *config.Config) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Cache.RedisAddr, err)
	}

	common.LogInfo("redis cache initialized",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	return &Service{
		config: cfg,
		client: client,
	}, nil
}

// Get returns the cached response for a model/prompt pair.
func (s *Service) Get(ctx context.Context, model, prompt string) (string, error) {
	key := generateKey(model, prompt)

	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		common.LogCacheMiss("redis", key)
		return "", common.ErrCacheDisabled
	}
	if err != nil {
		common.LogError("redis get failed", zap.Error(err), zap.String("key", key))
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	common.LogCacheHit("redis", key)
	return value, nil
}

// Set stores a response with the configured TTL.
func (s *Service) Set(ctx context.Context, model, prompt, value string) error {
	key := generateKey(model, prompt)

	if err := s.client.Set(ctx, key, value, s.config.Cache.TTL).Err(); err != nil {
		common.LogError("redis set failed", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
