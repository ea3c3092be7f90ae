package service

import (
	"context"

	"recipe-search/internal/core/ai/cache"
	"recipe-search/internal/core/ai/openrouter"
	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"go.uber.org/zap"
)

// Service fronts the OpenRouter client with the response cache. A nil
// cache store degrades to pass-through generation.
type Service struct {
	config *config.Config
	client *openrouter.Client
	cache  cache.Store
}

// NewService creates the AI service.
func NewService(cfg *config.Config, client *openrouter.Client, store cache.Store) *Service {
	return &Service{
		config: cfg,
		client: client,
		cache:  store,
	}
}

// Generate returns the model response for a prompt, serving repeated
// prompts from cache. Cache failures are logged and never surface to
// the caller.
func (s *Service) Generate(ctx context.Context, prompt, model string) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, model, prompt); err == nil {
			return cached, nil
		}
	}

	content, err := s.client.Generate(ctx, prompt, model)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, model, prompt, content); err != nil {
			common.LogWarn("failed to cache AI response",
				zap.String("model", model),
				zap.Error(err),
			)
		}
	}

	return content, nil
}

// Close releases the cache and client resources.
func (s *Service) Close() error {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			common.LogWarn("failed to close cache", zap.Error(err))
		}
	}
	return s.client.Close()
}
