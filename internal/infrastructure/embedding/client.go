package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client calls an OpenAI-compatible /embeddings endpoint. Ollama's
// native shape is accepted as a fallback so local models work without a
// compatibility proxy.
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient creates an embedding client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Embedding.BaseURL).
		SetTimeout(cfg.Embedding.Timeout)

	if cfg.Embedding.APIKey != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Embedding.APIKey))
	}

	return &Client{
		config: cfg,
		client: client,
	}
}

// Embed returns the vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	req := map[string]interface{}{
		"model": c.config.Embedding.Model,
		"input": text,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/embeddings")
	if err != nil {
		return nil, fmt.Errorf("failed to send embedding request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
		// Ollama native shape
		Embedding []float32 `json:"embedding"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse embedding response: %w", err)
	}

	var vector []float32
	switch {
	case len(result.Data) > 0 && len(result.Data[0].Embedding) > 0:
		vector = result.Data[0].Embedding
	case len(result.Embedding) > 0:
		vector = result.Embedding
	default:
		return nil, fmt.Errorf("embedding response contains no vector")
	}

	common.LogDebug("embedding computed",
		zap.String("model", c.config.Embedding.Model),
		zap.Int("dimensions", len(vector)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return vector, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
