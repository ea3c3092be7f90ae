package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-search/internal/core/search"
	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client talks to Qdrant over its REST API. Only the query path is
// used at runtime; ingestion happens out of band.
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient creates a Qdrant client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Qdrant.URL).
		SetTimeout(cfg.Qdrant.Timeout)

	if cfg.Qdrant.APIKey != "" {
		client.SetHeader("api-key", cfg.Qdrant.APIKey)
	}

	return &Client{
		config: cfg,
		client: client,
	}
}

type queryResponse struct {
	Result struct {
		Points []struct {
			// point IDs are unsigned integers or UUID strings
			ID      json.RawMessage  `json:"id"`
			Score   float64          `json:"score"`
			Payload common.RawRecord `json:"payload"`
		} `json:"points"`
	} `json:"result"`
}

// Search returns the nearest stored points for a vector, best score
// first, with payloads decoded.
func (c *Client) Search(ctx context.Context, vector []float32, limit int) ([]search.ScoredPoint, error) {
	req := map[string]interface{}{
		"query":        vector,
		"limit":        limit,
		"with_payload": true,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/collections/%s/points/query", c.config.Qdrant.Collection))
	if err != nil {
		return nil, fmt.Errorf("failed to send qdrant query: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("qdrant returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result queryResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse qdrant response: %w", err)
	}

	points := make([]search.ScoredPoint, 0, len(result.Result.Points))
	for _, p := range result.Result.Points {
		points = append(points, search.ScoredPoint{
			ID:      strings.Trim(string(p.ID), `"`),
			Score:   p.Score,
			Payload: p.Payload,
		})
	}

	common.LogDebug("qdrant query completed",
		zap.String("collection", c.config.Qdrant.Collection),
		zap.Int("points", len(points)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return points, nil
}

// Healthy pings the collection so readiness probes can surface a broken
// vector store.
func (c *Client) Healthy(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/collections/%s", c.config.Qdrant.Collection))
	if err != nil {
		return fmt.Errorf("failed to reach qdrant: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("qdrant returned status %d", resp.StatusCode())
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
