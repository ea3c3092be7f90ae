package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client is the OpenRouter chat-completions client. One client serves
// every candidate model; the model name is chosen per call so the
// assisted extractor can walk its retry list.
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient creates an OpenRouter client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-search.local").
		SetHeader("X-Title", "Recipe Search")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate sends one prompt to the given model and returns the raw text
// content of the first choice. No JSON validity is guaranteed by the
// model; callers must treat the content as free text.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	req := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens":  c.config.OpenRouter.MaxTokens,
		"temperature": 0.2,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		common.LogAICall(model, time.Since(start), err, "")
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode(), resp.String())
		common.LogAICall(model, time.Since(start), err, "")
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in OpenRouter response")
	}

	common.LogInfo("OpenRouter response received",
		zap.String("model", model),
		zap.Int("content_length", len(content)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return content, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
