package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testClient(baseURL string) *Client {
	c := NewClient(&config.Config{
		OpenRouter: config.OpenRouterConfig{
			APIKey:    "test-key",
			MaxTokens: 256,
			Timeout:   5 * time.Second,
		},
	})
	c.client.SetBaseURL(baseURL)
	return c
}

func TestGenerateReturnsContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "{\"ingredients\": []}"}}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Generate(context.Background(), "extract this", "model-a")
	require.NoError(t, err)
	assert.Equal(t, `{"ingredients": []}`, got)
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "extract", "model-a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "extract", "model-a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
