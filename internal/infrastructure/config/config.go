package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Qdrant      QdrantConfig     `mapstructure:"qdrant"`
	Embedding   EmbeddingConfig  `mapstructure:"embedding"`
	OpenRouter  OpenRouterConfig `mapstructure:"openrouter"`
	Retrieval   RetrievalConfig  `mapstructure:"retrieval"`
	Cache       CacheConfig      `mapstructure:"cache"`
	Queue       QueueConfig      `mapstructure:"queue"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// QdrantConfig holds vector-store connection settings.
type QdrantConfig struct {
	URL        string        `mapstructure:"url"`
	APIKey     string        `mapstructure:"api_key"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// EmbeddingConfig holds embedding-service settings.
type EmbeddingConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OpenRouterConfig holds generative-model settings. Models lists the
// candidate model names the assisted extractor walks in order.
type OpenRouterConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	Models    []string      `mapstructure:"models"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RetrievalConfig holds retrieval-gate policy constants. The weak-score
// threshold and the top-hit-only assisted cutoff are fixed policy values
// kept configurable rather than adaptive.
type RetrievalConfig struct {
	TopK               int     `mapstructure:"top_k"`
	WeakScoreThreshold float64 `mapstructure:"weak_score_threshold"`
	AssistedTopHitOnly bool    `mapstructure:"assisted_top_hit_only"`
}

// CacheConfig holds AI response cache settings. Backend selects the
// in-memory store or redis.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// QueueConfig holds search worker pool settings.
type QueueConfig struct {
	Workers int `mapstructure:"workers"`
	MaxSize int `mapstructure:"max_size"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig reads configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	// .env is optional, environment variables alone are fine
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("qdrant.url", "QDRANT_URL")
	viper.BindEnv("qdrant.api_key", "QDRANT_API_KEY")
	viper.BindEnv("qdrant.collection", "QDRANT_COLLECTION")
	viper.BindEnv("embedding.base_url", "EMBEDDING_BASE_URL")
	viper.BindEnv("embedding.api_key", "EMBEDDING_API_KEY")
	viper.BindEnv("embedding.model", "EMBED_MODEL")
	viper.BindEnv("openrouter.enabled", "OPENROUTER_ENABLED")
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.models", "OPENROUTER_MODELS")
	viper.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("retrieval.top_k", "RETRIEVAL_TOP_K")
	viper.BindEnv("retrieval.weak_score_threshold", "RETRIEVAL_WEAK_SCORE_THRESHOLD")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger is not initialized yet, plain stdout is fine here
	fmt.Println("Loading configuration",
		"qdrant_url:", viper.GetString("qdrant.url"),
		"collection:", viper.GetString("qdrant.collection"),
		"openrouter_api_key:", maskAPIKey(viper.GetString("openrouter.api_key")),
	)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey shows only the first and last four characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-search")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("qdrant.url", "http://localhost:6333")
	viper.SetDefault("qdrant.collection", "recipes")
	viper.SetDefault("qdrant.timeout", "15s")

	viper.SetDefault("embedding.base_url", "http://localhost:11434/v1")
	viper.SetDefault("embedding.model", "all-minilm")
	viper.SetDefault("embedding.timeout", "30s")

	viper.SetDefault("openrouter.enabled", false)
	viper.SetDefault("openrouter.models", []string{
		"google/gemini-2.0-flash-001",
		"google/gemini-flash-1.5",
		"qwen/qwen-2.5-72b-instruct:free",
	})
	viper.SetDefault("openrouter.max_tokens", 2048)
	viper.SetDefault("openrouter.timeout", "60s")

	viper.SetDefault("retrieval.top_k", 3)
	viper.SetDefault("retrieval.weak_score_threshold", 0.30)
	viper.SetDefault("retrieval.assisted_top_hit_only", true)

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	viper.SetDefault("queue.workers", 5)
	viper.SetDefault("queue.max_size", 100)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("dedup_window", "1s")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Qdrant.URL == "" {
		return fmt.Errorf("qdrant url is required")
	}
	if config.Qdrant.Collection == "" {
		return fmt.Errorf("qdrant collection is required")
	}

	if config.Retrieval.TopK <= 0 {
		return fmt.Errorf("invalid retrieval top_k")
	}
	if config.Retrieval.WeakScoreThreshold < 0 || config.Retrieval.WeakScoreThreshold > 1 {
		return fmt.Errorf("invalid weak score threshold")
	}

	if config.OpenRouter.Enabled && len(config.OpenRouter.Models) == 0 {
		return fmt.Errorf("openrouter enabled but no models configured")
	}

	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("invalid cache backend %q", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.Queue.Workers <= 0 {
		return fmt.Errorf("invalid queue workers")
	}
	if config.Queue.MaxSize <= 0 {
		return fmt.Errorf("invalid queue max size")
	}

	return nil
}
