package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-search/internal/api"
	"recipe-search/internal/core/ai/cache"
	"recipe-search/internal/core/ai/openrouter"
	aiservice "recipe-search/internal/core/ai/service"
	"recipe-search/internal/core/assist"
	"recipe-search/internal/core/search"
	"recipe-search/internal/infrastructure/config"
	"recipe-search/internal/infrastructure/embedding"
	"recipe-search/internal/infrastructure/qdrant"
	"recipe-search/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("configuration loaded",
		zap.String("qdrant_url", cfg.Qdrant.URL),
		zap.String("collection", cfg.Qdrant.Collection),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Bool("assisted_extraction", cfg.OpenRouter.Enabled),
	)

	embedder := embedding.NewClient(cfg)
	defer embedder.Close()

	vectorStore := qdrant.NewClient(cfg)
	defer vectorStore.Close()

	// the assisted extractor is optional, everything else runs without it
	var extractor *assist.Extractor
	if cfg.OpenRouter.Enabled {
		store, err := cache.NewStore(cfg)
		if err != nil {
			common.LogFatal("Failed to initialize cache", zap.Error(err))
		}
		aiSvc := aiservice.NewService(cfg, openrouter.NewClient(cfg), store)
		defer aiSvc.Close()
		extractor = assist.NewExtractor(cfg, aiSvc)
	}

	searchSvc := search.NewService(cfg, embedder, vectorStore, extractor)
	queue := search.NewQueue(cfg, searchSvc)
	defer queue.Close()

	router, err := api.SetupRouter(cfg, &api.Dependencies{
		Queue:       queue,
		VectorStore: vectorStore,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("starting server",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
