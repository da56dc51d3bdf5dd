// README: Entry point; loads config, wires the provider, optional stores and services, serves HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"railmate/internal/ai"
	"railmate/internal/config"
	httptransport "railmate/internal/http"
	"railmate/internal/infra"
	"railmate/internal/modules/booking"
	"railmate/internal/modules/history"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.IsProduction(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, closeProvider, err := ai.NewProvider(ctx, ai.ProviderConfig{
		Provider:      cfg.AI.Provider,
		OpenAIKey:     cfg.AI.OpenAIKey,
		OpenAIBaseURL: cfg.AI.OpenAIBaseURL,
		OpenAIModel:   cfg.AI.OpenAIModel,
		GeminiKey:     cfg.AI.GeminiKey,
		GeminiModel:   cfg.AI.GeminiModel,
		Temperature:   cfg.AI.Temperature,
		MaxTokens:     cfg.AI.MaxTokens,
	})
	if err != nil {
		logger.Fatal("ai provider init", zap.Error(err))
	}
	defer closeProvider()

	info := provider.Info()
	if !info.Configured {
		logger.Warn("completion provider has no credential; /api/analyze will return configuration placeholders",
			zap.String("provider", info.Name), zap.String("env", info.CredentialEnv))
	}

	opts := []booking.Option{booking.WithTimeout(cfg.AI.Timeout)}

	if cfg.Redis.Addr != "" && cfg.Cache.TTL > 0 {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("redis init", zap.Error(err))
		}
		defer redisClient.Close()
		opts = append(opts, booking.WithCache(booking.NewStore(redisClient, cfg.Cache.TTL)))
		logger.Info("analysis cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL))
	}

	var historySvc *history.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init", zap.Error(err))
		}
		defer dbPool.Close()
		historySvc = history.NewService(history.NewStore(dbPool))
		opts = append(opts, booking.WithRecorder(historySvc))
		logger.Info("analysis history enabled")
	}

	bookingSvc := booking.NewService(provider, logger, opts...)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Booking:            bookingSvc,
		History:            historySvc,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimit.PerMinute,
		RateLimitBurst:     cfg.RateLimit.Burst,
		CORSOrigins:        cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("provider", info.Name))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}
