// Command server runs the society dashboard: an HTML front end over the
// society REST backend, with browser sessions held server-side.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/societyhub/dashboard/internal/api"
	"github.com/societyhub/dashboard/internal/core/ports"
	"github.com/societyhub/dashboard/internal/core/service"
	"github.com/societyhub/dashboard/internal/infrastructure/config"
	"github.com/societyhub/dashboard/internal/infrastructure/store"
	"github.com/societyhub/dashboard/internal/infrastructure/upstream"
	"github.com/societyhub/dashboard/pkg/logger"
)

func main() {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("configuration load failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var (
		rdb      *redis.Client
		sessions ports.SessionRepository
	)
	if cfg.Redis.Addr != "" {
		rdb, err = store.Connect(ctx, store.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		defer rdb.Close()
		sessions = store.NewRedisSessions(rdb, cfg.SessionTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions in redis")
	} else {
		sessions = store.NewMemorySessions()
		log.Warn().Msg("REDIS_ADDR not set, sessions held in memory")
	}

	apiClient := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	})

	sessionService := service.NewSessionService(apiClient, sessions, log)
	communityService := service.NewCommunityService(apiClient, sessionService)

	e := api.NewRouter(api.Deps{
		Sessions:   sessionService,
		Community:  communityService,
		API:        apiClient,
		Redis:      rdb,
		SessionTTL: cfg.SessionTTL,
		Log:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Upstream.BaseURL).Msg("dashboard listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
