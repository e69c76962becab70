package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "github.com/govind-tiwari/review-extractor/internal/adapters/http_server"
	"github.com/govind-tiwari/review-extractor/internal/adapters/memory"
	"github.com/govind-tiwari/review-extractor/internal/adapters/observability"
	redisad "github.com/govind-tiwari/review-extractor/internal/adapters/redis"
	"github.com/govind-tiwari/review-extractor/internal/adapters/reviewapi"
	"github.com/govind-tiwari/review-extractor/internal/app"
	"github.com/govind-tiwari/review-extractor/internal/domain"
	"github.com/govind-tiwari/review-extractor/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stdout)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// review source
	src, err := reviewapi.NewSource(reviewapi.Options{
		Mode:    cfg.ReviewSource,
		Base:    cfg.ReviewAPIBase,
		RPS:     cfg.ReviewAPIRPS,
		Timeout: cfg.ReviewAPITimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize review source")
	}
	log.Info().Str("mode", cfg.ReviewSource).Str("base", cfg.ReviewAPIBase).Msg("review source ready")

	// session store
	var cache domain.Cache = memory.New()
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rc.Close()
		cache = rc
		log.Info().Msg("redis connection ok")
	}
	// background extractions are aborted once the server stops serving
	base, abort := context.WithCancel(context.Background())
	defer abort()
	sessions := app.NewSessionService(base, cache, app.NewSubmitter(src), cfg.SessionTTL, cfg.ExtractDeadline)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: sessions})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
		abort()
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("web listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}

	// aborted extractions still land in the store before exiting
	sessions.Wait()
	log.Info().Msg("bye")
}
