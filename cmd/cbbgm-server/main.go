// cbbgm-server serves the league save store over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cbbgm/cbbgm/internal/config"
	"github.com/cbbgm/cbbgm/internal/server"
	"github.com/cbbgm/cbbgm/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML or JSON config file")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal("opening backend", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	defer backend.Close()

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.New(backend, log).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("save service listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("backend", backend.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func openBackend(ctx context.Context, cfg config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case "redis":
		return store.OpenRedis(ctx, cfg.RedisURL)
	case "memory":
		return store.NewMemory(), nil
	default:
		return store.OpenBolt(cfg.BoltPath)
	}
}
