package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
	"github.com/arenoe-studio/terzaghi-calculator/internal/config"
	"github.com/arenoe-studio/terzaghi-calculator/internal/history"
	"github.com/arenoe-studio/terzaghi-calculator/internal/logger"
	"github.com/arenoe-studio/terzaghi-calculator/internal/repo"
)

var version = "dev"

var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	bearing.SetLogger(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database unavailable", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	userRepo := repo.NewPostgresUserDB(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		log.Error("database schema", "err", err)
		os.Exit(1)
	}

	checks := map[string]func(context.Context) error{"postgres": db.PingContext}
	opts := history.Options{
		Dir:               cfg.HistoryDir,
		MaxItems:          cfg.HistoryMaxItems,
		DescriptionMaxLen: cfg.DescriptionMaxLen,
		Location:          cfg.HistoryTimezone,
		CacheTTL:          cfg.HistoryCacheTTL,
		Logger:            log.With("component", "history"),
	}
	if cfg.RedisURL != "" {
		cache, err := history.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, history cache disabled", "err", err)
		} else {
			defer cache.Close()
			opts.Cache = cache
			checks["redis"] = cache.Ping
		}
	}
	store, err := history.NewStore(opts)
	if err != nil {
		log.Error("history store", "err", err)
		os.Exit(1)
	}

	handler := newRouter(deps{
		cfg:    cfg,
		log:    log,
		users:  userRepo,
		store:  store,
		checks: checks,
	})
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS(), "version", version)
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
	}
	wg.Wait()
	log.Info("server stopped")
}
