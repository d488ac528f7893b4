package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/auth"
	"jobboard/internal/config"
	"jobboard/internal/db"
	httpx "jobboard/internal/http"
	mw "jobboard/internal/http/middleware"
	"jobboard/internal/job"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return serve(cmd.Context(), cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Create tables and indexes before serving")
	return cmd
}

// openStore connects the configured backend. The returned close func is
// never nil.
func openStore(ctx context.Context, cfg config.Config, migrate bool) (job.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		gdb, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if migrate {
			if err := db.AutoMigrateAndIndexes(gdb); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return &job.GormStore{DB: gdb}, closeFn, nil

	case config.BackendMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		mdb := client.Database(cfg.MongoDatabase)
		if migrate {
			if err := db.EnsureMongoIndexes(ctx, mdb); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return job.NewMongoStore(mdb), closeFn, nil

	case config.BackendMemory:
		return job.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger, migrate bool) error {
	store, closeStore, err := openStore(ctx, cfg, migrate)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info("store ready", zap.String("backend", cfg.StoreBackend))

	deps := httpx.Deps{
		Jobs: &job.Service{Store: store, Rules: job.Rules{RequireAllFields: cfg.StrictJobFields}},
		Auth: auth.NewJWT(cfg.JWTSecret),
		Log:  log,
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// the limiter fails open, so an unreachable redis is not fatal
			log.Warn("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		deps.RateLimit = mw.RateLimit(mw.RateLimitConfig{
			Counter: rdb,
			Limit:   cfg.RateLimit,
			Window:  cfg.RateLimitWindow,
			Log:     log,
		})
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-ch:
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
