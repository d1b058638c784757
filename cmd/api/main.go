package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spacekitchen/burgerhub/internal/auth"
	"github.com/spacekitchen/burgerhub/internal/cache"
	"github.com/spacekitchen/burgerhub/internal/catalog"
	"github.com/spacekitchen/burgerhub/internal/config"
	"github.com/spacekitchen/burgerhub/internal/db"
	"github.com/spacekitchen/burgerhub/internal/fulfillment"
	httpx "github.com/spacekitchen/burgerhub/internal/http"
	"github.com/spacekitchen/burgerhub/internal/observability"
	"github.com/spacekitchen/burgerhub/internal/queue/redisclient"
	"github.com/spacekitchen/burgerhub/internal/repo/memory"
	"github.com/spacekitchen/burgerhub/internal/repo/postgres"
	"github.com/spacekitchen/burgerhub/internal/stats"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing is opt-in
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), "burgerhub-api", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(3 * time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	deps := httpx.Deps{Cfg: cfg}
	deps.JWT = auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	deps.Cache = cache.New(30 * time.Second)
	deps.Pings = map[string]func() error{}

	// storage backend

	switch cfg.Store {
	case "postgres":
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("postgres connect failed", "err", err)
			os.Exit(1)
		}

		defer pool.Close()

		ctx, cancel := config.WithTimeout(10 * time.Second)

		if err := db.EnsureSchema(ctx, pool); err != nil {
			cancel()
			log.Error("schema setup failed", "err", err)
			os.Exit(1)
		}

		if err := db.SeedIngredients(ctx, pool, catalog.Default()); err != nil {
			cancel()
			log.Error("ingredient seed failed", "err", err)
			os.Exit(1)
		}

		cancel()

		deps.Users = postgres.NewUsersRepo(pool)
		deps.Refresh = postgres.NewRefreshTokensRepo(pool)
		deps.Orders = postgres.NewOrdersRepo(pool)
		deps.Ingredients = postgres.NewIngredientsRepo(pool)

		deps.Pings["postgres"] = func() error {
			ctx, cancel := config.WithTimeout(time.Second)
			defer cancel()
			return pool.Ping(ctx)
		}

	default:
		orders := memory.NewOrdersRepo(stats.NewCounter())

		deps.Users = memory.NewUsersRepo()
		deps.Refresh = memory.NewRefreshTokensRepo()
		deps.Orders = orders
		deps.Ingredients = memory.NewIngredientsRepo(catalog.Default())

		// the memory store is process-local, so the kitchen has to live in
		// this process too
		workerCtx, cancelWorker := context.WithCancel(context.Background())
		defer cancelWorker()

		w := fulfillment.New(fulfillment.Config{
			PollInterval: cfg.FulfillPollInterval,
			CookTime:     cfg.FulfillCookTime,
		}, orders, nil, log)

		go func() {
			_ = w.Run(workerCtx)
		}()
	}

	// redis cook queue is optional; without it the worker polls the store

	if cfg.RedisAddr != "" {
		rdb := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		defer rdb.Close()

		deps.Queue = fulfillment.NewCookQueue(rdb)

		deps.Pings["redis"] = func() error {
			ctx, cancel := config.WithTimeout(time.Second)
			defer cancel()
			return rdb.Ping(ctx)
		}
	}

	// metrics

	registry := prometheus.NewRegistry()
	deps.Prom = observability.NewProm(registry)
	deps.Registry = registry

	router := httpx.NewRouter(log, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
