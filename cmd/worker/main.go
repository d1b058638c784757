package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacekitchen/burgerhub/internal/config"
	"github.com/spacekitchen/burgerhub/internal/db"
	"github.com/spacekitchen/burgerhub/internal/fulfillment"
	"github.com/spacekitchen/burgerhub/internal/observability"
	"github.com/spacekitchen/burgerhub/internal/queue/redisclient"
	"github.com/spacekitchen/burgerhub/internal/repo/postgres"
)

// The standalone worker only makes sense against a shared store; with the
// memory backend the API process runs the kitchen itself.
func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if cfg.Store != "postgres" {
		log.Error("worker requires STORE=postgres")
		os.Exit(1)
	}

	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), "burgerhub-worker", cfg.OTLPEndpoint)

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

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("postgres connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	orders := postgres.NewOrdersRepo(pool)

	var queue *fulfillment.CookQueue

	if cfg.RedisAddr != "" {
		rdb := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		defer rdb.Close()

		queue = fulfillment.NewCookQueue(rdb)
	}

	w := fulfillment.New(fulfillment.Config{
		PollInterval: cfg.FulfillPollInterval,
		CookTime:     cfg.FulfillCookTime,
	}, orders, queue, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("fulfillment worker starting", "poll", cfg.FulfillPollInterval, "cook", cfg.FulfillCookTime)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped", "err", err)
		os.Exit(1)
	}
}
