// Package fulfillment is the external kitchen actor: it picks up preparing
// orders and drives them to their terminal status. The API process itself
// never advances an order.
package fulfillment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spacekitchen/burgerhub/internal/domain/order"
	"github.com/spacekitchen/burgerhub/internal/repo"
)

type OrdersStore interface {
	OldestPreparing(ctx context.Context) (order.Order, error)
	SetStatusByNumber(ctx context.Context, number int64, next order.Status) error
}

type Config struct {
	PollInterval time.Duration
	CookTime     time.Duration
}

// Worker claims one preparing order per cycle, waits out the cook time and
// marks it done. Numbers come from the cook queue when redis is wired in;
// otherwise the store is polled directly.
type Worker struct {
	cfg   Config
	store OrdersStore
	queue *CookQueue // optional
	log   *slog.Logger
}

func New(cfg Config, store OrdersStore, queue *CookQueue, log *slog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}

	return &Worker{
		cfg:   cfg,
		store: store,
		queue: queue,
		log:   log,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("fulfillment worker shutting down")
			return nil

		case <-ticker.C:
			number, ok := w.nextOrder(ctx)

			if !ok {
				continue
			}

			if !w.cook(ctx) {
				return nil
			}

			err := w.store.SetStatusByNumber(ctx, number, order.StatusDone)

			if err != nil {
				// another worker may have beaten us to it
				if errors.Is(err, repo.ErrInvalidTransition) || errors.Is(err, repo.ErrOrderNotFound) {
					continue
				}

				w.log.Error("mark done failed", "number", number, "err", err)
				continue
			}

			w.log.Info("order done", "number", number)
		}
	}
}

func (w *Worker) nextOrder(ctx context.Context) (int64, bool) {
	if w.queue != nil {
		number, err := w.queue.Pop(ctx, w.cfg.PollInterval)

		if err == nil {
			return number, true
		}

		if !errors.Is(err, ErrQueueEmpty) && ctx.Err() == nil {
			w.log.Error("cook queue pop failed", "err", err)
		}

		// fall through to the store: orders placed while redis was down
		// must not be stranded
	}

	o, err := w.store.OldestPreparing(ctx)

	if err != nil {
		if !errors.Is(err, repo.ErrOrderNotFound) && ctx.Err() == nil {
			w.log.Error("claim failed", "err", err)
		}

		return 0, false
	}

	return o.Number, true
}

// cook waits out the cook time; returns false if the context was cancelled.
func (w *Worker) cook(ctx context.Context) bool {
	if w.cfg.CookTime <= 0 {
		return true
	}

	timer := time.NewTimer(w.cfg.CookTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
