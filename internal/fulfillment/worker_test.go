package fulfillment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/spacekitchen/burgerhub/internal/domain/order"
	"github.com/spacekitchen/burgerhub/internal/fulfillment"
	"github.com/spacekitchen/burgerhub/internal/repo/memory"
	"github.com/spacekitchen/burgerhub/internal/stats"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkerAdvancesPreparingOrders(t *testing.T) {
	orders := memory.NewOrdersRepo(stats.NewCounter())
	ctx := context.Background()

	first, err := orders.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 10)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := orders.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 10)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := fulfillment.New(fulfillment.Config{
		PollInterval: 5 * time.Millisecond,
		CookTime:     0,
	}, orders, nil, discardLogger())

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)

	go func() { done <- w.Run(runCtx) }()

	deadline := time.After(2 * time.Second)

	for {
		feed, err := orders.ListRecent(ctx, 10)

		if err != nil {
			t.Fatalf("list: %v", err)
		}

		finished := 0

		for _, o := range feed {
			if o.Status == order.StatusDone {
				finished++
			}
		}

		if finished == 2 {
			break
		}

		select {
		case <-deadline:
			cancel()
			t.Fatalf("worker did not finish orders #%d and #%d in time", first.Number, second.Number)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()

	if err := <-done; err != nil {
		t.Fatalf("worker returned error: %v", err)
	}
}

func TestWorkerStopsOnCancel(t *testing.T) {
	orders := memory.NewOrdersRepo(stats.NewCounter())

	w := fulfillment.New(fulfillment.Config{
		PollInterval: 5 * time.Millisecond,
		CookTime:     time.Hour, // never finishes a cook within the test
	}, orders, nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("worker returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}
