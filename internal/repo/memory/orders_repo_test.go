package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spacekitchen/burgerhub/internal/domain/order"
	"github.com/spacekitchen/burgerhub/internal/repo"
	"github.com/spacekitchen/burgerhub/internal/stats"
)

func newTestOrders() *OrdersRepo {
	return NewOrdersRepo(stats.NewCounter())
}

func TestOrdersCreateAssignsIncreasingNumbers(t *testing.T) {
	r := newTestOrders()
	ctx := context.Background()

	var prev int64

	for i := 0; i < 5; i++ {
		o, err := r.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 100)

		if err != nil {
			t.Fatalf("create: %v", err)
		}

		if o.Number <= prev {
			t.Fatalf("numbers must strictly increase: %d after %d", o.Number, prev)
		}

		if o.Status != order.StatusPreparing {
			t.Fatalf("new orders start preparing, got %s", o.Status)
		}

		prev = o.Number
	}
}

func TestOrdersCreateConcurrentDistinctNumbers(t *testing.T) {
	r := newTestOrders()
	ctx := context.Background()

	const workers = 12
	const perWorker = 50

	var wg sync.WaitGroup
	numbers := make(chan int64, workers*perWorker)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < perWorker; j++ {
				o, err := r.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 1)

				if err != nil {
					t.Errorf("create: %v", err)
					return
				}

				numbers <- o.Number
			}
		}()
	}

	wg.Wait()
	close(numbers)

	seen := make(map[int64]bool)

	for n := range numbers {
		if seen[n] {
			t.Fatalf("duplicate order number %d", n)
		}
		seen[n] = true
	}

	total, today, err := r.Stats(ctx)

	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if total != int64(workers*perWorker) || today != total {
		t.Fatalf("counters drifted: total=%d today=%d", total, today)
	}
}

func TestOrdersListRecentSortedByUpdatedAtDesc(t *testing.T) {
	r := newTestOrders()
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for i := 0; i < 4; i++ {
		if _, err := r.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 1); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// bump the first order so it jumps to the front of the feed
	if err := r.SetStatusByNumber(ctx, 1, order.StatusDone); err != nil {
		t.Fatalf("set status: %v", err)
	}

	feed, err := r.ListRecent(ctx, 50)

	if err != nil {
		t.Fatalf("list recent: %v", err)
	}

	if len(feed) != 4 {
		t.Fatalf("expected 4 orders, got %d", len(feed))
	}

	if feed[0].Number != 1 || feed[0].Status != order.StatusDone {
		t.Fatalf("most recently updated order must lead the feed, got #%d", feed[0].Number)
	}

	for i := 1; i < len(feed); i++ {
		if feed[i].UpdatedAt.After(feed[i-1].UpdatedAt) {
			t.Fatalf("feed not sorted by updatedAt desc at index %d", i)
		}
	}

	limited, err := r.ListRecent(ctx, 2)

	if err != nil {
		t.Fatalf("list recent: %v", err)
	}

	if len(limited) != 2 {
		t.Fatalf("expected the limit to apply, got %d", len(limited))
	}
}

func TestOrdersStatsForOwnerIsScoped(t *testing.T) {
	r := newTestOrders()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := r.Create(ctx, "busy-user", "Test burger", []string{"ing-1"}, 1); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	total, today, err := r.StatsForOwner(ctx, "fresh-user")

	if err != nil {
		t.Fatalf("stats for owner: %v", err)
	}

	if total != 0 || today != 0 {
		t.Fatalf("fresh user must read 0/0, got %d/%d", total, today)
	}

	total, today, err = r.StatsForOwner(ctx, "busy-user")

	if err != nil {
		t.Fatalf("stats for owner: %v", err)
	}

	if total != 3 || today != 3 {
		t.Fatalf("owner view off: %d/%d", total, today)
	}
}

func TestOrdersStatusTransitions(t *testing.T) {
	r := newTestOrders()
	ctx := context.Background()

	o, err := r.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 1)

	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.SetStatusByNumber(ctx, o.Number, order.StatusDone); err != nil {
		t.Fatalf("preparing -> done: %v", err)
	}

	// done is terminal
	err = r.SetStatusByNumber(ctx, o.Number, order.StatusCancelled)

	if !errors.Is(err, repo.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from done, got %v", err)
	}

	err = r.SetStatusByNumber(ctx, 9999, order.StatusDone)

	if !errors.Is(err, repo.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for unknown number, got %v", err)
	}
}

func TestOrdersOldestPreparing(t *testing.T) {
	r := newTestOrders()
	ctx := context.Background()

	if _, err := r.OldestPreparing(ctx); !errors.Is(err, repo.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on empty ledger, got %v", err)
	}

	first, err := r.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 1)

	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := r.Create(ctx, "owner-1", "Test burger", []string{"ing-1"}, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := r.OldestPreparing(ctx)

	if err != nil {
		t.Fatalf("oldest preparing: %v", err)
	}

	if got.Number != first.Number {
		t.Fatalf("expected order #%d, got #%d", first.Number, got.Number)
	}
}
