package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spacekitchen/burgerhub/internal/domain/order"
	"github.com/spacekitchen/burgerhub/internal/repo"
	"github.com/spacekitchen/burgerhub/internal/stats"
)

// OrdersRepo keeps the order ledger in insertion order. Number assignment
// and counter increments go through the stats counter inside the repo lock,
// so concurrent creates never yield duplicate numbers.
type OrdersRepo struct {
	mu       sync.RWMutex
	ledger   []order.Order
	byNumber map[int64]int // number -> ledger index
	counter  *stats.Counter
	now      func() time.Time
}

func NewOrdersRepo(counter *stats.Counter) *OrdersRepo {
	return &OrdersRepo{
		byNumber: make(map[int64]int),
		counter:  counter,
		now:      time.Now,
	}
}

func (r *OrdersRepo) Create(ctx context.Context, ownerID, name string, ingredientIDs []string, price int) (order.Order, error) {
	now := r.now().UTC()

	ids := make([]string, len(ingredientIDs))
	copy(ids, ingredientIDs)

	r.mu.Lock()
	defer r.mu.Unlock()

	o := order.Order{
		ID:            uuid.NewString(),
		Number:        r.counter.Next(),
		OwnerID:       ownerID,
		Name:          name,
		Status:        order.StatusPreparing,
		IngredientIDs: ids,
		Price:         price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.byNumber[o.Number] = len(r.ledger)
	r.ledger = append(r.ledger, o)

	return o, nil
}

func (r *OrdersRepo) ListByOwner(ctx context.Context, ownerID string) ([]order.Order, error) {
	r.mu.RLock()

	out := make([]order.Order, 0)

	for _, o := range r.ledger {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}

	r.mu.RUnlock()

	sortByUpdatedAtDesc(out)

	return out, nil
}

// ListRecent returns up to limit orders across all users, most recently
// updated first, ties kept in insertion order.
func (r *OrdersRepo) ListRecent(ctx context.Context, limit int) ([]order.Order, error) {
	r.mu.RLock()

	out := make([]order.Order, len(r.ledger))
	copy(out, r.ledger)

	r.mu.RUnlock()

	sortByUpdatedAtDesc(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// Stats reports the global counters.
func (r *OrdersRepo) Stats(ctx context.Context) (total, today int64, err error) {
	total, today = r.counter.Totals()

	return total, today, nil
}

// StatsForOwner derives the per-user view by filtering the ledger, so a
// user with no orders reads 0/0 no matter what the global counters say.
func (r *OrdersRepo) StatsForOwner(ctx context.Context, ownerID string) (total, today int64, err error) {
	midnight := utcMidnight(r.now())

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.ledger {
		if o.OwnerID != ownerID {
			continue
		}

		total++

		if !o.CreatedAt.Before(midnight) {
			today++
		}
	}

	return total, today, nil
}

// OldestPreparing hands the fulfillment worker its next order.
func (r *OrdersRepo) OldestPreparing(ctx context.Context) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.ledger {
		if o.Status == order.StatusPreparing {
			return o, nil
		}
	}

	return order.Order{}, repo.ErrOrderNotFound
}

func (r *OrdersRepo) SetStatusByNumber(ctx context.Context, number int64, next order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byNumber[number]

	if !ok {
		return repo.ErrOrderNotFound
	}

	o := r.ledger[idx]

	if !o.Status.CanTransition(next) {
		return repo.ErrInvalidTransition
	}

	o.Status = next
	o.UpdatedAt = r.now().UTC()
	r.ledger[idx] = o

	return nil
}

func sortByUpdatedAtDesc(orders []order.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].UpdatedAt.After(orders[j].UpdatedAt)
	})
}

func utcMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
