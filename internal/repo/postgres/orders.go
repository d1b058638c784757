package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spacekitchen/burgerhub/internal/domain/order"
	"github.com/spacekitchen/burgerhub/internal/repo"
)

type OrdersRepo struct {
	pool *pgxpool.Pool
}

func NewOrdersRepo(pool *pgxpool.Pool) *OrdersRepo {
	return &OrdersRepo{pool: pool}
}

const orderColumns = `id, number, owner_id, name, status, ingredients, price, created_at, updated_at`

// Create assigns the next order number and inserts the row in a single
// transaction, so the number sequence stays gapless-monotonic per commit
// and no two orders ever share a number.
func (r *OrdersRepo) Create(ctx context.Context, ownerID, name string, ingredientIDs []string, price int) (order.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return order.Order{}, err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	var o order.Order

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (id, number, owner_id, name, status, ingredients, price, created_at, updated_at)
		 VALUES ($1, nextval('order_numbers'), $2, $3, $4, $5, $6, NOW(), NOW())
		 RETURNING `+orderColumns,
		uuid.NewString(), ownerID, name, order.StatusPreparing, ingredientIDs, price,
	).Scan(
		&o.ID,
		&o.Number,
		&o.OwnerID,
		&o.Name,
		&o.Status,
		&o.IngredientIDs,
		&o.Price,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		return order.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return o, nil
}

func (r *OrdersRepo) ListByOwner(ctx context.Context, ownerID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders
		 WHERE owner_id = $1
		 ORDER BY updated_at DESC, number ASC`,
		ownerID,
	)

	if err != nil {
		return nil, err
	}

	return scanOrders(rows)
}

func (r *OrdersRepo) ListRecent(ctx context.Context, limit int) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders
		 ORDER BY updated_at DESC, number ASC
		 LIMIT $1`,
		limit,
	)

	if err != nil {
		return nil, err
	}

	return scanOrders(rows)
}

// Stats derives the global counters from the order ledger itself, so they
// can never drift from what was actually inserted.
func (r *OrdersRepo) Stats(ctx context.Context) (total, today int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE created_at >= date_trunc('day', now() AT TIME ZONE 'utc'))
		 FROM orders`,
	).Scan(&total, &today)

	return total, today, err
}

func (r *OrdersRepo) StatsForOwner(ctx context.Context, ownerID string) (total, today int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE created_at >= date_trunc('day', now() AT TIME ZONE 'utc'))
		 FROM orders
		 WHERE owner_id = $1`,
		ownerID,
	).Scan(&total, &today)

	return total, today, err
}

// OldestPreparing skips rows another worker is already looking at.
func (r *OrdersRepo) OldestPreparing(ctx context.Context) (order.Order, error) {
	var o order.Order

	err := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+`
		 FROM orders
		 WHERE status = $1
		 ORDER BY number ASC
		 LIMIT 1
		 FOR UPDATE SKIP LOCKED`,
		order.StatusPreparing,
	).Scan(
		&o.ID,
		&o.Number,
		&o.OwnerID,
		&o.Name,
		&o.Status,
		&o.IngredientIDs,
		&o.Price,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, repo.ErrOrderNotFound
		}

		return order.Order{}, err
	}

	return o, nil
}

// SetStatusByNumber only moves orders that are still preparing; done and
// cancelled are terminal.
func (r *OrdersRepo) SetStatusByNumber(ctx context.Context, number int64, next order.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders
		 SET status = $2, updated_at = NOW()
		 WHERE number = $1 AND status = $3`,
		number, next, order.StatusPreparing,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		var exists bool

		err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE number = $1)`,
			number,
		).Scan(&exists)

		if err != nil {
			return err
		}

		if exists {
			return repo.ErrInvalidTransition
		}

		return repo.ErrOrderNotFound
	}

	return nil
}

func scanOrders(rows pgx.Rows) ([]order.Order, error) {
	defer rows.Close()

	out := make([]order.Order, 0)

	for rows.Next() {
		var o order.Order

		err := rows.Scan(
			&o.ID,
			&o.Number,
			&o.OwnerID,
			&o.Name,
			&o.Status,
			&o.IngredientIDs,
			&o.Price,
			&o.CreatedAt,
			&o.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		out = append(out, o)
	}

	return out, rows.Err()
}
