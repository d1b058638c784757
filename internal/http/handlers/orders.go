package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacekitchen/burgerhub/internal/catalog"
	"github.com/spacekitchen/burgerhub/internal/config"
	"github.com/spacekitchen/burgerhub/internal/domain/order"
	"github.com/spacekitchen/burgerhub/internal/domain/user"
	"github.com/spacekitchen/burgerhub/internal/http/middlewares"
	"github.com/spacekitchen/burgerhub/internal/observability"
)

type OrdersStore interface {
	Create(ctx context.Context, ownerID, name string, ingredientIDs []string, price int) (order.Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]order.Order, error)
	ListRecent(ctx context.Context, limit int) ([]order.Order, error)
	Stats(ctx context.Context) (total, today int64, err error)
	StatsForOwner(ctx context.Context, ownerID string) (total, today int64, err error)
}

// CookEnqueuer hands a fresh order number to the fulfillment side.
type CookEnqueuer interface {
	Enqueue(ctx context.Context, number int64) error
}

// publicFeedLimit caps GET /api/orders/all.
const publicFeedLimit = 50

type OrdersHandler struct {
	orders      OrdersStore
	ingredients IngredientsStore
	users       UsersStore
	queue       CookEnqueuer        // optional
	prom        *observability.Prom // optional
	log         *slog.Logger
}

func NewOrdersHandler(orders OrdersStore, ingredients IngredientsStore, users UsersStore, queue CookEnqueuer, prom *observability.Prom, log *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders:      orders,
		ingredients: ingredients,
		users:       users,
		queue:       queue,
		prom:        prom,
		log:         log,
	}
}

type CreateOrderRequest struct {
	// raw elements: string ids are expected, but callers send arbitrary
	// JSON here and the error class depends on the element shape
	Ingredients []any `json:"ingredients"`
}

func (h *OrdersHandler) CreateOrder(ctx *gin.Context) {
	u, ok := h.currentUser(ctx)

	if !ok {
		return
	}

	var req CreateOrderRequest

	// a missing body counts as "no ingredients"
	_ = ctx.ShouldBindJSON(&req)

	if len(req.Ingredients) == 0 {
		Fail(ctx, http.StatusBadRequest, "Ingredient ids must be provided")
		return
	}

	ids := make([]string, 0, len(req.Ingredients))

	for _, el := range req.Ingredients {
		id, ok := el.(string)

		if !ok {
			// a nested list or object is a different failure class than
			// a well-shaped id that simply doesn't exist
			Fail(ctx, http.StatusForbidden, "Invalid ingredient id")
			return
		}

		ids = append(ids, id)
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// bug-compatible: a well-shaped id that fails lookup surfaces as a
	// 500, and callers assert on that status
	ings, err := h.ingredients.GetMany(cctx, ids)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	price := 0

	for _, ing := range ings {
		price += ing.Price
	}

	o, err := h.orders.Create(cctx, u.ID, catalog.BurgerName(ings), ids, price)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	if h.prom != nil {
		h.prom.OrdersCreated.Inc()
	}

	if h.queue != nil {
		if err := h.queue.Enqueue(cctx, o.Number); err != nil {
			// the worker also polls the store, so a queue hiccup only
			// delays fulfillment
			h.log.Error("cook queue enqueue failed", "number", o.Number, "err", err)
		}
	}

	OK(ctx, gin.H{
		"name": o.Name,
		"order": gin.H{
			"_id":         o.ID,
			"number":      o.Number,
			"name":        o.Name,
			"status":      o.Status,
			"price":       o.Price,
			"ingredients": ings,
			"owner": gin.H{
				"name":      u.Name,
				"email":     u.Email,
				"createdAt": u.CreatedAt,
				"updatedAt": u.UpdatedAt,
			},
			"createdAt": o.CreatedAt,
			"updatedAt": o.UpdatedAt,
		},
	})
}

// ownFeedOrder is one entry of the caller's order listing.
type ownFeedOrder struct {
	ID          string       `json:"_id"`
	Number      int64        `json:"number"`
	Name        string       `json:"name"`
	Status      order.Status `json:"status"`
	Price       int          `json:"price"`
	Ingredients []string     `json:"ingredients"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// publicFeedOrder redacts owner and price to null for the shared feed.
type publicFeedOrder struct {
	ID          string       `json:"_id"`
	Number      int64        `json:"number"`
	Name        string       `json:"name"`
	Status      order.Status `json:"status"`
	Owner       any          `json:"owner"`
	Price       any          `json:"price"`
	Ingredients []string     `json:"ingredients"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (h *OrdersHandler) ListOrders(ctx *gin.Context) {
	u, ok := h.currentUser(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	list, err := h.orders.ListByOwner(cctx, u.ID)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	total, today, err := h.orders.StatsForOwner(cctx, u.ID)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	out := make([]ownFeedOrder, 0, len(list))

	for _, o := range list {
		out = append(out, ownFeedOrder{
			ID:          o.ID,
			Number:      o.Number,
			Name:        o.Name,
			Status:      o.Status,
			Price:       o.Price,
			Ingredients: o.IngredientIDs,
			CreatedAt:   o.CreatedAt,
			UpdatedAt:   o.UpdatedAt,
		})
	}

	OK(ctx, gin.H{
		"orders":     out,
		"total":      total,
		"totalToday": today,
	})
}

func (h *OrdersHandler) ListAllOrders(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	list, err := h.orders.ListRecent(cctx, publicFeedLimit)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	total, today, err := h.orders.Stats(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	out := make([]publicFeedOrder, 0, len(list))

	for _, o := range list {
		out = append(out, publicFeedOrder{
			ID:          o.ID,
			Number:      o.Number,
			Name:        o.Name,
			Status:      o.Status,
			Owner:       nil,
			Price:       nil,
			Ingredients: o.IngredientIDs,
			CreatedAt:   o.CreatedAt,
			UpdatedAt:   o.UpdatedAt,
		})
	}

	OK(ctx, gin.H{
		"orders":     out,
		"total":      total,
		"totalToday": today,
	})
}

func (h *OrdersHandler) currentUser(ctx *gin.Context) (user.User, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		Fail(ctx, http.StatusUnauthorized, "You should be authorised")
		return user.User{}, false
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, id)

	if err != nil {
		Fail(ctx, http.StatusUnauthorized, "You should be authorised")
		return user.User{}, false
	}

	return u, true
}
