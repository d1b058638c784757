package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacekitchen/burgerhub/internal/cache"
	"github.com/spacekitchen/burgerhub/internal/config"
	"github.com/spacekitchen/burgerhub/internal/domain/ingredient"
)

type IngredientsStore interface {
	List(ctx context.Context) ([]ingredient.Ingredient, error)
	GetMany(ctx context.Context, ids []string) ([]ingredient.Ingredient, error)
}

const ingredientsCacheKey = "ingredients"

type IngredientsHandler struct {
	store IngredientsStore
	cache *cache.Cache // optional
}

func NewIngredientsHandler(store IngredientsStore, c *cache.Cache) *IngredientsHandler {
	return &IngredientsHandler{
		store: store,
		cache: c,
	}
}

// List serves the whole catalog. The set only changes on deploy, so the
// payload is cached.
func (h *IngredientsHandler) List(ctx *gin.Context) {
	if h.cache != nil {
		if v, ok := h.cache.Get(ingredientsCacheKey); ok {
			if data, ok := v.([]ingredient.Ingredient); ok {
				OK(ctx, gin.H{"data": data})
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	data, err := h.store.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	if h.cache != nil {
		h.cache.Set(ingredientsCacheKey, data)
	}

	OK(ctx, gin.H{"data": data})
}
