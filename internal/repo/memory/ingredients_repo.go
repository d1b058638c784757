package memory

import (
	"context"

	"github.com/spacekitchen/burgerhub/internal/domain/ingredient"
	"github.com/spacekitchen/burgerhub/internal/repo"
)

// IngredientsRepo serves the seeded catalog. The set is fixed after
// construction, so reads need no locking.
type IngredientsRepo struct {
	ordered []ingredient.Ingredient
	byID    map[string]ingredient.Ingredient
}

func NewIngredientsRepo(seed []ingredient.Ingredient) *IngredientsRepo {
	byID := make(map[string]ingredient.Ingredient, len(seed))

	for _, ing := range seed {
		byID[ing.ID] = ing
	}

	return &IngredientsRepo{
		ordered: seed,
		byID:    byID,
	}
}

func (r *IngredientsRepo) List(ctx context.Context) ([]ingredient.Ingredient, error) {
	out := make([]ingredient.Ingredient, len(r.ordered))
	copy(out, r.ordered)

	return out, nil
}

// GetMany resolves every id, preserving order and duplicates. A single
// unresolvable id fails the whole lookup.
func (r *IngredientsRepo) GetMany(ctx context.Context, ids []string) ([]ingredient.Ingredient, error) {
	out := make([]ingredient.Ingredient, 0, len(ids))

	for _, id := range ids {
		ing, ok := r.byID[id]

		if !ok {
			return nil, repo.ErrUnknownIngredient
		}

		out = append(out, ing)
	}

	return out, nil
}
