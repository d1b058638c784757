package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spacekitchen/burgerhub/internal/domain/ingredient"
	"github.com/spacekitchen/burgerhub/internal/repo"
)

type IngredientsRepo struct {
	pool *pgxpool.Pool
}

func NewIngredientsRepo(pool *pgxpool.Pool) *IngredientsRepo {
	return &IngredientsRepo{pool: pool}
}

const ingredientColumns = `id, name, type, proteins, fat, carbohydrates, calories, price, image, image_mobile, image_large`

func (r *IngredientsRepo) List(ctx context.Context) ([]ingredient.Ingredient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients ORDER BY id`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]ingredient.Ingredient, 0)

	for rows.Next() {
		var ing ingredient.Ingredient

		err := rows.Scan(
			&ing.ID,
			&ing.Name,
			&ing.Type,
			&ing.Proteins,
			&ing.Fat,
			&ing.Carbohydrates,
			&ing.Calories,
			&ing.Price,
			&ing.Image,
			&ing.ImageMobile,
			&ing.ImageLarge,
		)

		if err != nil {
			return nil, err
		}

		out = append(out, ing)
	}

	return out, rows.Err()
}

// GetMany resolves ids in request order, duplicates included. Any id
// missing from the catalog fails the whole lookup.
func (r *IngredientsRepo) GetMany(ctx context.Context, ids []string) ([]ingredient.Ingredient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ANY($1)`,
		ids,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	byID := make(map[string]ingredient.Ingredient)

	for rows.Next() {
		var ing ingredient.Ingredient

		err := rows.Scan(
			&ing.ID,
			&ing.Name,
			&ing.Type,
			&ing.Proteins,
			&ing.Fat,
			&ing.Carbohydrates,
			&ing.Calories,
			&ing.Price,
			&ing.Image,
			&ing.ImageMobile,
			&ing.ImageLarge,
		)

		if err != nil {
			return nil, err
		}

		byID[ing.ID] = ing
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ingredient.Ingredient, 0, len(ids))

	for _, id := range ids {
		ing, ok := byID[id]

		if !ok {
			return nil, repo.ErrUnknownIngredient
		}

		out = append(out, ing)
	}

	return out, nil
}
