package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spacekitchen/burgerhub/internal/domain/ingredient"
)

// SeedIngredients inserts the catalog, skipping ids that already exist.
// The catalog is read-only through the API so upserting the rest of the
// row is unnecessary.
func SeedIngredients(ctx context.Context, pool *pgxpool.Pool, seed []ingredient.Ingredient) error {
	for _, ing := range seed {
		_, err := pool.Exec(ctx,
			`INSERT INTO ingredients (id, name, type, proteins, fat, carbohydrates, calories, price, image, image_mobile, image_large)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (id) DO NOTHING`,
			ing.ID, ing.Name, ing.Type, ing.Proteins, ing.Fat, ing.Carbohydrates, ing.Calories, ing.Price,
			ing.Image, ing.ImageMobile, ing.ImageLarge,
		)

		if err != nil {
			return err
		}
	}

	return nil
}
