// Package catalog holds the seeded, read-only ingredient set and the
// display-name builder used when an order is placed.
package catalog

import (
	"strings"

	"github.com/spacekitchen/burgerhub/internal/domain/ingredient"
)

// Default returns the ingredient set seeded at startup. Ids are stable so
// clients may cache them across restarts.
func Default() []ingredient.Ingredient {
	return []ingredient.Ingredient{
		{
			ID: "64f1c0a1e8d2b0001a3c0001", Name: "Fluorescent bun R2-D3", Type: ingredient.TypeBun,
			Proteins: 44, Fat: 26, Carbohydrates: 85, Calories: 643, Price: 988,
			Image:       "https://static.spacekitchen.dev/images/bun-01.png",
			ImageMobile: "https://static.spacekitchen.dev/images/bun-01-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/bun-01-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0002", Name: "Crater bun N-200i", Type: ingredient.TypeBun,
			Proteins: 80, Fat: 24, Carbohydrates: 53, Calories: 420, Price: 1255,
			Image:       "https://static.spacekitchen.dev/images/bun-02.png",
			ImageMobile: "https://static.spacekitchen.dev/images/bun-02-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/bun-02-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0003", Name: "Beef meteorite patty", Type: ingredient.TypeMain,
			Proteins: 800, Fat: 800, Carbohydrates: 300, Calories: 2674, Price: 3000,
			Image:       "https://static.spacekitchen.dev/images/main-01.png",
			ImageMobile: "https://static.spacekitchen.dev/images/main-01-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/main-01-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0004", Name: "Martian magnolia fillet", Type: ingredient.TypeMain,
			Proteins: 420, Fat: 142, Carbohydrates: 242, Calories: 4242, Price: 424,
			Image:       "https://static.spacekitchen.dev/images/main-02.png",
			ImageMobile: "https://static.spacekitchen.dev/images/main-02-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/main-02-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0005", Name: "Luminescent tetraodontimform steak", Type: ingredient.TypeMain,
			Proteins: 44, Fat: 26, Carbohydrates: 85, Calories: 643, Price: 988,
			Image:       "https://static.spacekitchen.dev/images/main-03.png",
			ImageMobile: "https://static.spacekitchen.dev/images/main-03-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/main-03-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0006", Name: "Asteroid crisps", Type: ingredient.TypeMain,
			Proteins: 234, Fat: 124, Carbohydrates: 110, Calories: 302, Price: 762,
			Image:       "https://static.spacekitchen.dev/images/main-04.png",
			ImageMobile: "https://static.spacekitchen.dev/images/main-04-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/main-04-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0007", Name: "Spicy X sauce", Type: ingredient.TypeSauce,
			Proteins: 30, Fat: 20, Carbohydrates: 40, Calories: 30, Price: 90,
			Image:       "https://static.spacekitchen.dev/images/sauce-01.png",
			ImageMobile: "https://static.spacekitchen.dev/images/sauce-01-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/sauce-01-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0008", Name: "Galactic signature sauce", Type: ingredient.TypeSauce,
			Proteins: 42, Fat: 24, Carbohydrates: 42, Calories: 99, Price: 15,
			Image:       "https://static.spacekitchen.dev/images/sauce-02.png",
			ImageMobile: "https://static.spacekitchen.dev/images/sauce-02-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/sauce-02-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0009", Name: "Antarian traditional sauce", Type: ingredient.TypeSauce,
			Proteins: 101, Fat: 99, Carbohydrates: 100, Calories: 100, Price: 88,
			Image:       "https://static.spacekitchen.dev/images/sauce-03.png",
			ImageMobile: "https://static.spacekitchen.dev/images/sauce-03-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/sauce-03-large.png",
		},
		{
			ID: "64f1c0a1e8d2b0001a3c0010", Name: "Solar rings", Type: ingredient.TypeMain,
			Proteins: 40, Fat: 30, Carbohydrates: 80, Calories: 200, Price: 300,
			Image:       "https://static.spacekitchen.dev/images/main-05.png",
			ImageMobile: "https://static.spacekitchen.dev/images/main-05-mobile.png",
			ImageLarge:  "https://static.spacekitchen.dev/images/main-05-large.png",
		},
	}
}

// BurgerName builds the display name for a new order out of the distinct
// leading words of its ingredient names, e.g.
// "Fluorescent Beef Spicy burger".
func BurgerName(ings []ingredient.Ingredient) string {
	seen := make(map[string]bool, len(ings))
	words := make([]string, 0, len(ings))

	for _, ing := range ings {
		first, _, _ := strings.Cut(ing.Name, " ")

		if first == "" || seen[first] {
			continue
		}

		seen[first] = true
		words = append(words, first)
	}

	if len(words) == 0 {
		return "Burger"
	}

	return strings.Join(words, " ") + " burger"
}
