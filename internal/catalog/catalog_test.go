package catalog

import (
	"testing"

	"github.com/spacekitchen/burgerhub/internal/domain/ingredient"
)

func TestDefaultCatalogIsWellFormed(t *testing.T) {
	ings := Default()

	if len(ings) == 0 {
		t.Fatal("catalog must not be empty")
	}

	seen := make(map[string]bool, len(ings))
	types := make(map[ingredient.Type]int)

	for _, ing := range ings {
		if seen[ing.ID] {
			t.Errorf("duplicate ingredient id %s", ing.ID)
		}
		seen[ing.ID] = true

		if !ing.Type.IsValid() {
			t.Errorf("%s: bad type %q", ing.Name, ing.Type)
		}
		types[ing.Type]++

		if ing.Name == "" || ing.Image == "" {
			t.Errorf("%s: name and image must be set", ing.ID)
		}

		if ing.Proteins <= 0 || ing.Fat <= 0 || ing.Carbohydrates <= 0 || ing.Calories <= 0 || ing.Price <= 0 {
			t.Errorf("%s: nutrition fields and price must be strictly positive", ing.Name)
		}
	}

	for _, typ := range []ingredient.Type{ingredient.TypeBun, ingredient.TypeMain, ingredient.TypeSauce} {
		if types[typ] == 0 {
			t.Errorf("catalog has no %s entries", typ)
		}
	}
}

func TestBurgerName(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"single", []string{"Fluorescent bun R2-D3"}, "Fluorescent burger"},
		{"distinct words", []string{"Fluorescent bun R2-D3", "Spicy X sauce"}, "Fluorescent Spicy burger"},
		{"duplicates collapse", []string{"Spicy X sauce", "Spicy X sauce"}, "Spicy burger"},
		{"empty", nil, "Burger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ings := make([]ingredient.Ingredient, 0, len(tt.names))

			for _, n := range tt.names {
				ings = append(ings, ingredient.Ingredient{Name: n})
			}

			if got := BurgerName(ings); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
