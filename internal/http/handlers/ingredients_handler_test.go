package handlers_test

import (
	"net/http"
	"testing"
)

func TestListIngredients(t *testing.T) {
	app := newTestApp(t)

	status, body := app.do(t, http.MethodGet, "/api/ingredients", nil, "")

	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}

	if success, _ := body["success"].(bool); !success {
		t.Fatalf("success = %v, want true", body["success"])
	}

	data, _ := body["data"].([]any)

	if len(data) == 0 {
		t.Fatal("catalog is empty")
	}

	types := make(map[string]int)

	for _, el := range data {
		ing, _ := el.(map[string]any)

		for _, field := range []string{"_id", "name", "type", "image", "image_mobile", "image_large"} {
			if s, _ := ing[field].(string); s == "" {
				t.Errorf("ingredient %v: %s missing", ing["_id"], field)
			}
		}

		for _, field := range []string{"proteins", "fat", "carbohydrates", "calories", "price"} {
			if v, _ := ing[field].(float64); v <= 0 {
				t.Errorf("ingredient %v: %s = %v, want positive", ing["_id"], field, ing[field])
			}
		}

		typ, _ := ing["type"].(string)
		types[typ]++
	}

	for _, typ := range []string{"bun", "main", "sauce"} {
		if types[typ] == 0 {
			t.Errorf("catalog has no %s ingredients", typ)
		}
	}

	for typ := range types {
		if typ != "bun" && typ != "main" && typ != "sauce" {
			t.Errorf("unexpected ingredient type %q", typ)
		}
	}
}
