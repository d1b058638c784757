package ingredient

// Type classifies an ingredient within a burger build.
type Type string

const (
	TypeBun   Type = "bun"
	TypeMain  Type = "main"
	TypeSauce Type = "sauce"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeBun, TypeMain, TypeSauce:
		return true
	}
	return false
}

// Ingredient is one orderable component of the catalog. The catalog is
// seeded at startup and never mutated through the API.
type Ingredient struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Type          Type   `json:"type"`
	Proteins      int    `json:"proteins"`
	Fat           int    `json:"fat"`
	Carbohydrates int    `json:"carbohydrates"`
	Calories      int    `json:"calories"`
	Price         int    `json:"price"`
	Image         string `json:"image"`
	ImageMobile   string `json:"image_mobile"`
	ImageLarge    string `json:"image_large"`
}
