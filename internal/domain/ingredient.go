package domain

// IngredientID identifies an ingredient definition in the catalog
type IngredientID string

// Sprites holds the presentation handles for an ingredient. The core never
// interprets them; hosts resolve them to their own assets.
type Sprites struct {
	Fridge      string `json:"fridge,omitempty"`
	FirstSlice  string `json:"first_slice,omitempty"`
	MiddleSlice string `json:"middle_slice,omitempty"`
	LastSlice   string `json:"last_slice,omitempty"`
	Piece       string `json:"piece,omitempty"`
}

// Ingredient is an immutable catalog definition
type Ingredient struct {
	ID          IngredientID `json:"id"`
	Category    FoodCategory `json:"category"`
	DisplayName string       `json:"display_name"`
	Sprites     Sprites      `json:"sprites"`
	CookSeconds float64      `json:"cook_seconds,omitempty"` // 0 = use the game default
}

// IngredientIDs extracts the ids of the given ingredients, preserving order
func IngredientIDs(ingredients []Ingredient) []IngredientID {
	ids := make([]IngredientID, len(ingredients))
	for i, ing := range ingredients {
		ids[i] = ing.ID
	}
	return ids
}
