package domain

import "github.com/google/uuid"

// Piece is one cooked sub-unit of a prepared ingredient
type Piece struct {
	ID           uuid.UUID    `json:"id"`
	IngredientID IngredientID `json:"ingredient_id"`
	Position     Point        `json:"position"`
	CookProgress float64      `json:"cook_progress"` // 0..1
	Cooked       bool         `json:"cooked"`
}
