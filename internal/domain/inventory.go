package domain

// PoolSlotView is one selection pool slot as seen by a host
type PoolSlotView struct {
	Index      int           `json:"index"`
	Ingredient *IngredientID `json:"ingredient,omitempty"` // nil = empty slot
}

// BoardView describes the cutting board
type BoardView struct {
	Ingredient *IngredientID `json:"ingredient,omitempty"`
	Step       int           `json:"step"`
	Steps      int           `json:"steps"`
	Gesture    bool          `json:"gesture_active"`
}

// PipelineView is a host-facing snapshot of the pipeline
type PipelineView struct {
	Stage       Stage          `json:"stage"`
	Loop        int            `json:"loop"`
	CanConfirm  bool           `json:"can_confirm"`
	Pool        []PoolSlotView `json:"pool,omitempty"`
	Inventory   []IngredientID `json:"inventory"`
	Capacity    int            `json:"capacity"`
	Prepared    []IngredientID `json:"prepared,omitempty"`
	Board       *BoardView     `json:"board,omitempty"`
	Pieces      []Piece        `json:"pieces,omitempty"`
	CookedCount int            `json:"cooked_count"`
	MealMessage string         `json:"meal_message,omitempty"` // set when the last loop finished
}
