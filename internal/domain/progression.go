package domain

// ProgressionSnapshot is a read-only copy of a ledger's state
type ProgressionSnapshot struct {
	Experience          float64                         `json:"experience"`
	NextUnlockThreshold float64                         `json:"next_unlock_threshold"`
	Progress            float64                         `json:"progress"` // experience / threshold, for fill bars
	UnlockedCategories  []FoodCategory                  `json:"unlocked_categories"`
	UnlockedIngredients map[FoodCategory][]IngredientID `json:"unlocked_ingredients"`
	AllUnlocked         bool                            `json:"all_unlocked"`
}

// AwardResult describes the outcome of a single experience grant
type AwardResult struct {
	Accepted            bool           `json:"accepted"`
	Amount              float64        `json:"amount"`
	Experience          float64        `json:"experience"`
	NextUnlockThreshold float64        `json:"next_unlock_threshold"`
	ThresholdsCrossed   int            `json:"thresholds_crossed"`
	UnlockedCategories  []FoodCategory `json:"unlocked_categories,omitempty"`
}
