package progression

import "github.com/osse101/QuickCooking_Go/internal/domain"

// Defaults
const (
	DefaultInitialThreshold   = 100.0
	DefaultGrowthFactor       = 1.1
	DefaultIngredientsPerLoop = 3
)

// Options tunes the ledger
type Options struct {
	// InitialThreshold is the experience needed for the first category unlock
	InitialThreshold float64
	// GrowthFactor multiplies the threshold after each crossing
	GrowthFactor float64
	// InitialCategories are unlocked when the ledger is created
	InitialCategories []domain.FoodCategory
	// IngredientsPerLoop is how many ingredients GrantLoopIngredients unlocks per category
	IngredientsPerLoop int
}

// DefaultOptions starts with fruit unlocked and a 100 point first threshold
func DefaultOptions() Options {
	return Options{
		InitialThreshold:   DefaultInitialThreshold,
		GrowthFactor:       DefaultGrowthFactor,
		InitialCategories:  []domain.FoodCategory{domain.CategoryFruit},
		IngredientsPerLoop: DefaultIngredientsPerLoop,
	}
}

func (o Options) normalized() Options {
	if !(o.InitialThreshold > 0) {
		o.InitialThreshold = DefaultInitialThreshold
	}
	if !(o.GrowthFactor >= 1) {
		o.GrowthFactor = DefaultGrowthFactor
	}
	if o.IngredientsPerLoop < 0 {
		o.IngredientsPerLoop = 0
	}
	return o
}
