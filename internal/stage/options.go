package stage

import "github.com/osse101/QuickCooking_Go/internal/domain"

// Options tunes every stage of the pipeline
type Options struct {
	// Selection
	PoolSlots      int
	PerCategory    int
	MinIngredients int

	InventoryCapacity int

	// Preparation
	SlicesPerIngredient int
	SliceTime           float64 // seconds; gestures must finish strictly faster
	MinSliceDistance    float64
	Board               domain.Region

	// Cooking
	MaxPieces   int
	CookSeconds float64 // used when an ingredient has no override
	StirRadius  float64
	StirForce   float64
	Pan         domain.Rect

	// Rewards
	RewardMode  domain.RewardMode
	StageReward float64
	LoopReward  float64

	// MealMessages is the pool a finished loop picks its message from
	MealMessages []string
}

// DefaultOptions returns the stock tuning
func DefaultOptions() Options {
	return Options{
		PoolSlots:           15,
		PerCategory:         3,
		MinIngredients:      3,
		InventoryCapacity:   5,
		SlicesPerIngredient: 3,
		SliceTime:           0.5,
		MinSliceDistance:    0.35,
		Board:               domain.Rect{Min: domain.Point{X: -2, Y: -1.5}, Max: domain.Point{X: 2, Y: 1.5}},
		MaxPieces:           20,
		CookSeconds:         3.0,
		StirRadius:          1.0,
		StirForce:           2.0,
		Pan:                 domain.Rect{Min: domain.Point{X: -3, Y: -3}, Max: domain.Point{X: 3, Y: 3}},
		RewardMode:          domain.RewardPerStage,
		StageReward:         25,
		LoopReward:          100,
		MealMessages: []string{
			"Delicious!",
			"A feast fit for a chef.",
			"Clean plate!",
		},
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.PoolSlots <= 0 {
		o.PoolSlots = d.PoolSlots
	}
	if o.PerCategory < 0 {
		o.PerCategory = 0
	}
	if o.MinIngredients < 0 {
		o.MinIngredients = 0
	}
	if o.InventoryCapacity <= 0 {
		o.InventoryCapacity = d.InventoryCapacity
	}
	if o.SlicesPerIngredient <= 0 {
		o.SlicesPerIngredient = d.SlicesPerIngredient
	}
	if !(o.SliceTime > 0) {
		o.SliceTime = d.SliceTime
	}
	if o.MinSliceDistance < 0 {
		o.MinSliceDistance = 0
	}
	if o.Board == nil {
		o.Board = d.Board
	}
	if o.MaxPieces < 0 {
		o.MaxPieces = 0
	}
	if !(o.CookSeconds >= 0) {
		o.CookSeconds = d.CookSeconds
	}
	if o.RewardMode != domain.RewardPerLoop {
		o.RewardMode = domain.RewardPerStage
	}
	return o
}
