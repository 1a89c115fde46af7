package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/QuickCooking_Go/configs"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/progression"
	"github.com/osse101/QuickCooking_Go/internal/session"
	"github.com/osse101/QuickCooking_Go/internal/stage"
)

// Game is the tunable game balance, read from YAML
type Game struct {
	Progression ProgressionConfig `yaml:"progression"`
	Rewards     RewardsConfig     `yaml:"rewards"`
	Selection   SelectionConfig   `yaml:"selection"`
	Inventory   InventoryConfig   `yaml:"inventory"`
	Preparation PreparationConfig `yaml:"preparation"`
	Cooking     CookingConfig     `yaml:"cooking"`
	Meal        MealConfig        `yaml:"meal"`
}

// ProgressionConfig tunes experience thresholds and unlocks
type ProgressionConfig struct {
	InitialThreshold   float64  `yaml:"initial_threshold" validate:"gt=0"`
	GrowthFactor       float64  `yaml:"growth_factor" validate:"gte=1"`
	InitialCategories  []string `yaml:"initial_categories" validate:"dive,category"`
	IngredientsPerLoop int      `yaml:"ingredients_per_loop" validate:"gte=0"`
}

// RewardsConfig sets how stage completions pay experience
type RewardsConfig struct {
	Mode        string  `yaml:"mode" validate:"oneof=per_stage per_loop"`
	StageReward float64 `yaml:"stage_reward" validate:"gte=0"`
	LoopReward  float64 `yaml:"loop_reward" validate:"gte=0"`
}

// SelectionConfig tunes the ingredient pool
type SelectionConfig struct {
	PoolSlots      int `yaml:"pool_slots" validate:"gt=0"`
	PerCategory    int `yaml:"per_category" validate:"gte=0"`
	MinIngredients int `yaml:"min_ingredients" validate:"gte=1,ltefield=PoolSlots"`
}

// InventoryConfig sizes the held ingredient slots
type InventoryConfig struct {
	Capacity int `yaml:"capacity" validate:"gt=0"`
}

// PreparationConfig tunes slicing
type PreparationConfig struct {
	SlicesPerIngredient int         `yaml:"slices_per_ingredient" validate:"gt=0"`
	SliceTime           float64     `yaml:"slice_time" validate:"gt=0"`
	MinSliceDistance    float64     `yaml:"min_slice_distance" validate:"gte=0"`
	Board               domain.Rect `yaml:"board"`
}

// CookingConfig tunes piece spawning and stirring
type CookingConfig struct {
	MaxPieces   int         `yaml:"max_pieces" validate:"gte=0"`
	CookSeconds float64     `yaml:"cook_seconds" validate:"gte=0"`
	StirRadius  float64     `yaml:"stir_radius" validate:"gte=0"`
	StirForce   float64     `yaml:"stir_force" validate:"gte=0"`
	Pan         domain.Rect `yaml:"pan"`
}

// MealConfig holds the messages shown when a meal is finished
type MealConfig struct {
	Messages []string `yaml:"messages" validate:"dive,required"`
}

var gameValidator = newGameValidator()

func newGameValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCategory(fl.Field().String())
		return err == nil
	})
	return v
}

// LoadGame reads the embedded defaults and overlays the YAML file at path
// when path is not empty. Keys missing from the file keep their defaults.
func LoadGame(path string) (*Game, error) {
	g, err := DefaultGame()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return g, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("failed to parse game config %s: %w", path, err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config %s: %w", path, err)
	}
	return g, nil
}

// DefaultGame returns the tuning compiled into the binary
func DefaultGame() (*Game, error) {
	data, err := fs.ReadFile(configs.Files, configs.GameFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	var g Game
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse embedded game config: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedded game config: %w", err)
	}
	return &g, nil
}

// Validate checks struct tags, then the geometry and cross-section limits
// the tags cannot express
func (g *Game) Validate() error {
	if err := gameValidator.Struct(g); err != nil {
		return err
	}
	var errs []error
	if !validRect(g.Preparation.Board) {
		errs = append(errs, fmt.Errorf("preparation.board: min must not exceed max"))
	}
	if !validRect(g.Cooking.Pan) {
		errs = append(errs, fmt.Errorf("cooking.pan: min must not exceed max"))
	}
	if g.Selection.MinIngredients > g.Inventory.Capacity {
		errs = append(errs, fmt.Errorf("selection.min_ingredients: %d exceeds inventory.capacity %d",
			g.Selection.MinIngredients, g.Inventory.Capacity))
	}
	return errors.Join(errs...)
}

func validRect(r domain.Rect) bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

// SessionOptions converts the tuning into progression and stage options
func (g *Game) SessionOptions() (session.Options, error) {
	cats := make([]domain.FoodCategory, 0, len(g.Progression.InitialCategories))
	for _, name := range g.Progression.InitialCategories {
		c, err := domain.ParseCategory(name)
		if err != nil {
			return session.Options{}, err
		}
		cats = append(cats, c)
	}

	return session.Options{
		Progression: progression.Options{
			InitialThreshold:   g.Progression.InitialThreshold,
			GrowthFactor:       g.Progression.GrowthFactor,
			InitialCategories:  cats,
			IngredientsPerLoop: g.Progression.IngredientsPerLoop,
		},
		Stage: stage.Options{
			PoolSlots:           g.Selection.PoolSlots,
			PerCategory:         g.Selection.PerCategory,
			MinIngredients:      g.Selection.MinIngredients,
			InventoryCapacity:   g.Inventory.Capacity,
			SlicesPerIngredient: g.Preparation.SlicesPerIngredient,
			SliceTime:           g.Preparation.SliceTime,
			MinSliceDistance:    g.Preparation.MinSliceDistance,
			Board:               g.Preparation.Board,
			MaxPieces:           g.Cooking.MaxPieces,
			CookSeconds:         g.Cooking.CookSeconds,
			StirRadius:          g.Cooking.StirRadius,
			StirForce:           g.Cooking.StirForce,
			Pan:                 g.Cooking.Pan,
			RewardMode:          domain.RewardMode(g.Rewards.Mode),
			StageReward:         g.Rewards.StageReward,
			LoopReward:          g.Rewards.LoopReward,
			MealMessages:        g.Meal.Messages,
		},
	}, nil
}
