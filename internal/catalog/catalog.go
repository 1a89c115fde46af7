// Package catalog is the immutable registry of ingredient definitions grouped
// by food category.
package catalog

import (
	"errors"
	"fmt"

	"github.com/osse101/QuickCooking_Go/internal/domain"
)

// Sentinel errors for catalog construction
var (
	ErrDuplicateIngredient = errors.New("duplicate ingredient id")
	ErrInvalidConfig       = errors.New("invalid catalog configuration")
)

// Catalog holds every ingredient definition. It is read-only once built and
// safe for concurrent use.
type Catalog struct {
	all        []domain.Ingredient
	byID       map[domain.IngredientID]int
	byCategory [domain.CategoryCount][]domain.Ingredient
}

// New builds a catalog from ingredient definitions, preserving their order
func New(ingredients []domain.Ingredient) (*Catalog, error) {
	c := &Catalog{
		all:  make([]domain.Ingredient, 0, len(ingredients)),
		byID: make(map[domain.IngredientID]int, len(ingredients)),
	}

	for i, ing := range ingredients {
		if ing.ID == "" {
			return nil, fmt.Errorf(ErrFmtEmptyID, ErrInvalidConfig, i)
		}
		if !ing.Category.Valid() {
			return nil, fmt.Errorf(ErrFmtUnknownCategory, ErrInvalidConfig, ing.ID, ing.Category)
		}
		if _, exists := c.byID[ing.ID]; exists {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateIngredient, ing.ID)
		}
		if ing.CookSeconds < 0 {
			return nil, fmt.Errorf(ErrFmtNegativeCookSeconds, ErrInvalidConfig, ing.ID)
		}

		c.byID[ing.ID] = len(c.all)
		c.all = append(c.all, ing)
		c.byCategory[ing.Category] = append(c.byCategory[ing.Category], ing)
	}

	return c, nil
}

// IngredientsOf returns the category's ingredients in definition order.
// The result is a copy.
func (c *Catalog) IngredientsOf(category domain.FoodCategory) []domain.Ingredient {
	if !category.Valid() {
		return nil
	}
	src := c.byCategory[category]
	out := make([]domain.Ingredient, len(src))
	copy(out, src)
	return out
}

// CountOf returns the number of ingredients defined for category
func (c *Catalog) CountOf(category domain.FoodCategory) int {
	if !category.Valid() {
		return 0
	}
	return len(c.byCategory[category])
}

// All returns every ingredient in definition order
func (c *Catalog) All() []domain.Ingredient {
	out := make([]domain.Ingredient, len(c.all))
	copy(out, c.all)
	return out
}

// Get looks up an ingredient by id
func (c *Catalog) Get(id domain.IngredientID) (domain.Ingredient, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Ingredient{}, false
	}
	return c.all[idx], true
}

// Categories returns the categories that have at least one ingredient, in
// enumeration order
func (c *Catalog) Categories() []domain.FoodCategory {
	var out []domain.FoodCategory
	for _, cat := range domain.AllCategories() {
		if len(c.byCategory[cat]) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Len returns the total number of ingredients
func (c *Catalog) Len() int {
	return len(c.all)
}
