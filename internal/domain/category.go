package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FoodCategory is one of the fixed partitions of the ingredient catalog.
// The numeric order is the unlock scan order.
type FoodCategory int

// Food categories
const (
	CategoryDairy FoodCategory = iota
	CategoryFruit
	CategoryGrain
	CategoryProtein
	CategoryVegetable
)

// categoryNames maps each category to its stable config/wire name
var categoryNames = [...]string{
	CategoryDairy:     "dairy",
	CategoryFruit:     "fruit",
	CategoryGrain:     "grain",
	CategoryProtein:   "protein",
	CategoryVegetable: "vegetable",
}

// AllCategories returns every category in enumeration order
func AllCategories() []FoodCategory {
	return []FoodCategory{
		CategoryDairy,
		CategoryFruit,
		CategoryGrain,
		CategoryProtein,
		CategoryVegetable,
	}
}

// CategoryCount is the number of food categories
const CategoryCount = len(categoryNames)

// String returns the wire name of the category
func (c FoodCategory) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is a known category
func (c FoodCategory) Valid() bool {
	return c >= 0 && int(c) < len(categoryNames)
}

// ParseCategory converts a wire name into a FoodCategory
func ParseCategory(s string) (FoodCategory, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return FoodCategory(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText implements encoding.TextMarshaler so categories serialize by name
// in JSON, YAML and map keys.
func (c FoodCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *FoodCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON writes the category name
func (c FoodCategory) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON reads a category name
func (c *FoodCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, string(data))
	}
	return c.UnmarshalText([]byte(s))
}
