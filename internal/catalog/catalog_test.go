package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/domain"
)

func ing(id string, cat domain.FoodCategory) domain.Ingredient {
	return domain.Ingredient{ID: domain.IngredientID(id), Category: cat, DisplayName: id}
}

func TestNew_GroupsByCategoryInDefinitionOrder(t *testing.T) {
	c, err := New([]domain.Ingredient{
		ing("apple", domain.CategoryFruit),
		ing("cheese", domain.CategoryDairy),
		ing("kiwi", domain.CategoryFruit),
		ing("banana", domain.CategoryFruit),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]domain.IngredientID{"apple", "kiwi", "banana"},
		domain.IngredientIDs(c.IngredientsOf(domain.CategoryFruit)))
	assert.Equal(t, 1, c.CountOf(domain.CategoryDairy))
	assert.Equal(t, 0, c.CountOf(domain.CategoryGrain))
	assert.Empty(t, c.IngredientsOf(domain.CategoryGrain))
	assert.Equal(t, []domain.FoodCategory{domain.CategoryDairy, domain.CategoryFruit}, c.Categories())
	assert.Equal(t, 4, c.Len())
}

func TestNew_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   []domain.Ingredient
		wantErr error
	}{
		{"duplicate id", []domain.Ingredient{ing("egg", domain.CategoryProtein), ing("egg", domain.CategoryDairy)}, ErrDuplicateIngredient},
		{"empty id", []domain.Ingredient{ing("", domain.CategoryFruit)}, ErrInvalidConfig},
		{"invalid category", []domain.Ingredient{ing("rock", domain.FoodCategory(42))}, ErrInvalidConfig},
		{"negative cook time", []domain.Ingredient{{ID: "toast", Category: domain.CategoryGrain, CookSeconds: -1}}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c, err := New([]domain.Ingredient{ing("apple", domain.CategoryFruit)})
	require.NoError(t, err)

	fruit := c.IngredientsOf(domain.CategoryFruit)
	fruit[0].ID = "mutated"
	all := c.All()
	all[0].ID = "mutated"

	got, ok := c.Get("apple")
	require.True(t, ok)
	assert.Equal(t, domain.IngredientID("apple"), got.ID)
	assert.Equal(t, domain.IngredientID("apple"), c.IngredientsOf(domain.CategoryFruit)[0].ID)
}

func TestCatalog_GetUnknown(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	_, ok := c.Get("dragonfruit")
	assert.False(t, ok)
	assert.Nil(t, c.IngredientsOf(domain.FoodCategory(-1)))
}

func TestDefault(t *testing.T) {
	c, err := Default(context.Background())
	require.NoError(t, err)

	for _, cat := range domain.AllCategories() {
		assert.Equal(t, 6, c.CountOf(cat), "category %s", cat)
	}

	apple, ok := c.Get("apple")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryFruit, apple.Category)
	assert.Equal(t, "Apple", apple.DisplayName)
	assert.Equal(t, "fruit/apple/fridge", apple.Sprites.Fridge)

	capsicum, ok := c.Get("capsicum")
	require.True(t, ok)
	assert.Equal(t, "Capsicum (Bell Pepper)", capsicum.DisplayName)

	chicken, ok := c.Get("chicken")
	require.True(t, ok)
	assert.InDelta(t, 4.0, chicken.CookSeconds, 1e-9)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingredients.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader()

	t.Run("valid file", func(t *testing.T) {
		path := writeTemp(t, `{
			"version": "1.0",
			"description": "test",
			"ingredients": [
				{"id": "sweet_potato", "category": "vegetable", "cook_seconds": 5},
				{"id": "milk", "category": "dairy", "display_name": "Whole Milk"}
			]
		}`)

		config, err := loader.Load(path)
		require.NoError(t, err)
		require.Len(t, config.Ingredients, 2)

		c, err := loader.Build(context.Background(), config)
		require.NoError(t, err)

		potato, ok := c.Get("sweet_potato")
		require.True(t, ok)
		assert.Equal(t, "Sweet Potato", potato.DisplayName)
		assert.Equal(t, domain.CategoryVegetable, potato.Category)

		milk, ok := c.Get("milk")
		require.True(t, ok)
		assert.Equal(t, "Whole Milk", milk.DisplayName)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := loader.Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorContains(t, err, "failed to read ingredient catalog file")
	})

	t.Run("schema violation", func(t *testing.T) {
		path := writeTemp(t, `{"version": "1.0", "ingredients": [{"id": "tofu", "category": "legume"}]}`)
		_, err := loader.Load(path)
		assert.ErrorContains(t, err, "schema validation failed")
	})

	t.Run("missing ingredients", func(t *testing.T) {
		path := writeTemp(t, `{"version": "1.0"}`)
		_, err := loader.Load(path)
		assert.Error(t, err)
	})
}

func TestLoader_Validate(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{"nil config", nil, ErrInvalidConfig},
		{"no ingredients", &Config{Version: "1.0"}, ErrInvalidConfig},
		{"duplicate", &Config{Ingredients: []Def{{ID: "rice", Category: "grain"}, {ID: "rice", Category: "grain"}}}, ErrDuplicateIngredient},
		{"unknown category", &Config{Ingredients: []Def{{ID: "rock", Category: "mineral"}}}, ErrInvalidConfig},
		{"negative cook", &Config{Ingredients: []Def{{ID: "rice", Category: "grain", CookSeconds: -2}}}, ErrInvalidConfig},
		{"valid", &Config{Ingredients: []Def{{ID: "rice", Category: "grain"}}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loader.Validate(tt.config)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
