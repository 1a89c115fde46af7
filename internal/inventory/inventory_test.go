package inventory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/domain"
)

func fruit(id string) domain.Ingredient {
	return domain.Ingredient{ID: domain.IngredientID(id), Category: domain.CategoryFruit}
}

func TestNew_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-3).Capacity())
	assert.Equal(t, 2, New(2).Capacity())
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		add     string
		wantErr error
		want    []domain.IngredientID
	}{
		{"empty", nil, "apple", nil, []domain.IngredientID{"apple"}},
		{"appends in order", []string{"apple"}, "kiwi", nil, []domain.IngredientID{"apple", "kiwi"}},
		{"duplicate", []string{"apple", "kiwi"}, "apple", domain.ErrDuplicateIngredient, []domain.IngredientID{"apple", "kiwi"}},
		{"full", []string{"a", "b", "c"}, "d", domain.ErrInventoryFull, []domain.IngredientID{"a", "b", "c"}},
		{"duplicate wins over full", []string{"a", "b", "c"}, "a", domain.ErrDuplicateIngredient, []domain.IngredientID{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := New(3)
			for _, id := range tt.setup {
				require.NoError(t, inv.Add(fruit(id)))
			}

			err := inv.Add(fruit(tt.add))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, inv.IDs())
		})
	}
}

func TestAdd_NeverExceedsCapacity(t *testing.T) {
	inv := New(5)
	for i := 0; i < 20; i++ {
		_ = inv.Add(fruit(fmt.Sprintf("f%d", i%8)))
		require.LessOrEqual(t, inv.Count(), inv.Capacity())
	}
	assert.True(t, inv.Full())
}

func TestRemove(t *testing.T) {
	inv := New(5)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, inv.Add(fruit(id)))
	}

	assert.True(t, inv.Remove("b"))
	assert.Equal(t, []domain.IngredientID{"a", "c"}, inv.IDs())
	assert.False(t, inv.Remove("b"))
	assert.Equal(t, 2, inv.Count())
}

func TestAtAndIndexOf(t *testing.T) {
	inv := New(5)
	require.NoError(t, inv.Add(fruit("mango")))
	require.NoError(t, inv.Add(fruit("kiwi")))

	got, ok := inv.At(1)
	require.True(t, ok)
	assert.Equal(t, domain.IngredientID("kiwi"), got.ID)

	_, ok = inv.At(2)
	assert.False(t, ok)
	_, ok = inv.At(-1)
	assert.False(t, ok)

	assert.Equal(t, 0, inv.IndexOf("mango"))
	assert.Equal(t, -1, inv.IndexOf("apple"))
}

func TestReadyAndClear(t *testing.T) {
	inv := New(5)
	for _, id := range []string{"a", "b"} {
		require.NoError(t, inv.Add(fruit(id)))
	}
	assert.False(t, inv.Ready(3))

	require.NoError(t, inv.Add(fruit("c")))
	assert.True(t, inv.Ready(3))

	inv.Clear()
	assert.Equal(t, 0, inv.Count())
	assert.False(t, inv.Contains("a"))
}

func TestItems_ReturnsCopy(t *testing.T) {
	inv := New(5)
	require.NoError(t, inv.Add(fruit("a")))

	items := inv.Items()
	items[0].ID = "z"

	assert.True(t, inv.Contains("a"))
}
