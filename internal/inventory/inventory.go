// Package inventory holds the ingredients a player is carrying through a loop.
package inventory

import (
	"fmt"

	"github.com/osse101/QuickCooking_Go/internal/domain"
)

// DefaultCapacity is the number of held-ingredient slots
const DefaultCapacity = 5

// Inventory is an ordered, bounded, duplicate-free set of ingredients.
// Capacity overflow is never resolved by eviction; Add rejects instead.
type Inventory struct {
	items    []domain.Ingredient
	capacity int
}

// New creates an empty inventory. Non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inventory{
		items:    make([]domain.Ingredient, 0, capacity),
		capacity: capacity,
	}
}

// Add appends ing. Returns ErrDuplicateIngredient or ErrInventoryFull on rejection,
// leaving the inventory unchanged.
func (inv *Inventory) Add(ing domain.Ingredient) error {
	if inv.Contains(ing.ID) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateIngredient, ing.ID)
	}
	if len(inv.items) >= inv.capacity {
		return fmt.Errorf("%w: capacity %d", domain.ErrInventoryFull, inv.capacity)
	}
	inv.items = append(inv.items, ing)
	return nil
}

// Remove deletes id, keeping the order of the rest. Returns false if absent.
func (inv *Inventory) Remove(id domain.IngredientID) bool {
	idx := inv.IndexOf(id)
	if idx < 0 {
		return false
	}
	inv.items = append(inv.items[:idx], inv.items[idx+1:]...)
	return true
}

// IndexOf returns the slot index of id, or -1
func (inv *Inventory) IndexOf(id domain.IngredientID) int {
	for i, ing := range inv.items {
		if ing.ID == id {
			return i
		}
	}
	return -1
}

// At returns the ingredient in slot index
func (inv *Inventory) At(index int) (domain.Ingredient, bool) {
	if index < 0 || index >= len(inv.items) {
		return domain.Ingredient{}, false
	}
	return inv.items[index], true
}

// Contains reports whether id is held
func (inv *Inventory) Contains(id domain.IngredientID) bool {
	return inv.IndexOf(id) >= 0
}

// Count returns the number of held ingredients
func (inv *Inventory) Count() int {
	return len(inv.items)
}

// Capacity returns the maximum number of held ingredients
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

// Full reports whether no slot is free
func (inv *Inventory) Full() bool {
	return len(inv.items) >= inv.capacity
}

// Ready reports whether at least gate ingredients are held
func (inv *Inventory) Ready(gate int) bool {
	return len(inv.items) >= gate
}

// Items returns a copy of the held ingredients in slot order
func (inv *Inventory) Items() []domain.Ingredient {
	out := make([]domain.Ingredient, len(inv.items))
	copy(out, inv.items)
	return out
}

// IDs returns the held ingredient ids in slot order
func (inv *Inventory) IDs() []domain.IngredientID {
	return domain.IngredientIDs(inv.items)
}

// Clear empties the inventory
func (inv *Inventory) Clear() {
	inv.items = inv.items[:0]
}
