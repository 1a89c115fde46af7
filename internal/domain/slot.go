package domain

import (
	"encoding/json"
	"fmt"
)

// SlotKind tags which collection a SlotRef points into
type SlotKind int

// Slot kinds
const (
	// SlotPool is a selection pool ("fridge") slot
	SlotPool SlotKind = iota
	// SlotInventory is a held-ingredient slot
	SlotInventory
)

// String returns the slot kind name
func (k SlotKind) String() string {
	switch k {
	case SlotPool:
		return "pool"
	case SlotInventory:
		return "inventory"
	default:
		return fmt.Sprintf("slot_kind(%d)", int(k))
	}
}

// ParseSlotKind converts a wire name into a SlotKind
func ParseSlotKind(s string) (SlotKind, error) {
	switch s {
	case "pool":
		return SlotPool, nil
	case "inventory":
		return SlotInventory, nil
	}
	return 0, fmt.Errorf("%w: unknown slot kind %q", ErrInvalidInput, s)
}

// MarshalJSON writes the slot kind name
func (k SlotKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// SlotRef addresses one presentation slot
type SlotRef struct {
	Kind  SlotKind `json:"kind"`
	Index int      `json:"index"`
}

// PoolSlot returns a reference to a selection pool slot
func PoolSlot(index int) SlotRef {
	return SlotRef{Kind: SlotPool, Index: index}
}

// InventorySlot returns a reference to an inventory slot
func InventorySlot(index int) SlotRef {
	return SlotRef{Kind: SlotInventory, Index: index}
}
