package stage

import (
	"context"
	"fmt"

	"github.com/osse101/QuickCooking_Go/internal/domain"
)

// slotHandlers is one stage's reaction to a slot tap. A nil handler rejects.
type slotHandlers struct {
	pool      func(ctx context.Context, idx int) error
	inventory func(ctx context.Context, idx int) error
}

// slotTable maps each stage to exactly one handler per slot kind
func (p *Pipeline) slotTable() map[domain.Stage]slotHandlers {
	return map[domain.Stage]slotHandlers{
		domain.StageSelection: {
			pool:      p.pickFromPool,
			inventory: p.returnToPool,
		},
		domain.StagePreparation: {
			inventory: p.placeOnBoard,
		},
		domain.StageCooking:     {},
		domain.StageConsumption: {},
	}
}

// ActivateSlot routes a slot tap to the active stage's handler
func (p *Pipeline) ActivateSlot(ctx context.Context, ref domain.SlotRef) error {
	handlers := p.binder[p.stage]

	var handle func(context.Context, int) error
	switch ref.Kind {
	case domain.SlotPool:
		handle = handlers.pool
	case domain.SlotInventory:
		handle = handlers.inventory
	default:
		return p.reject(ctx, ActionSlot, fmt.Errorf("%w: slot kind %d", domain.ErrInvalidInput, int(ref.Kind)))
	}
	if handle == nil {
		return p.reject(ctx, ActionSlot, fmt.Errorf("%w: %s slot in %s", domain.ErrWrongStage, ref.Kind, p.stage))
	}

	if err := handle(ctx, ref.Index); err != nil {
		return p.reject(ctx, ActionSlot, err)
	}
	return nil
}

// OnSlotActivated reports whether the tapped slot should clear its contents
func (p *Pipeline) OnSlotActivated(ctx context.Context, ref domain.SlotRef) bool {
	return p.ActivateSlot(ctx, ref) == nil
}

// checkOccupancy verifies no ingredient sits in two places at once. Pool
// duplicates are emptied and a board holding a foreign ingredient is cleared.
func (p *Pipeline) checkOccupancy(ctx context.Context) {
	seen := make(map[domain.IngredientID]bool, len(p.pool))
	for i, ing := range p.pool {
		if ing == nil {
			continue
		}
		ok := !seen[ing.ID] && !p.inventory.Contains(ing.ID)
		if !p.reporter.Check(ctx, ok, componentBinder, "ingredient %s occupies pool slot %d twice", ing.ID, i) {
			p.pool[i] = nil
			continue
		}
		seen[ing.ID] = true
	}

	if p.board != nil {
		id := p.board.ingredient.ID
		ok := p.inventory.Contains(id) && !p.prepared[id]
		if !p.reporter.Check(ctx, ok, componentBinder, "board holds %s which is not a pending inventory item", id) {
			p.board = nil
		}
	}
}
