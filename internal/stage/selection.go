package stage

import (
	"context"
	"fmt"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/sampler"
)

// populatePool samples PerCategory unlocked ingredients from every unlocked
// category and drops each into a random empty pool slot
func (p *Pipeline) populatePool(ctx context.Context) {
	placed := 0
	for _, cat := range p.ledger.UnlockedCategories() {
		drawn := sampler.SampleWithoutReplacement(p.rng, p.ledger.UnlockedIngredients(cat), p.opts.PerCategory)
		for i := range drawn {
			idx, ok := p.randomEmptyPoolSlot()
			if !ok {
				logger.FromContext(ctx).Warn(LogMsgPoolOverflow, "category", cat.String(), "dropped", len(drawn)-i)
				break
			}
			ing := drawn[i]
			p.pool[idx] = &ing
			placed++
		}
	}
	logger.FromContext(ctx).Debug(LogMsgPoolPopulated, "loop", p.loop, "ingredients", placed, "slots", len(p.pool))
}

func (p *Pipeline) clearPool() {
	for i := range p.pool {
		p.pool[i] = nil
	}
}

func (p *Pipeline) randomEmptyPoolSlot() (int, bool) {
	var empty []int
	for i, ing := range p.pool {
		if ing == nil {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return 0, false
	}
	return empty[p.rng.IntN(len(empty))], true
}

func (p *Pipeline) poolIndexOf(id domain.IngredientID) int {
	for i, ing := range p.pool {
		if ing != nil && ing.ID == id {
			return i
		}
	}
	return -1
}

// TrySelect moves an ingredient from the selection pool into the inventory
func (p *Pipeline) TrySelect(ctx context.Context, id domain.IngredientID) error {
	if p.stage != domain.StageSelection {
		return p.reject(ctx, ActionSelect, fmt.Errorf("%w: %s", domain.ErrWrongStage, p.stage))
	}
	idx := p.poolIndexOf(id)
	if idx < 0 {
		if p.inventory.Contains(id) {
			return p.reject(ctx, ActionSelect, fmt.Errorf("%w: %s", domain.ErrDuplicateIngredient, id))
		}
		return p.reject(ctx, ActionSelect, fmt.Errorf("%w: %s", domain.ErrIngredientNotInPool, id))
	}
	if err := p.pickFromPool(ctx, idx); err != nil {
		return p.reject(ctx, ActionSelect, err)
	}
	return nil
}

// pickFromPool transfers pool slot idx into the inventory
func (p *Pipeline) pickFromPool(ctx context.Context, idx int) error {
	if idx < 0 || idx >= len(p.pool) {
		return fmt.Errorf("%w: pool slot %d", domain.ErrSlotOutOfRange, idx)
	}
	ing := p.pool[idx]
	if ing == nil {
		return fmt.Errorf("%w: pool slot %d", domain.ErrSlotEmpty, idx)
	}
	if err := p.inventory.Add(*ing); err != nil {
		return err
	}
	p.pool[idx] = nil
	p.checkOccupancy(ctx)
	return nil
}

// returnToPool moves inventory slot idx back into a random empty pool slot
func (p *Pipeline) returnToPool(ctx context.Context, idx int) error {
	ing, ok := p.inventory.At(idx)
	if !ok {
		return fmt.Errorf("%w: inventory slot %d", domain.ErrSlotOutOfRange, idx)
	}
	slot, ok := p.randomEmptyPoolSlot()
	if !ok {
		return domain.ErrPoolFull
	}
	p.inventory.Remove(ing.ID)
	p.pool[slot] = &ing
	p.checkOccupancy(ctx)
	return nil
}
