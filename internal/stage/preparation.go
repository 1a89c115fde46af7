package stage

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// boardState is the ingredient currently on the cutting board
type boardState struct {
	ingredient domain.Ingredient
	step       int
}

// gesture is a slice in progress, timed by Tick
type gesture struct {
	start   domain.Point
	elapsed float64
}

// placeOnBoard moves inventory slot idx onto the cutting board
func (p *Pipeline) placeOnBoard(ctx context.Context, idx int) error {
	ing, ok := p.inventory.At(idx)
	if !ok {
		return fmt.Errorf("%w: inventory slot %d", domain.ErrSlotOutOfRange, idx)
	}
	if p.board != nil {
		return fmt.Errorf("%w: %s", domain.ErrBoardOccupied, p.board.ingredient.ID)
	}
	if p.prepared[ing.ID] {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyPrepared, ing.ID)
	}
	p.board = &boardState{ingredient: ing}
	p.gesture = nil
	p.checkOccupancy(ctx)
	return nil
}

// TryPrepareAction applies one complete slice gesture from start to end that
// took elapsed seconds. Gestures that are too slow, too short, or miss the
// board are rejected without changing state.
func (p *Pipeline) TryPrepareAction(ctx context.Context, start, end domain.Point, elapsed float64) error {
	if err := p.applySlice(ctx, start, end, elapsed); err != nil {
		return p.reject(ctx, ActionSlice, err)
	}
	p.settle(ctx)
	return nil
}

// BeginSlice starts a tick-timed gesture at start. A gesture not finished
// within SliceTime of accumulated ticks expires.
func (p *Pipeline) BeginSlice(ctx context.Context, start domain.Point) error {
	if err := p.requireBoard(); err != nil {
		return p.reject(ctx, ActionSlice, err)
	}
	p.gesture = &gesture{start: start}
	return nil
}

// EndSlice finishes the gesture started by BeginSlice at end
func (p *Pipeline) EndSlice(ctx context.Context, end domain.Point) error {
	if err := p.requireBoard(); err != nil {
		return p.reject(ctx, ActionSlice, err)
	}
	if p.gesture == nil {
		return p.reject(ctx, ActionSlice, domain.ErrNoGesture)
	}
	g := p.gesture
	p.gesture = nil
	return p.TryPrepareAction(ctx, g.start, end, g.elapsed)
}

func (p *Pipeline) requireBoard() error {
	if p.stage != domain.StagePreparation {
		return fmt.Errorf("%w: %s", domain.ErrWrongStage, p.stage)
	}
	if p.board == nil {
		return domain.ErrBoardEmpty
	}
	return nil
}

func (p *Pipeline) applySlice(ctx context.Context, start, end domain.Point, elapsed float64) error {
	if err := p.requireBoard(); err != nil {
		return err
	}
	if math.IsNaN(elapsed) || elapsed < 0 {
		return fmt.Errorf("%w: elapsed %v", domain.ErrInvalidInput, elapsed)
	}
	if elapsed >= p.opts.SliceTime {
		return fmt.Errorf("%w: %.3fs", domain.ErrSliceTooSlow, elapsed)
	}
	if d := start.Distance(end); d < p.opts.MinSliceDistance || d == 0 {
		return fmt.Errorf("%w: %.3f", domain.ErrSliceTooShort, d)
	}
	if !p.sliceHitsBoard(start, end) {
		return domain.ErrSliceMissed
	}

	p.board.step++
	id := p.board.ingredient.ID
	logger.FromContext(ctx).Debug(LogMsgIngredientSliced, "ingredient", id, "step", p.board.step, "steps", p.opts.SlicesPerIngredient)

	if p.board.step >= p.opts.SlicesPerIngredient {
		p.prepared[id] = true
		p.board = nil
		logger.FromContext(ctx).Info(LogMsgIngredientReady, "ingredient", id,
			"prepared", len(p.prepared), "total", p.inventory.Count())
	}
	return nil
}

// sliceHitsBoard tests the gesture's start, midpoint and end against the board
func (p *Pipeline) sliceHitsBoard(start, end domain.Point) bool {
	return p.opts.Board.Contains(start) ||
		p.opts.Board.Contains(start.Midpoint(end)) ||
		p.opts.Board.Contains(end)
}

func (p *Pipeline) tickGesture(ctx context.Context, elapsed float64) {
	if p.gesture == nil {
		return
	}
	p.gesture.elapsed += elapsed
	if p.gesture.elapsed > p.opts.SliceTime {
		logger.FromContext(ctx).Debug(LogMsgGestureExpired, "elapsed", p.gesture.elapsed)
		p.gesture = nil
	}
}

func (p *Pipeline) preparedIDs() []domain.IngredientID {
	ids := make([]domain.IngredientID, 0, len(p.prepared))
	for _, ing := range p.inventory.Items() {
		if p.prepared[ing.ID] {
			ids = append(ids, ing.ID)
		}
	}
	return ids
}
