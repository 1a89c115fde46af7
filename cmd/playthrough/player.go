package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/session"
)

const (
	cookTick = 0.1
	// maxTicksPerLoop stops a loop that never finishes cooking
	maxTicksPerLoop = 10000
)

var errStuck = errors.New("playthrough stuck")

// LoopReport is what one finished loop looked like
type LoopReport struct {
	Loop        int                   `json:"loop"`
	Ingredients []domain.IngredientID `json:"ingredients"`
	Pieces      int                   `json:"pieces"`
	Ticks       int                   `json:"ticks"`
	Experience  float64               `json:"experience"`
	Threshold   float64               `json:"next_unlock_threshold"`
	Categories  []domain.FoodCategory `json:"unlocked_categories"`
	MealMessage string                `json:"meal_message,omitempty"`
}

// Report summarizes a whole playthrough
type Report struct {
	Seed        int64                      `json:"seed"`
	Loops       []LoopReport               `json:"loops"`
	Progression domain.ProgressionSnapshot `json:"progression"`
}

// player drives one session through complete loops the way a tidy player
// would: pick the first available ingredients, slice each across the board,
// wait for the pan, eat everything.
type player struct {
	s *session.Session
}

// Play runs loops loops and reports each
func (pl *player) Play(ctx context.Context, loops int) (*Report, error) {
	ctx = pl.s.Context(ctx)
	report := &Report{Seed: pl.s.Seed}

	for i := 0; i < loops; i++ {
		lr, err := pl.playLoop(ctx)
		if err != nil {
			return report, fmt.Errorf("loop %d: %w", pl.s.Pipeline.Loop(), err)
		}
		report.Loops = append(report.Loops, lr)

		logger.FromContext(ctx).Info("Loop finished",
			"loop", lr.Loop,
			"ingredients", lr.Ingredients,
			"pieces", lr.Pieces,
			"experience", lr.Experience,
			"next_threshold", lr.Threshold,
			"categories", lr.Categories)
	}

	report.Progression = pl.s.Ledger.Snapshot()
	return report, nil
}

func (pl *player) playLoop(ctx context.Context) (LoopReport, error) {
	p := pl.s.Pipeline
	lr := LoopReport{Loop: p.Loop()}

	if err := pl.selectIngredients(ctx); err != nil {
		return lr, err
	}
	lr.Ingredients = p.View().Inventory

	if err := pl.prepare(ctx); err != nil {
		return lr, err
	}

	// zero pieces finish the loop during prepare
	if p.CurrentStage() == domain.StageCooking {
		lr.Pieces = len(p.Pieces())
		pan := p.Options().Pan
		if err := p.TryStir(ctx, pan.Center()); err != nil {
			return lr, err
		}
		for p.CurrentStage() == domain.StageCooking {
			if lr.Ticks >= maxTicksPerLoop {
				return lr, fmt.Errorf("%w: pan never finished after %d ticks", errStuck, lr.Ticks)
			}
			if err := p.Tick(ctx, cookTick); err != nil {
				return lr, err
			}
			lr.Ticks++
		}
	}

	if p.CurrentStage() == domain.StageConsumption {
		for _, piece := range p.Pieces() {
			if err := p.TryEat(ctx, piece.ID); err != nil {
				return lr, err
			}
		}
	}

	if p.Loop() != lr.Loop+1 || p.CurrentStage() != domain.StageSelection {
		return lr, fmt.Errorf("%w: in %s of loop %d", errStuck, p.CurrentStage(), p.Loop())
	}

	lr.Experience = pl.s.Ledger.Experience()
	lr.Threshold = pl.s.Ledger.NextUnlockThreshold()
	lr.Categories = pl.s.Ledger.UnlockedCategories()
	lr.MealMessage = p.View().MealMessage
	return lr, nil
}

func (pl *player) selectIngredients(ctx context.Context) error {
	p := pl.s.Pipeline
	want := p.Options().MinIngredients

	for _, slot := range p.View().Pool {
		if len(p.View().Inventory) >= want {
			break
		}
		if slot.Ingredient == nil {
			continue
		}
		if err := p.ActivateSlot(ctx, domain.PoolSlot(slot.Index)); err != nil {
			return err
		}
	}

	if !p.View().CanConfirm {
		return fmt.Errorf("%w: only %d ingredients on offer, need %d", errStuck, len(p.View().Inventory), want)
	}
	return p.ConfirmAdvance(ctx)
}

func (pl *player) prepare(ctx context.Context) error {
	p := pl.s.Pipeline
	opts := p.Options()
	board, ok := opts.Board.(domain.Rect)
	if !ok {
		return fmt.Errorf("%w: board is %T, need a rectangle to aim at", errStuck, opts.Board)
	}
	center := board.Center()
	start := domain.Point{X: board.Min.X, Y: center.Y}
	end := domain.Point{X: board.Max.X, Y: center.Y}

	held := len(p.View().Inventory)
	for i := 0; i < held && p.CurrentStage() == domain.StagePreparation; i++ {
		if err := p.ActivateSlot(ctx, domain.InventorySlot(i)); err != nil {
			return err
		}
		for step := 0; step < opts.SlicesPerIngredient; step++ {
			if err := p.TryPrepareAction(ctx, start, end, opts.SliceTime/2); err != nil {
				return err
			}
		}
		slog.Debug("Ingredient prepared", "slot", i)
	}
	return nil
}
