// Package stage runs the gameplay loop: Selection, Preparation, Cooking and
// Consumption, in that order, with a completion guard per stage.
//
// The pipeline is tick driven and single threaded. It never blocks and never
// starts goroutines; hosts that call it from several goroutines must
// serialize access.
package stage

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/invariant"
	"github.com/osse101/QuickCooking_Go/internal/inventory"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/sampler"
)

// Ledger is the progression state the pipeline reads and rewards
type Ledger interface {
	AddExperience(ctx context.Context, amount float64) domain.AwardResult
	UnlockedCategories() []domain.FoodCategory
	UnlockedIngredients(category domain.FoodCategory) []domain.Ingredient
	GrantLoopIngredients(ctx context.Context)
}

// Pipeline is the stage state machine for one session
type Pipeline struct {
	ledger    Ledger
	rng       *sampler.Sampler
	publisher event.Publisher
	reporter  *invariant.Reporter
	opts      Options

	inventory *inventory.Inventory
	stage     domain.Stage
	loop      int

	// Selection
	pool []*domain.Ingredient

	// Preparation
	board    *boardState
	prepared map[domain.IngredientID]bool
	gesture  *gesture

	// Cooking and Consumption
	pieces      []*pieceState
	cookedCount int

	mealMessage string
	binder      map[domain.Stage]slotHandlers
}

// New builds a pipeline. Call Start before use.
func New(ledger Ledger, rng *sampler.Sampler, publisher event.Publisher, reporter *invariant.Reporter, opts Options) *Pipeline {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	if reporter == nil {
		reporter = invariant.NewReporter(publisher)
	}
	opts = opts.normalized()

	p := &Pipeline{
		ledger:    ledger,
		rng:       rng,
		publisher: publisher,
		reporter:  reporter,
		opts:      opts,
		inventory: inventory.New(opts.InventoryCapacity),
		stage:     domain.StageSelection,
		pool:      make([]*domain.Ingredient, opts.PoolSlots),
		prepared:  make(map[domain.IngredientID]bool),
	}
	p.binder = p.slotTable()
	return p
}

// Start begins the first loop
func (p *Pipeline) Start(ctx context.Context) {
	if p.loop == 0 {
		p.BeginNewLoop(ctx)
	}
}

// BeginNewLoop clears all per-loop state, grants the loop's ingredient
// unlocks, and opens a fresh Selection stage
func (p *Pipeline) BeginNewLoop(ctx context.Context) {
	p.loop++
	p.inventory.Clear()
	p.clearPool()
	p.board = nil
	p.gesture = nil
	p.prepared = make(map[domain.IngredientID]bool)
	p.pieces = nil
	p.cookedCount = 0
	p.stage = domain.StageSelection

	p.ledger.GrantLoopIngredients(ctx)
	p.populatePool(ctx)

	logger.FromContext(ctx).Info(LogMsgLoopStarted, "loop", p.loop)
}

// Reset abandons the loop in progress without reward and starts a new one
func (p *Pipeline) Reset(ctx context.Context) {
	p.mealMessage = ""
	p.BeginNewLoop(ctx)
}

// CurrentStage returns the active stage
func (p *Pipeline) CurrentStage() domain.Stage {
	return p.stage
}

// Loop returns the 1-based loop counter
func (p *Pipeline) Loop() int {
	return p.loop
}

// Inventory exposes the held ingredients read-only
func (p *Pipeline) Inventory() []domain.Ingredient {
	return p.inventory.Items()
}

// Options returns the normalized tuning in effect
func (p *Pipeline) Options() Options {
	return p.opts
}

// Tick advances all timers by elapsed seconds and then evaluates stage guards
func (p *Pipeline) Tick(ctx context.Context, elapsed float64) error {
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) || elapsed < 0 {
		return p.reject(ctx, ActionTick, fmt.Errorf("%w: elapsed %v", domain.ErrInvalidInput, elapsed))
	}

	p.tickGesture(ctx, elapsed)
	if p.stage == domain.StageCooking {
		p.tickPieces(ctx, elapsed)
	}

	p.settle(ctx)
	return nil
}

// ConfirmAdvance leaves Selection when enough ingredients are held. When the
// guard is not met nothing changes and ErrGuardNotSatisfied is returned.
func (p *Pipeline) ConfirmAdvance(ctx context.Context) error {
	if p.stage != domain.StageSelection {
		return p.reject(ctx, ActionConfirm, fmt.Errorf("%w: %s", domain.ErrWrongStage, p.stage))
	}
	if !p.canConfirm() {
		return p.reject(ctx, ActionConfirm, fmt.Errorf("%w: holding %d of %d",
			domain.ErrGuardNotSatisfied, p.inventory.Count(), p.opts.MinIngredients))
	}

	p.completeStage(ctx)
	p.settle(ctx)
	return nil
}

func (p *Pipeline) canConfirm() bool {
	return p.stage == domain.StageSelection && p.inventory.Ready(p.opts.MinIngredients)
}

// guardSatisfied reports whether the active stage may complete on its own.
// Selection always waits for ConfirmAdvance.
func (p *Pipeline) guardSatisfied() bool {
	switch p.stage {
	case domain.StagePreparation:
		return len(p.prepared) == p.inventory.Count()
	case domain.StageCooking:
		return p.cookedCount == len(p.pieces)
	case domain.StageConsumption:
		return len(p.pieces) == 0
	default:
		return false
	}
}

// settle completes stages for as long as their guards hold. A loop
// completion lands in Selection, which stops the chain.
func (p *Pipeline) settle(ctx context.Context) {
	for i := 0; i < len(domain.AllStages()) && p.guardSatisfied(); i++ {
		p.completeStage(ctx)
	}
}

func (p *Pipeline) completeStage(ctx context.Context) {
	from := p.stage
	next := from.Next()

	p.exitStage(from)
	logger.FromContext(ctx).Info(LogMsgStageCompleted, "loop", p.loop, "stage", from.String(), "next", next.String())
	p.publish(ctx, event.NewStageCompletedEvent(p.loop, from, next))

	if p.opts.RewardMode == domain.RewardPerStage {
		p.ledger.AddExperience(ctx, p.opts.StageReward)
	}

	if from == domain.StageConsumption {
		p.completeLoop(ctx)
		return
	}

	p.stage = next
	p.enterStage(ctx, next)
}

func (p *Pipeline) completeLoop(ctx context.Context) {
	eaten := p.inventory.IDs()
	if p.opts.RewardMode == domain.RewardPerLoop {
		p.ledger.AddExperience(ctx, p.opts.LoopReward)
	}

	p.mealMessage = ""
	if n := len(p.opts.MealMessages); n > 0 {
		p.mealMessage = p.opts.MealMessages[p.rng.IntN(n)]
	}

	logger.FromContext(ctx).Info(LogMsgLoopCompleted, "loop", p.loop, "ingredients", eaten)
	p.publish(ctx, event.NewLoopCompletedEvent(p.loop, eaten))

	p.BeginNewLoop(ctx)
}

func (p *Pipeline) exitStage(s domain.Stage) {
	switch s {
	case domain.StageSelection:
		p.clearPool()
	case domain.StagePreparation:
		p.board = nil
		p.gesture = nil
	}
}

func (p *Pipeline) enterStage(ctx context.Context, s domain.Stage) {
	logger.FromContext(ctx).Debug(LogMsgStageEntered, "loop", p.loop, "stage", s.String())

	switch s {
	case domain.StagePreparation:
		p.prepared = make(map[domain.IngredientID]bool, p.inventory.Count())
	case domain.StageCooking:
		p.spawnPieces(ctx)
	}
}

// reject logs and publishes a refused action, then returns err unchanged
func (p *Pipeline) reject(ctx context.Context, action string, err error) error {
	logger.FromContext(ctx).Debug(LogMsgActionRejected, "stage", p.stage.String(), "action", action, "reason", err)
	p.publish(ctx, event.NewActionRejectedEvent(p.stage, action, err))
	return err
}

func (p *Pipeline) publish(ctx context.Context, e event.Event) {
	if err := p.publisher.Publish(ctx, event.WithSession(ctx, e)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", e.Type, "error", err)
	}
}

// View returns a snapshot for hosts
func (p *Pipeline) View() domain.PipelineView {
	v := domain.PipelineView{
		Stage:       p.stage,
		Loop:        p.loop,
		CanConfirm:  p.canConfirm(),
		Inventory:   p.inventory.IDs(),
		Capacity:    p.inventory.Capacity(),
		CookedCount: p.cookedCount,
		MealMessage: p.mealMessage,
	}

	switch p.stage {
	case domain.StageSelection:
		v.Pool = make([]domain.PoolSlotView, len(p.pool))
		for i, ing := range p.pool {
			v.Pool[i] = domain.PoolSlotView{Index: i}
			if ing != nil {
				id := ing.ID
				v.Pool[i].Ingredient = &id
			}
		}
	case domain.StagePreparation:
		v.Prepared = p.preparedIDs()
		v.Board = &domain.BoardView{Steps: p.opts.SlicesPerIngredient, Gesture: p.gesture != nil}
		if p.board != nil {
			id := p.board.ingredient.ID
			v.Board.Ingredient = &id
			v.Board.Step = p.board.step
		}
	case domain.StageCooking, domain.StageConsumption:
		v.Pieces = make([]domain.Piece, len(p.pieces))
		for i, ps := range p.pieces {
			v.Pieces[i] = ps.piece
		}
	}

	return v
}
