// Package progression tracks experience and which categories and ingredients
// a session has unlocked.
package progression

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/invariant"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/sampler"
)

// Ledger exclusively owns experience and unlock state for one session.
// It is not safe for concurrent use; hosts serialize access per session.
type Ledger struct {
	catalog   *catalog.Catalog
	sampler   *sampler.Sampler
	publisher event.Publisher
	reporter  *invariant.Reporter
	opts      Options

	experience float64
	threshold  float64

	categories  [domain.CategoryCount]bool
	ingredients [domain.CategoryCount]map[domain.IngredientID]bool

	allUnlockedAnnounced bool
}

// NewLedger creates a ledger with the option's initial categories unlocked.
// No ingredients are unlocked until GrantLoopIngredients or UnlockRandomIngredients runs.
func NewLedger(cat *catalog.Catalog, s *sampler.Sampler, publisher event.Publisher, reporter *invariant.Reporter, opts Options) *Ledger {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	if reporter == nil {
		reporter = invariant.NewReporter(publisher)
	}
	opts = opts.normalized()

	l := &Ledger{
		catalog:   cat,
		sampler:   s,
		publisher: publisher,
		reporter:  reporter,
		opts:      opts,
		threshold: opts.InitialThreshold,
	}
	for i := range l.ingredients {
		l.ingredients[i] = make(map[domain.IngredientID]bool)
	}
	for _, c := range opts.InitialCategories {
		if c.Valid() {
			l.categories[c] = true
		}
	}
	l.allUnlockedAnnounced = l.AllCategoriesUnlocked()
	return l
}

// AddExperience adds amount and resolves every threshold it crosses. Each
// crossing unlocks the first locked category in enumeration order; once all
// categories are unlocked further crossings unlock nothing. Negative, NaN and
// infinite amounts are rejected without changing state.
func (l *Ledger) AddExperience(ctx context.Context, amount float64) domain.AwardResult {
	log := logger.FromContext(ctx)

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		log.Debug(LogMsgExperienceRejected, "amount", amount, "reason", domain.ErrInvalidExperience)
		return domain.AwardResult{
			Accepted:            false,
			Amount:              amount,
			Experience:          l.experience,
			NextUnlockThreshold: l.threshold,
		}
	}

	l.experience += amount

	result := domain.AwardResult{Accepted: true, Amount: amount}
	for l.experience >= l.threshold {
		if l.opts.GrowthFactor == 1 && l.AllCategoriesUnlocked() {
			// flat thresholds with nothing left to unlock: drain in one step
			result.ThresholdsCrossed += int(math.Floor(l.experience / l.threshold))
			l.experience = math.Mod(l.experience, l.threshold)
			break
		}
		l.experience -= l.threshold
		l.threshold *= l.opts.GrowthFactor
		result.ThresholdsCrossed++

		if cat, ok := l.firstLockedCategory(); ok {
			l.unlockCategory(ctx, cat)
			result.UnlockedCategories = append(result.UnlockedCategories, cat)
		}
	}

	result.Experience = l.experience
	result.NextUnlockThreshold = l.threshold

	log.Debug(LogMsgExperienceAwarded,
		"amount", amount,
		"experience", l.experience,
		"next_threshold", l.threshold,
		"crossed", result.ThresholdsCrossed)
	l.publish(ctx, event.NewExperienceAwardedEvent(amount, l.experience, l.threshold, result.ThresholdsCrossed))

	l.checkInvariants(ctx)
	return result
}

func (l *Ledger) firstLockedCategory() (domain.FoodCategory, bool) {
	for _, c := range domain.AllCategories() {
		if !l.categories[c] {
			return c, true
		}
	}
	return 0, false
}

func (l *Ledger) unlockCategory(ctx context.Context, cat domain.FoodCategory) {
	l.categories[cat] = true
	logger.FromContext(ctx).Info(LogMsgCategoryUnlocked, "category", cat.String())
	l.publish(ctx, event.NewCategoryUnlockedEvent(cat))

	if !l.allUnlockedAnnounced && l.AllCategoriesUnlocked() {
		l.allUnlockedAnnounced = true
		logger.FromContext(ctx).Info(LogMsgAllUnlocked)
		l.publish(ctx, event.NewAllUnlockedEvent(MsgAllUnlocked))
	}
}

// UnlockRandomIngredients unlocks up to amount random ingredients of category
// that are not yet unlocked. It returns false when the category is locked or
// already fully unlocked.
func (l *Ledger) UnlockRandomIngredients(ctx context.Context, category domain.FoodCategory, amount int) bool {
	if !category.Valid() || !l.categories[category] {
		return false
	}

	locked := l.lockedIngredients(category)
	if len(locked) == 0 {
		return false
	}

	drawn := sampler.SampleWithoutReplacement(l.sampler, locked, amount)
	for _, id := range drawn {
		l.ingredients[category][id] = true
	}

	if len(drawn) > 0 {
		logger.FromContext(ctx).Info(LogMsgIngredientsUnlock,
			"category", category.String(),
			"ingredients", drawn,
			"unlocked", len(l.ingredients[category]),
			"total", l.catalog.CountOf(category))
		l.publish(ctx, event.NewIngredientUnlockedEvent(category, drawn))
	}

	l.checkInvariants(ctx)
	return true
}

// lockedIngredients returns the catalog ingredients of category not yet unlocked, in catalog order
func (l *Ledger) lockedIngredients(category domain.FoodCategory) []domain.IngredientID {
	var locked []domain.IngredientID
	for _, ing := range l.catalog.IngredientsOf(category) {
		if !l.ingredients[category][ing.ID] {
			locked = append(locked, ing.ID)
		}
	}
	return locked
}

// GrantLoopIngredients unlocks IngredientsPerLoop ingredients in every
// unlocked category. Run at session start and at every new loop.
func (l *Ledger) GrantLoopIngredients(ctx context.Context) {
	for _, c := range domain.AllCategories() {
		if l.categories[c] {
			l.UnlockRandomIngredients(ctx, c, l.opts.IngredientsPerLoop)
		}
	}
}

// checkInvariants clamps any category whose unlocked set escaped the catalog
func (l *Ledger) checkInvariants(ctx context.Context) {
	for _, c := range domain.AllCategories() {
		unlocked := l.ingredients[c]
		total := l.catalog.CountOf(c)

		if len(unlocked) > 0 && !l.reporter.Check(ctx, l.categories[c], componentLedger,
			"category %s has %d unlocked ingredients while locked", c, len(unlocked)) {
			l.ingredients[c] = make(map[domain.IngredientID]bool)
			continue
		}

		if !l.reporter.Check(ctx, len(unlocked) <= total, componentLedger,
			"category %s unlocked %d of %d ingredients", c, len(unlocked), total) {
			l.clampToCatalog(c)
		}
	}

	l.reporter.Check(ctx, l.experience >= 0 && l.experience < l.threshold, componentLedger,
		"experience %.3f outside [0, %.3f)", l.experience, l.threshold)
}

func (l *Ledger) clampToCatalog(c domain.FoodCategory) {
	valid := make(map[domain.IngredientID]bool, len(l.ingredients[c]))
	for _, ing := range l.catalog.IngredientsOf(c) {
		if l.ingredients[c][ing.ID] {
			valid[ing.ID] = true
		}
	}
	l.ingredients[c] = valid
}

func (l *Ledger) publish(ctx context.Context, e event.Event) {
	if err := l.publisher.Publish(ctx, event.WithSession(ctx, e)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", e.Type, "error", err)
	}
}

// Experience returns the experience accumulated toward the next threshold
func (l *Ledger) Experience() float64 { return l.experience }

// NextUnlockThreshold returns the experience needed for the next unlock
func (l *Ledger) NextUnlockThreshold() float64 { return l.threshold }

// Progress returns how full the experience meter is, in [0, 1)
func (l *Ledger) Progress() float64 {
	return l.experience / l.threshold
}

// IsCategoryUnlocked reports whether category is unlocked
func (l *Ledger) IsCategoryUnlocked(category domain.FoodCategory) bool {
	return category.Valid() && l.categories[category]
}

// UnlockedCategories returns unlocked categories in enumeration order
func (l *Ledger) UnlockedCategories() []domain.FoodCategory {
	var out []domain.FoodCategory
	for _, c := range domain.AllCategories() {
		if l.categories[c] {
			out = append(out, c)
		}
	}
	return out
}

// AllCategoriesUnlocked reports whether every category is unlocked
func (l *Ledger) AllCategoriesUnlocked() bool {
	for _, unlocked := range l.categories {
		if !unlocked {
			return false
		}
	}
	return true
}

// UnlockedIngredients returns the unlocked ingredients of category in catalog order
func (l *Ledger) UnlockedIngredients(category domain.FoodCategory) []domain.Ingredient {
	if !category.Valid() {
		return nil
	}
	var out []domain.Ingredient
	for _, ing := range l.catalog.IngredientsOf(category) {
		if l.ingredients[category][ing.ID] {
			out = append(out, ing)
		}
	}
	return out
}

// IsIngredientUnlocked reports whether the ingredient is unlocked
func (l *Ledger) IsIngredientUnlocked(id domain.IngredientID) bool {
	ing, ok := l.catalog.Get(id)
	if !ok {
		return false
	}
	return l.ingredients[ing.Category][id]
}

// Snapshot returns a copy of the ledger state
func (l *Ledger) Snapshot() domain.ProgressionSnapshot {
	snap := domain.ProgressionSnapshot{
		Experience:          l.experience,
		NextUnlockThreshold: l.threshold,
		Progress:            l.Progress(),
		UnlockedCategories:  l.UnlockedCategories(),
		UnlockedIngredients: make(map[domain.FoodCategory][]domain.IngredientID),
		AllUnlocked:         l.AllCategoriesUnlocked(),
	}
	for _, c := range snap.UnlockedCategories {
		snap.UnlockedIngredients[c] = domain.IngredientIDs(l.UnlockedIngredients(c))
	}
	return snap
}

// String is a compact form used in logs
func (l *Ledger) String() string {
	return fmt.Sprintf("xp=%.1f/%.1f categories=%v", l.experience, l.threshold, l.UnlockedCategories())
}
