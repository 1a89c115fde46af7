package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types
const (
	StageCompleted     Type = domain.EventTypeStageCompleted
	LoopCompleted      Type = domain.EventTypeLoopCompleted
	ActionRejected     Type = domain.EventTypeActionRejected
	ExperienceAwarded  Type = domain.EventTypeExperienceAwarded
	CategoryUnlocked   Type = domain.EventTypeCategoryUnlocked
	IngredientUnlocked Type = domain.EventTypeIngredientUnlocked
	AllUnlocked        Type = domain.EventTypeAllUnlocked
	InvariantViolation Type = domain.EventTypeInvariantViolation
	SessionStarted     Type = domain.EventTypeSessionStarted
	SessionEnded       Type = domain.EventTypeSessionEnded
)

// AllTypes lists every event type the game publishes
func AllTypes() []Type {
	return []Type{
		StageCompleted,
		LoopCompleted,
		ActionRejected,
		ExperienceAwarded,
		CategoryUnlocked,
		IngredientUnlocked,
		AllUnlocked,
		InvariantViolation,
		SessionStarted,
		SessionEnded,
	}
}

// MetadataKeySessionID is the metadata key carrying the owning session
const MetadataKeySessionID = "session_id"

// Typed event payloads for type safety

// StageCompletedPayloadV1 is published when the pipeline leaves a stage
type StageCompletedPayloadV1 struct {
	Loop  int    `json:"loop"`
	Stage string `json:"stage"`
	Next  string `json:"next"`
}

// LoopCompletedPayloadV1 is published when a meal is finished
type LoopCompletedPayloadV1 struct {
	Loop        int      `json:"loop"`
	Ingredients []string `json:"ingredients"`
}

// ActionRejectedPayloadV1 is published when a player action is refused
type ActionRejectedPayloadV1 struct {
	Stage  string `json:"stage"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// ExperienceAwardedPayloadV1 is published for every accepted experience award
type ExperienceAwardedPayloadV1 struct {
	Amount            float64 `json:"amount"`
	Experience        float64 `json:"experience"`
	NextThreshold     float64 `json:"next_threshold"`
	ThresholdsCrossed int     `json:"thresholds_crossed"`
}

// CategoryUnlockedPayloadV1 is published when a food category unlocks
type CategoryUnlockedPayloadV1 struct {
	Category string `json:"category"`
}

// IngredientUnlockedPayloadV1 is published when ingredients in a category unlock
type IngredientUnlockedPayloadV1 struct {
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
}

// AllUnlockedPayloadV1 is published once when the last category unlocks
type AllUnlockedPayloadV1 struct {
	Message string `json:"message"`
}

// InvariantViolationPayloadV1 is published when a consistency check fails
type InvariantViolationPayloadV1 struct {
	Component string `json:"component"`
	Detail    string `json:"detail"`
}

// SessionPayloadV1 is published on session start and end
type SessionPayloadV1 struct {
	Seed   int64  `json:"seed"`
	Reason string `json:"reason,omitempty"`
}

// Type-safe event constructors

func newEvent(t Type, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
	}
}

// NewStageCompletedEvent creates a stage completed event
func NewStageCompletedEvent(loop int, stage, next domain.Stage) Event {
	return newEvent(StageCompleted, StageCompletedPayloadV1{
		Loop:  loop,
		Stage: stage.String(),
		Next:  next.String(),
	})
}

// NewLoopCompletedEvent creates a loop completed event
func NewLoopCompletedEvent(loop int, ingredients []domain.IngredientID) Event {
	names := make([]string, len(ingredients))
	for i, id := range ingredients {
		names[i] = string(id)
	}
	return newEvent(LoopCompleted, LoopCompletedPayloadV1{Loop: loop, Ingredients: names})
}

// NewActionRejectedEvent creates an action rejected event
func NewActionRejectedEvent(stage domain.Stage, action string, reason error) Event {
	msg := ""
	if reason != nil {
		msg = reason.Error()
	}
	return newEvent(ActionRejected, ActionRejectedPayloadV1{
		Stage:  stage.String(),
		Action: action,
		Reason: msg,
	})
}

// NewExperienceAwardedEvent creates an experience awarded event
func NewExperienceAwardedEvent(amount, experience, nextThreshold float64, crossed int) Event {
	return newEvent(ExperienceAwarded, ExperienceAwardedPayloadV1{
		Amount:            amount,
		Experience:        experience,
		NextThreshold:     nextThreshold,
		ThresholdsCrossed: crossed,
	})
}

// NewCategoryUnlockedEvent creates a category unlocked event
func NewCategoryUnlockedEvent(category domain.FoodCategory) Event {
	return newEvent(CategoryUnlocked, CategoryUnlockedPayloadV1{Category: category.String()})
}

// NewIngredientUnlockedEvent creates an ingredient unlocked event
func NewIngredientUnlockedEvent(category domain.FoodCategory, ids []domain.IngredientID) Event {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return newEvent(IngredientUnlocked, IngredientUnlockedPayloadV1{
		Category:    category.String(),
		Ingredients: names,
	})
}

// NewAllUnlockedEvent creates an all unlocked event
func NewAllUnlockedEvent(message string) Event {
	return newEvent(AllUnlocked, AllUnlockedPayloadV1{Message: message})
}

// NewInvariantViolationEvent creates an invariant violation event
func NewInvariantViolationEvent(component, detail string) Event {
	return newEvent(InvariantViolation, InvariantViolationPayloadV1{Component: component, Detail: detail})
}

// NewSessionStartedEvent creates a session started event
func NewSessionStartedEvent(seed int64) Event {
	return newEvent(SessionStarted, SessionPayloadV1{Seed: seed})
}

// NewSessionEndedEvent creates a session ended event
func NewSessionEndedEvent(seed int64, reason string) Event {
	return newEvent(SessionEnded, SessionPayloadV1{Seed: seed, Reason: reason})
}

// WithSession stamps the session id carried by ctx into the event metadata
func WithSession(ctx context.Context, e Event) Event {
	id, ok := logger.SessionIDFromContext(ctx)
	if !ok {
		return e
	}
	meta := map[string]interface{}{MetadataKeySessionID: id}
	if existing, ok := e.Metadata.(map[string]interface{}); ok {
		for k, v := range existing {
			meta[k] = v
		}
	}
	e.Metadata = meta
	return e
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher is the outbound side of a bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// NopPublisher discards every event
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish delivers an event synchronously to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
