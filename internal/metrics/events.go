package metrics

import (
	"context"

	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every game event type
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes() {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Payloads that cannot be
// decoded for their type are counted as published and otherwise skipped.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.StageCompleted:
		err = record(evt, func(p event.StageCompletedPayloadV1) {
			StagesCompleted.WithLabelValues(p.Stage).Inc()
		})
	case event.LoopCompleted:
		LoopsCompleted.Inc()
	case event.ActionRejected:
		err = record(evt, func(p event.ActionRejectedPayloadV1) {
			ActionsRejected.WithLabelValues(p.Stage, p.Action).Inc()
		})
	case event.ExperienceAwarded:
		err = record(evt, func(p event.ExperienceAwardedPayloadV1) {
			ExperienceAwarded.Add(p.Amount)
		})
	case event.CategoryUnlocked:
		err = record(evt, func(p event.CategoryUnlockedPayloadV1) {
			CategoriesUnlocked.WithLabelValues(p.Category).Inc()
		})
	case event.IngredientUnlocked:
		err = record(evt, func(p event.IngredientUnlockedPayloadV1) {
			IngredientsUnlocked.WithLabelValues(p.Category).Add(float64(len(p.Ingredients)))
		})
	case event.InvariantViolation:
		err = record(evt, func(p event.InvariantViolationPayloadV1) {
			InvariantViolations.WithLabelValues(p.Component).Inc()
		})
	case event.SessionStarted:
		SessionsStarted.Inc()
		SessionsActive.Inc()
	case event.SessionEnded:
		err = record(evt, func(p event.SessionPayloadV1) {
			SessionsEnded.WithLabelValues(p.Reason).Inc()
		})
		SessionsActive.Dec()
	case event.AllUnlocked:
		// counted by events_published_total only
	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	if err != nil {
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func record[T any](evt event.Event, observe func(T)) error {
	p, err := event.DecodePayload[T](evt)
	if err != nil {
		return err
	}
	observe(p)
	return nil
}
