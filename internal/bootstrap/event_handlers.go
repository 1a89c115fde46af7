package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (counters per event type)
// - Event logger (debug line per event, error line per invariant violation)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	for _, t := range event.AllTypes() {
		deps.EventBus.Subscribe(t, logEvent)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}

func logEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	sessionID := evt.GetMetadataValue(event.MetadataKeySessionID)

	if evt.Type != event.InvariantViolation {
		log.Debug(LogMsgEventObserved,
			"type", evt.Type,
			"session_id", sessionID,
			"payload", evt.Payload)
		return nil
	}

	p, err := event.DecodePayload[event.InvariantViolationPayloadV1](evt)
	if err != nil {
		log.Error(LogMsgInvariantViolationObserved, "session_id", sessionID, "payload", evt.Payload)
		return nil
	}
	log.Error(LogMsgInvariantViolationObserved,
		"session_id", sessionID,
		"component", p.Component,
		"detail", p.Detail)
	return nil
}
