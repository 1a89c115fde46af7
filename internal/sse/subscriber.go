package sse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/QuickCooking_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe forwards every game event type to the hub
func (s *Subscriber) Subscribe() {
	types := event.AllTypes()
	for _, t := range types {
		s.bus.Subscribe(t, s.handleEvent)
	}
	slog.Info(LogMsgSubscriberReady, "types", types)
}

func (s *Subscriber) handleEvent(_ context.Context, evt event.Event) error {
	sessionID := ""
	if v := evt.GetMetadataValue(event.MetadataKeySessionID); v != nil {
		sessionID = fmt.Sprint(v)
	}

	s.hub.Broadcast(string(evt.Type), sessionID, evt.Payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"session_id", sessionID)
	return nil
}
