package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/server"
	"github.com/osse101/QuickCooking_Go/internal/session"
	"github.com/osse101/QuickCooking_Go/internal/sse"
	"github.com/osse101/QuickCooking_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	TickWorker         *worker.TickWorker
	Sessions           session.Manager
	EventHub           *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Tick worker (no more automatic ticks)
// 3. Sessions (each ended session publishes its end event)
// 4. Event publisher (flush pending events)
// 5. SSE hub (streams end once nothing more can be published)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.TickWorker != nil {
		slog.Info(LogMsgShuttingDownTickWorker)
		if err := components.TickWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgTickWorkerShutdownFailed, "error", err)
		}
	}

	if components.Sessions != nil {
		slog.Info(LogMsgShuttingDownSessions, "count", components.Sessions.Len())
		components.Sessions.Close(ctx)
	}

	// Publisher last so session end events are delivered or dead-lettered
	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.EventHub != nil {
		slog.Info(LogMsgShuttingDownEventHub)
		components.EventHub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
