// Package session owns the per-player game state and the in-memory registry
// that hosts use to look sessions up by id.
package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/invariant"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/progression"
	"github.com/osse101/QuickCooking_Go/internal/sampler"
	"github.com/osse101/QuickCooking_Go/internal/stage"
)

// Options bundles the tuning for a new session
type Options struct {
	Progression progression.Options
	Stage       stage.Options
}

// DefaultOptions returns stock progression and stage tuning
func DefaultOptions() Options {
	return Options{
		Progression: progression.DefaultOptions(),
		Stage:       stage.DefaultOptions(),
	}
}

// Session is one player's run: a ledger and pipeline sharing a seeded sampler.
// A Session is not safe for concurrent use; Manager.Do serializes access.
type Session struct {
	ID        uuid.UUID
	Seed      int64
	CreatedAt time.Time

	Ledger   *progression.Ledger
	Pipeline *stage.Pipeline

	endReason atomic.Value
	// loop mirrors Pipeline.Loop for readers that do not hold the session lock
	loop atomic.Int64
}

// View is the host-facing snapshot of a session
type View struct {
	ID          uuid.UUID                  `json:"id"`
	Seed        int64                      `json:"seed"`
	CreatedAt   time.Time                  `json:"created_at"`
	Pipeline    domain.PipelineView        `json:"pipeline"`
	Progression domain.ProgressionSnapshot `json:"progression"`
}

// New builds a session and starts its first loop
func New(ctx context.Context, id uuid.UUID, seed int64, cat *catalog.Catalog, publisher event.Publisher, reporter *invariant.Reporter, opts Options) *Session {
	rng := sampler.New(seed)
	ledger := progression.NewLedger(cat, rng, publisher, reporter, opts.Progression)

	s := &Session{
		ID:        id,
		Seed:      seed,
		CreatedAt: time.Now(),
		Ledger:    ledger,
		Pipeline:  stage.New(ledger, rng, publisher, reporter, opts.Stage),
	}
	s.Pipeline.Start(s.Context(ctx))
	s.syncLoop()
	return s
}

// Context returns ctx tagged with the session id for logs and events
func (s *Session) Context(ctx context.Context) context.Context {
	return logger.WithSessionID(ctx, s.ID.String())
}

// View snapshots the pipeline and ledger
func (s *Session) View() View {
	return View{
		ID:          s.ID,
		Seed:        s.Seed,
		CreatedAt:   s.CreatedAt,
		Pipeline:    s.Pipeline.View(),
		Progression: s.Ledger.Snapshot(),
	}
}

// LastLoop returns the loop counter as of the last completed Manager.Do.
// Unlike Pipeline.Loop it is safe to call without holding the session lock.
func (s *Session) LastLoop() int {
	return int(s.loop.Load())
}

func (s *Session) syncLoop() {
	s.loop.Store(int64(s.Pipeline.Loop()))
}

func (s *Session) markEnded(reason string) {
	s.endReason.Store(reason)
}

func (s *Session) reason() string {
	if r, ok := s.endReason.Load().(string); ok {
		return r
	}
	return EndReasonExpired
}
