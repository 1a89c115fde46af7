package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/concurrency"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/invariant"
	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// Manager creates, finds and retires sessions
type Manager interface {
	Create(ctx context.Context, seed *int64) (*Session, error)
	Do(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, s *Session) error) error
	Delete(ctx context.Context, id uuid.UUID) error
	IDs() []uuid.UUID
	Len() int
	Close(ctx context.Context)
}

type manager struct {
	catalog   *catalog.Catalog
	publisher event.Publisher
	reporter  *invariant.Reporter
	opts      Options
	locks     *concurrency.LockManager

	// sessions idle longer than the ttl are dropped
	lru *expirable.LRU[uuid.UUID, *Session]
}

// NewManager creates a session registry holding at most size sessions, each
// retired after ttl without activity
func NewManager(cat *catalog.Catalog, publisher event.Publisher, reporter *invariant.Reporter, opts Options, size int, ttl time.Duration, locks *concurrency.LockManager) Manager {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	if reporter == nil {
		reporter = invariant.NewReporter(publisher)
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}

	m := &manager{
		catalog:   cat,
		publisher: publisher,
		reporter:  reporter,
		opts:      opts,
		locks:     locks,
	}
	m.lru = expirable.NewLRU[uuid.UUID, *Session](size, m.onEvict, ttl)
	return m
}

// Create starts a session. A nil seed draws one from the clock.
func (m *manager) Create(ctx context.Context, seed *int64) (*Session, error) {
	value := time.Now().UnixNano()
	if seed != nil {
		value = *seed
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	s := New(ctx, id, value, m.catalog, m.publisher, m.reporter, m.opts)
	m.lru.Add(id, s)

	sctx := s.Context(ctx)
	logger.FromContext(sctx).Info(LogMsgSessionCreated, "seed", value)
	m.publish(sctx, event.NewSessionStartedEvent(value))
	return s, nil
}

// Do runs fn with exclusive access to the session and refreshes its ttl
func (m *manager) Do(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, s *Session) error) error {
	return m.locks.WithLock(id.String(), func() error {
		s, ok := m.lru.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		m.lru.Add(id, s)
		defer s.syncLoop()
		return fn(s.Context(ctx), s)
	})
}

// Delete retires a session
func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	err := m.locks.WithLock(id.String(), func() error {
		s, ok := m.lru.Peek(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		s.markEnded(EndReasonDeleted)
		m.lru.Remove(id)
		return nil
	})
	if err == nil {
		m.locks.ForgetIdle(id.String())
	}
	return err
}

// IDs lists live sessions, oldest first
func (m *manager) IDs() []uuid.UUID {
	return m.lru.Keys()
}

// Len returns the number of live sessions
func (m *manager) Len() int {
	return m.lru.Len()
}

// Close retires every session
func (m *manager) Close(ctx context.Context) {
	for _, s := range m.lru.Values() {
		s.markEnded(EndReasonShutdown)
	}
	m.lru.Purge()
}

// onEvict runs for removals, expiry and capacity eviction alike. It may run
// on the cache's expiry goroutine or while another goroutine is inside Do for
// the evicted session, so it only touches fields that are safe without the
// session lock.
func (m *manager) onEvict(id uuid.UUID, s *Session) {
	m.locks.ForgetIdle(id.String())

	ctx := s.Context(context.Background())
	reason := s.reason()
	logger.FromContext(ctx).Info(LogMsgSessionEnded, "reason", reason, "loop", s.LastLoop())
	m.publish(ctx, event.NewSessionEndedEvent(s.Seed, reason))
}

func (m *manager) publish(ctx context.Context, e event.Event) {
	if err := m.publisher.Publish(ctx, event.WithSession(ctx, e)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", e.Type, "error", err)
	}
}
