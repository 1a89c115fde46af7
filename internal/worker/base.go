package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// BaseWorker provides the shutdown plumbing shared by background workers and
// coalesces per-session work that is still waiting in a queue
type BaseWorker struct {
	mu       sync.Mutex
	pending  map[uuid.UUID]*pendingWork
	shutdown chan struct{}
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.pending == nil {
		w.pending = make(map[uuid.UUID]*pendingWork)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

type pendingWork struct {
	amount float64
	queued bool
}

// addPending accumulates amount for id and reports whether no job is queued
// for it yet, in which case the caller must queue one. The entry is marked
// queued before returning.
func (w *BaseWorker) addPending(id uuid.UUID, amount float64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pending[id]
	if !ok {
		p = &pendingWork{}
		w.pending[id] = p
	}
	p.amount += amount
	if p.queued {
		return false
	}
	p.queued = true
	return true
}

// unqueue keeps the accumulated amount for id but records that no job holds it
func (w *BaseWorker) unqueue(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pending[id]; ok {
		p.queued = false
	}
}

// takePending removes and returns what has accumulated for id
func (w *BaseWorker) takePending(id uuid.UUID) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pending[id]
	if !ok {
		return 0
	}
	delete(w.pending, id)
	return p.amount
}

// prunePending drops unqueued entries for ids not in live
func (w *BaseWorker) prunePending(live map[uuid.UUID]struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, p := range w.pending {
		if _, ok := live[id]; !ok && !p.queued {
			delete(w.pending, id)
		}
	}
}

func (w *BaseWorker) pendingLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWorkerShuttingDown, "worker", workerName)

	close(w.shutdown)

	w.mu.Lock()
	if dropped := len(w.pending); dropped > 0 {
		log.Info(LogMsgPendingDropped, "worker", workerName, "count", dropped)
	}
	w.pending = make(map[uuid.UUID]*pendingWork)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgWorkerShutdownComplete, "worker", workerName)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerShutdownTimeout, "worker", workerName)
		return ctx.Err()
	}
}
