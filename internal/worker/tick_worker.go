package worker

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/session"
)

// TickWorker advances every live session on a fixed wall-clock interval so
// cooking timers run for hosts that do not send their own ticks
type TickWorker struct {
	BaseWorker
	manager  session.Manager
	interval time.Duration
	pool     *Pool
}

// NewTickWorker creates a worker ticking every interval on workers goroutines
func NewTickWorker(manager session.Manager, interval time.Duration, workers int) *TickWorker {
	if workers <= 0 {
		workers = DefaultTickWorkers
	}
	w := &TickWorker{
		manager:  manager,
		interval: interval,
		pool:     NewPool(workers, DefaultTickQueueSize),
	}
	w.init()
	return w
}

// Start launches the ticker. A non-positive interval leaves the worker idle.
func (w *TickWorker) Start(ctx context.Context) {
	log := logger.FromContext(ctx)
	if w.interval <= 0 {
		log.Info(LogMsgTickWorkerDisabled)
		return
	}

	w.pool.Start(ctx)
	w.wg.Add(1)
	go w.run(ctx)
	log.Info(LogMsgTickWorkerStarted, "interval", w.interval)
}

func (w *TickWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if elapsed > tickLagWarning {
				logger.FromContext(ctx).Warn(LogMsgTickLagging, "elapsed", elapsed)
			}
			w.TickAll(ctx, elapsed.Seconds())
		case <-w.shutdown:
			return
		case <-ctx.Done():
			return
		}
	}
}

// TickAll queues elapsed seconds for every live session and returns how many
// new jobs were queued. Sessions whose previous tick is still queued have the
// time added to it instead.
func (w *TickWorker) TickAll(ctx context.Context, elapsed float64) int {
	ids := w.manager.IDs()
	live := make(map[uuid.UUID]struct{}, len(ids))
	queued := 0
	for _, id := range ids {
		live[id] = struct{}{}
		if !w.addPending(id, elapsed) {
			continue
		}
		if !w.pool.Enqueue(tickJob{worker: w, id: id}) {
			w.unqueue(id)
			logger.FromContext(ctx).Warn(LogMsgTickQueueFull, "session_id", id)
			continue
		}
		queued++
	}
	w.prunePending(live)
	return queued
}

// Shutdown stops the ticker and its pool
func (w *TickWorker) Shutdown(ctx context.Context) error {
	err := w.shutdownInternal(ctx, TickWorkerName)
	w.pool.Stop()
	return err
}

type tickJob struct {
	worker *TickWorker
	id     uuid.UUID
}

func (j tickJob) Process(ctx context.Context) error {
	elapsed := math.Min(j.worker.takePending(j.id), MaxTickElapsed)

	err := j.worker.manager.Do(ctx, j.id, func(ctx context.Context, s *session.Session) error {
		return s.Pipeline.Tick(ctx, elapsed)
	})
	if errors.Is(err, domain.ErrSessionNotFound) {
		logger.FromContext(ctx).Debug(LogMsgTickSessionGone, "session_id", j.id)
		return nil
	}
	return err
}
