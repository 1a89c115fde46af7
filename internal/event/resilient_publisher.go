package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// ErrPublisherClosed is returned when publishing after Shutdown
var ErrPublisherClosed = errors.New("publisher is shut down")

type retryItem struct {
	event   Event
	attempt int
	lastErr error
	nextAt  time.Time
}

// ResilientPublisher wraps a Bus so that failing subscribers are retried with
// exponential backoff on a background worker. Events that exhaust their
// retries are appended to a dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	baseDelay  time.Duration

	retryQueue chan retryItem
	deadLetter *DeadLetterWriter

	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewResilientPublisher creates the publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead-letter file: %w", err)
	}

	rp := &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		retryQueue: make(chan retryItem, RetryQueueBufferSize),
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// Publish implements Publisher. Delivery failures are handled asynchronously.
func (rp *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	select {
	case <-rp.shutdown:
		return ErrPublisherClosed
	default:
	}
	rp.PublishWithRetry(ctx, event)
	return nil
}

// CheckHealth reports ErrPublisherClosed once Shutdown has started
func (rp *ResilientPublisher) CheckHealth(_ context.Context) error {
	select {
	case <-rp.shutdown:
		return ErrPublisherClosed
	default:
		return nil
	}
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

// PublishWithRetry attempts delivery once and queues the event for retry on failure
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	rp.enqueue(retryItem{
		event:   event,
		attempt: 1,
		lastErr: err,
		nextAt:  time.Now().Add(CalculateRetryDelay(rp.baseDelay, 1)),
	})
}

func (rp *ResilientPublisher) enqueue(item retryItem) {
	select {
	case rp.retryQueue <- item:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", item.event.Type)
		rp.writeDeadLetter(item)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case <-rp.shutdown:
			return
		case item := <-rp.retryQueue:
			if !rp.waitUntil(item.nextAt) {
				rp.writeDeadLetter(item)
				return
			}
			rp.retry(item)
		}
	}
}

// waitUntil blocks until t or shutdown; false means shutdown won
func (rp *ResilientPublisher) waitUntil(t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-rp.shutdown:
		return false
	}
}

func (rp *ResilientPublisher) retry(item retryItem) {
	log := logger.FromContext(context.Background())

	err := rp.bus.Publish(context.Background(), item.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempt)
		return
	}

	item.lastErr = err
	if item.attempt >= rp.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", item.attempt)
		rp.writeDeadLetter(item)
		return
	}

	item.attempt++
	item.nextAt = time.Now().Add(CalculateRetryDelay(rp.baseDelay, item.attempt))
	log.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempt, "error", err)
	rp.enqueue(item)
}

func (rp *ResilientPublisher) writeDeadLetter(item retryItem) {
	if err := rp.deadLetter.Write(item.event, item.attempt, item.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker and dead-letters anything still queued
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	var shutdownErr error

	rp.closeOnce.Do(func() {
		close(rp.shutdown)

		done := make(chan struct{})
		go func() {
			rp.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
			shutdownErr = ctx.Err()
		}

		drained := 0
		for {
			select {
			case item := <-rp.retryQueue:
				rp.writeDeadLetter(item)
				drained++
				continue
			default:
			}
			break
		}
		if drained > 0 {
			logger.FromContext(ctx).Info(LogMsgQueueDrainedShutdown, "count", drained)
		}

		if err := rp.deadLetter.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	})

	return shutdownErr
}
