// Package invariant reports internal consistency failures. Builds tagged
// "debug" panic on the first violation; other builds log at error level and
// publish an invariant.violation event so callers can clamp and continue.
package invariant

import (
	"context"
	"fmt"

	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// Reporter receives violations from the progression ledger and stage pipeline
type Reporter struct {
	publisher event.Publisher
	strict    bool
}

// NewReporter creates a reporter. Strictness follows the build tag.
func NewReporter(publisher event.Publisher) *Reporter {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &Reporter{publisher: publisher, strict: strictDefault}
}

// WithStrict overrides the build-tag strictness
func (r *Reporter) WithStrict(strict bool) *Reporter {
	cp := *r
	cp.strict = strict
	return &cp
}

// Strict reports whether violations panic
func (r *Reporter) Strict() bool {
	return r.strict
}

// Check reports a violation when ok is false and returns ok
func (r *Reporter) Check(ctx context.Context, ok bool, component, format string, args ...any) bool {
	if !ok {
		r.Violation(ctx, component, fmt.Sprintf(format, args...))
	}
	return ok
}

// Violation records a failed invariant
func (r *Reporter) Violation(ctx context.Context, component, detail string) {
	if r.strict {
		panic(fmt.Sprintf("invariant violation in %s: %s", component, detail))
	}

	logger.FromContext(ctx).Error(LogMsgViolation, "component", component, "detail", detail)

	e := event.WithSession(ctx, event.NewInvariantViolationEvent(component, detail))
	if err := r.publisher.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
	}
}

// Log messages
const (
	LogMsgViolation     = "Invariant violation"
	LogMsgPublishFailed = "Failed to publish invariant violation"
)
