package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/osse101/QuickCooking_Go/internal/logger"
)

// readinessTimeout bounds the time spent across all readiness checks
const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckerFunc adapts a function to HealthChecker
type HealthCheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f HealthCheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: MsgHealthOK})
	}
}

// HandleReadyz reports ready only when every named checker passes
func HandleReadyz(checkers map[string]HealthChecker) http.HandlerFunc {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		response := HealthResponse{Status: MsgHealthOK, Checks: make(map[string]string, len(names))}
		status := http.StatusOK

		for _, name := range names {
			if err := checkers[name].CheckHealth(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgReadinessFailed, "check", name, "error", err)
				response.Checks[name] = err.Error()
				response.Status = MsgUnavailable
				response.Message = name + " check failed"
				status = http.StatusServiceUnavailable
				continue
			}
			response.Checks[name] = MsgHealthOK
		}

		respondJSON(w, status, response)
	}
}
