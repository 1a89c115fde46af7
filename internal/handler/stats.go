package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/metrics"
)

// HandleGetStats returns a JSON digest of the Prometheus metrics
// GET /api/v1/stats
func HandleGetStats(g prometheus.Gatherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := metrics.Gather(g)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGatherMetricsFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGatherMetricsFailed)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}
