package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Summary is a JSON friendly digest of the game and HTTP metrics
type Summary struct {
	HTTP HTTPSummary `json:"http"`
	Game GameSummary `json:"game"`
}

// HTTPSummary digests the HTTP metrics
type HTTPSummary struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

// GameSummary digests the game metrics
type GameSummary struct {
	StagesCompleted     map[string]float64 `json:"stages_completed"`
	LoopsCompleted      float64            `json:"loops_completed"`
	ActionsRejected     map[string]float64 `json:"actions_rejected"`
	ExperienceAwarded   float64            `json:"experience_awarded"`
	CategoriesUnlocked  map[string]float64 `json:"categories_unlocked"`
	InvariantViolations float64            `json:"invariant_violations"`
	SessionsActive      float64            `json:"sessions_active"`
}

// Gather reads the registered metrics from g into a Summary
func Gather(g prometheus.Gatherer) (*Summary, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	s := &Summary{
		HTTP: HTTPSummary{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Game: GameSummary{
			StagesCompleted:    make(map[string]float64),
			ActionsRejected:    make(map[string]float64),
			CategoriesUnlocked: make(map[string]float64),
		},
	}

	for _, mf := range families {
		switch mf.GetName() {
		case MetricNameHTTPRequestsTotal:
			sumByLabel(mf, LabelStatus, s.HTTP.RequestsTotalByStatus)
		case MetricNameHTTPRequestDuration:
			var count uint64
			var sum float64
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				count += hist.GetSampleCount()
				sum += hist.GetSampleSum()
				if q := estimateQuantile(hist, 0.95) * 1000; q > s.HTTP.P95LatencyMs {
					s.HTTP.P95LatencyMs = q
				}
			}
			if count > 0 {
				s.HTTP.AvgLatencyMs = sum / float64(count) * 1000
			}
		case MetricNameHTTPRequestsInFlight:
			s.HTTP.InFlight = sumAll(mf)
		case MetricNameStagesCompleted:
			sumByLabel(mf, LabelStage, s.Game.StagesCompleted)
		case MetricNameLoopsCompleted:
			s.Game.LoopsCompleted = sumAll(mf)
		case MetricNameActionsRejected:
			sumByLabel(mf, LabelAction, s.Game.ActionsRejected)
		case MetricNameExperienceAwarded:
			s.Game.ExperienceAwarded = sumAll(mf)
		case MetricNameCategoriesUnlocked:
			sumByLabel(mf, LabelCategory, s.Game.CategoriesUnlocked)
		case MetricNameInvariantViolations:
			s.Game.InvariantViolations = sumAll(mf)
		case MetricNameSessionsActive:
			s.Game.SessionsActive = sumAll(mf)
		}
	}

	return s, nil
}

func value(m *dto.Metric) float64 {
	switch {
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	}
	return 0
}

func sumAll(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += value(m)
	}
	return total
}

func sumByLabel(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := labelValue(m, label); v != "" {
			into[v] += value(m)
		}
	}
}

func labelValue(m *dto.Metric, name string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from histogram buckets
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	total := hist.GetSampleCount()
	if total == 0 {
		return 0
	}

	target := float64(total) * quantile
	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		if float64(bucket.GetCumulativeCount()) >= target {
			return bucket.GetUpperBound()
		}
	}

	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
