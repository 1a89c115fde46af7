package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	StagesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStagesCompleted,
			Help: HelpTextStagesCompleted,
		},
		[]string{LabelStage},
	)

	LoopsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLoopsCompleted,
			Help: HelpTextLoopsCompleted,
		},
	)

	ActionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsRejected,
			Help: HelpTextActionsRejected,
		},
		[]string{LabelStage, LabelAction},
	)

	ExperienceAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExperienceAwarded,
			Help: HelpTextExperienceAwarded,
		},
	)

	CategoriesUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCategoriesUnlocked,
			Help: HelpTextCategoriesUnlocked,
		},
		[]string{LabelCategory},
	)

	IngredientsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameIngredientsUnlocked,
			Help: HelpTextIngredientsUnlocked,
		},
		[]string{LabelCategory},
	)

	InvariantViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInvariantViolations,
			Help: HelpTextInvariantViolations,
		},
		[]string{LabelComponent},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
	)

	SessionsEnded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsEnded,
			Help: HelpTextSessionsEnded,
		},
		[]string{LabelReason},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsActive,
			Help: HelpTextSessionsActive,
		},
	)
)
