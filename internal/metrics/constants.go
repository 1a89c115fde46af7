package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameStagesCompleted     = "stages_completed_total"
	MetricNameLoopsCompleted      = "loops_completed_total"
	MetricNameActionsRejected     = "actions_rejected_total"
	MetricNameExperienceAwarded   = "experience_awarded_total"
	MetricNameCategoriesUnlocked  = "categories_unlocked_total"
	MetricNameIngredientsUnlocked = "ingredients_unlocked_total"
	MetricNameInvariantViolations = "invariant_violations_total"
	MetricNameSessionsStarted     = "sessions_started_total"
	MetricNameSessionsEnded       = "sessions_ended_total"
	MetricNameSessionsActive      = "sessions_active"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextStagesCompleted     = "Total number of completed pipeline stages"
	HelpTextLoopsCompleted      = "Total number of finished meals"
	HelpTextActionsRejected     = "Total number of rejected player actions"
	HelpTextExperienceAwarded   = "Total experience granted to sessions"
	HelpTextCategoriesUnlocked  = "Total number of food category unlocks"
	HelpTextIngredientsUnlocked = "Total number of ingredient unlocks"
	HelpTextInvariantViolations = "Total number of failed consistency checks"
	HelpTextSessionsStarted     = "Total number of sessions created"
	HelpTextSessionsEnded       = "Total number of sessions retired"
	HelpTextSessionsActive      = "Current number of live sessions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelStage     = "stage"
	LabelAction    = "action"
	LabelCategory  = "category"
	LabelComponent = "component"
	LabelReason    = "reason"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
