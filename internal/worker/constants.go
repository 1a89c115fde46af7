package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages shared by workers
const (
	LogMsgWorkerShuttingDown     = "Worker shutting down"
	LogMsgWorkerShutdownComplete = "Worker shutdown complete"
	LogMsgWorkerShutdownTimeout  = "Worker shutdown timeout"
	LogMsgPendingDropped         = "Dropped pending work on shutdown"
)

// ============================================================================
// Log Messages - Tick Worker
// ============================================================================

const (
	LogMsgTickWorkerStarted  = "Auto tick worker started"
	LogMsgTickQueueFull      = "Tick queue full; session tick deferred"
	LogMsgTickSessionGone    = "Session ended before its tick ran"
	LogMsgTickWorkerDisabled = "Auto tick disabled"
	LogMsgTickLagging        = "Tick worker fell behind"
)

// TickWorkerName identifies the tick worker in logs
const TickWorkerName = "tick worker"

// Defaults for the tick worker
const (
	DefaultTickWorkers   = 4
	DefaultTickQueueSize = 256
	// MaxTickElapsed caps one coalesced tick so a stalled host does not
	// fast-forward a session through several stages at once
	MaxTickElapsed = 1.0
)

// tickLagWarning is how far behind the ticker may fall before it is logged
const tickLagWarning = 2 * time.Second

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
