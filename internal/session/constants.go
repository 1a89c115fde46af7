package session

import "time"

// Defaults
const (
	DefaultCacheSize = 1024
	DefaultTTL       = 30 * time.Minute
)

// Reasons attached to session.ended events
const (
	EndReasonDeleted  = "deleted"
	EndReasonExpired  = "expired"
	EndReasonShutdown = "shutdown"
)

// Log messages
const (
	LogMsgSessionCreated = "Session created"
	LogMsgSessionEnded   = "Session ended"
	LogMsgPublishFailed  = "Failed to publish session event"
)
