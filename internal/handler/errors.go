package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"

	// Session error messages
	ErrMsgInvalidSessionID     = "Invalid session id"
	ErrMsgSessionNotFoundHTTP  = "Session not found"
	ErrMsgCreateSessionFailed  = "Failed to create session"
	ErrMsgInvalidPieceID       = "Invalid piece id"
	ErrMsgInvalidSlotKind      = "Invalid slot kind"
	ErrMsgInvalidInputHTTP     = "Invalid input"
	ErrMsgInvalidCategoryQuery = "Invalid category '%s'. Valid options: dairy, fruit, grain, protein, vegetable"

	// Stats error messages
	ErrMsgGatherMetricsFailed = "Failed to gather metrics"

	// Health
	MsgUnavailable = "unavailable"
	MsgHealthOK    = "ok"
)

// Success messages for API responses
const (
	MsgSessionDeleted = "Session deleted"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgActionRejected    = "Action rejected"
	LogMsgActionFailed      = "Action failed"
	LogMsgSessionCreatedAPI = "Session created"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
)
