package stage

// Invariant component names
const (
	componentBinder   = "stage.binder"
	componentPipeline = "stage.pipeline"
)

// cookTolerance absorbs float drift from summing many small tick deltas
const cookTolerance = 1e-9

// Action names used in rejection events and metrics labels
const (
	ActionSelect  = "select"
	ActionSlot    = "slot"
	ActionConfirm = "confirm"
	ActionSlice   = "slice"
	ActionStir    = "stir"
	ActionEat     = "eat"
	ActionTick    = "tick"
)

// Log messages
const (
	LogMsgLoopStarted      = "Loop started"
	LogMsgStageEntered     = "Stage entered"
	LogMsgStageCompleted   = "Stage completed"
	LogMsgLoopCompleted    = "Loop completed"
	LogMsgActionRejected   = "Action rejected"
	LogMsgPoolPopulated    = "Selection pool populated"
	LogMsgPoolOverflow     = "Selection pool full, dropping sampled ingredients"
	LogMsgIngredientSliced = "Ingredient sliced"
	LogMsgIngredientReady  = "Ingredient prepared"
	LogMsgGestureExpired   = "Slice gesture expired"
	LogMsgPiecesSpawned    = "Pieces spawned"
	LogMsgPieceCooked      = "Piece cooked"
	LogMsgPublishFailed    = "Failed to publish stage event"
)
