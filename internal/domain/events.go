package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "stage.completed")
const (
	// EventTypeStageCompleted is published when the pipeline leaves a stage
	EventTypeStageCompleted = "stage.completed"

	// EventTypeLoopCompleted is published when the last piece is eaten
	EventTypeLoopCompleted = "loop.completed"

	// EventTypeActionRejected is published when a player action is ignored
	EventTypeActionRejected = "action.rejected"

	// EventTypeExperienceAwarded is published for every accepted experience grant
	EventTypeExperienceAwarded = "progression.experience_awarded"

	// EventTypeCategoryUnlocked is published when a food category unlocks
	EventTypeCategoryUnlocked = "progression.category_unlocked"

	// EventTypeIngredientUnlocked is published when ingredients in a category unlock
	EventTypeIngredientUnlocked = "progression.ingredient_unlocked"

	// EventTypeAllUnlocked is published once, when the last category unlocks
	EventTypeAllUnlocked = "progression.all_unlocked"

	// EventTypeInvariantViolation is published when a consistency check fails
	EventTypeInvariantViolation = "invariant.violation"

	// EventTypeSessionStarted is published when a host creates a session
	EventTypeSessionStarted = "session.started"

	// EventTypeSessionEnded is published when a session is removed or expires
	EventTypeSessionEnded = "session.ended"
)
