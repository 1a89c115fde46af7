package progression

// Invariant component name
const componentLedger = "progression.ledger"

// Log messages
const (
	LogMsgExperienceRejected = "Experience award rejected"
	LogMsgExperienceAwarded  = "Experience awarded"
	LogMsgCategoryUnlocked   = "Food category unlocked"
	LogMsgIngredientsUnlock  = "Ingredients unlocked"
	LogMsgAllUnlocked        = "All food categories unlocked"
	LogMsgPublishFailed      = "Failed to publish progression event"
)

// MsgAllUnlocked is the payload text of the all-unlocked event
const MsgAllUnlocked = "Every food category is now on the menu"
