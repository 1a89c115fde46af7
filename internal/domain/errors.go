package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgUnknownCategory   = "unknown food category"
	ErrMsgIngredientUnknown = "ingredient not found"

	// Inventory errors
	ErrMsgInventoryFull        = "inventory is full"
	ErrMsgDuplicateIngredient  = "ingredient already held"
	ErrMsgIngredientNotHeld    = "ingredient not held"
	ErrMsgIngredientNotInPool  = "ingredient not in selection pool"
	ErrMsgSlotEmpty            = "slot is empty"
	ErrMsgSlotOutOfRange       = "slot index out of range"
	ErrMsgPoolFull             = "selection pool has no empty slot"
	ErrMsgIngredientNotAllowed = "ingredient is locked"

	// Progression errors
	ErrMsgCategoryLocked     = "food category is locked"
	ErrMsgCategoryExhausted  = "all ingredients in category already unlocked"
	ErrMsgInvalidExperience  = "invalid experience amount"
	ErrMsgInvariantViolation = "invariant violation"

	// Stage errors
	ErrMsgWrongStage        = "action not valid in current stage"
	ErrMsgGuardNotSatisfied = "stage guard not satisfied"
	ErrMsgBoardOccupied     = "cutting board is occupied"
	ErrMsgBoardEmpty        = "cutting board is empty"
	ErrMsgAlreadyPrepared   = "ingredient already prepared"
	ErrMsgSliceTooSlow      = "slice gesture too slow"
	ErrMsgSliceTooShort     = "slice gesture too short"
	ErrMsgSliceMissed       = "slice gesture missed the board"
	ErrMsgNoGesture         = "no slice gesture in progress"
	ErrMsgPieceNotFound     = "piece not found"
	ErrMsgPieceNotCooked    = "piece is not cooked"

	// Session errors
	ErrMsgSessionNotFound = "session not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Rejections are always recoverable; wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details)
// for additional context and test with errors.Is.
var (
	// Catalog errors
	ErrUnknownCategory   = errors.New(ErrMsgUnknownCategory)
	ErrIngredientUnknown = errors.New(ErrMsgIngredientUnknown)

	// Inventory errors
	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)
	ErrDuplicateIngredient  = errors.New(ErrMsgDuplicateIngredient)
	ErrIngredientNotHeld    = errors.New(ErrMsgIngredientNotHeld)
	ErrIngredientNotInPool  = errors.New(ErrMsgIngredientNotInPool)
	ErrSlotEmpty            = errors.New(ErrMsgSlotEmpty)
	ErrSlotOutOfRange       = errors.New(ErrMsgSlotOutOfRange)
	ErrPoolFull             = errors.New(ErrMsgPoolFull)
	ErrIngredientNotAllowed = errors.New(ErrMsgIngredientNotAllowed)

	// Progression errors
	ErrCategoryLocked     = errors.New(ErrMsgCategoryLocked)
	ErrCategoryExhausted  = errors.New(ErrMsgCategoryExhausted)
	ErrInvalidExperience  = errors.New(ErrMsgInvalidExperience)
	ErrInvariantViolation = errors.New(ErrMsgInvariantViolation)

	// Stage errors
	ErrWrongStage        = errors.New(ErrMsgWrongStage)
	ErrGuardNotSatisfied = errors.New(ErrMsgGuardNotSatisfied)
	ErrBoardOccupied     = errors.New(ErrMsgBoardOccupied)
	ErrBoardEmpty        = errors.New(ErrMsgBoardEmpty)
	ErrAlreadyPrepared   = errors.New(ErrMsgAlreadyPrepared)
	ErrSliceTooSlow      = errors.New(ErrMsgSliceTooSlow)
	ErrSliceTooShort     = errors.New(ErrMsgSliceTooShort)
	ErrSliceMissed       = errors.New(ErrMsgSliceMissed)
	ErrNoGesture         = errors.New(ErrMsgNoGesture)
	ErrPieceNotFound     = errors.New(ErrMsgPieceNotFound)
	ErrPieceNotCooked    = errors.New(ErrMsgPieceNotCooked)

	// Session errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
