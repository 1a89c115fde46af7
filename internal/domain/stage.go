package domain

import (
	"encoding/json"
	"fmt"
)

// Stage is one phase of the gameplay loop
type Stage int

// Pipeline stages in loop order
const (
	StageSelection Stage = iota
	StagePreparation
	StageCooking
	StageConsumption
)

var stageNames = [...]string{
	StageSelection:   "selection",
	StagePreparation: "preparation",
	StageCooking:     "cooking",
	StageConsumption: "consumption",
}

// AllStages returns the stages in loop order
func AllStages() []Stage {
	return []Stage{StageSelection, StagePreparation, StageCooking, StageConsumption}
}

// String returns the stage name
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Next returns the stage that follows s. Consumption wraps back to Selection.
func (s Stage) Next() Stage {
	if s == StageConsumption {
		return StageSelection
	}
	return s + 1
}

// MarshalJSON writes the stage name
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads a stage name
func (s *Stage) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range stageNames {
		if n == name {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, name)
}

// RewardMode controls when stage completions pay experience
type RewardMode string

// Reward modes
const (
	// RewardPerStage pays the stage reward at every stage boundary (four times per loop)
	RewardPerStage RewardMode = "per_stage"
	// RewardPerLoop pays a single loop reward when the meal is finished
	RewardPerLoop RewardMode = "per_loop"
)
