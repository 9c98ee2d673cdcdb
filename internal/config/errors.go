package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStep      = errors.New("unknown step")
	ErrStepUnavailable  = errors.New("step not available")
	ErrRequirementUnmet = errors.New("required step not used")
	ErrStepUsed         = errors.New("step already used")
	ErrCyclicEntryMap   = errors.New("entry map requirements form a cycle")
	ErrInvalidEntry     = errors.New("invalid entry")
)

// StepError attaches the step that failed to an underlying error.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
