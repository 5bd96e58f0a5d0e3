package pipeline

import (
	"errors"
	"fmt"

	"qrpayload/internal/services"
)

// State is a pipeline run's position in its linear lifecycle.
type State int

const (
	StateStart State = iota
	StateExtracted
	StateClassified
	StateDecoded
	StatePersisted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateExtracted:
		return "extracted"
	case StateClassified:
		return "classified"
	case StateDecoded:
		return "decoded"
	case StatePersisted:
		return "persisted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// stage names the work a run performs while leaving s.
func (s State) stage() string {
	switch s {
	case StateStart:
		return "extract"
	case StateExtracted:
		return "classify"
	case StateClassified:
		return "decode"
	case StateDecoded:
		return "persist"
	default:
		return ""
	}
}

// Error is the terminal failure of a run. State is the last state reached
// before the failure.
type Error struct {
	State State
	Err   error
}

func (e *Error) Error() string {
	if e == nil || e.Err == nil {
		return "pipeline failed"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorKind forwards the classification of the wrapped error.
func (e *Error) ErrorKind() string {
	if e == nil {
		return ""
	}
	return services.ErrorKind(e.Err)
}

// FailedState reports the state a run had reached when err ended it.
func FailedState(err error) (State, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.State, true
	}
	return StateStart, false
}
