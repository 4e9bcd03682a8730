package runner

import (
	"fmt"
)

// State is where a day is in its run.
type State int

const (
	StatePending State = iota
	StateExampleChecked
	StateInputAcquired
	StatePart1Done
	StatePart2Done
	StateReported
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateExampleChecked:
		return "example-checked"
	case StateInputAcquired:
		return "input-acquired"
	case StatePart1Done:
		return "part1-done"
	case StatePart2Done:
		return "part2-done"
	case StateReported:
		return "reported"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Phase names the step a day failed in.
type Phase string

const (
	PhaseSelect  Phase = "select"
	PhaseExample Phase = "example"
	PhaseInput   Phase = "input"
	PhasePart1   Phase = "part 1"
	PhasePart2   Phase = "part 2"
)

// DayError is a per-day failure with the phase it happened in.
type DayError struct {
	Day   int
	Phase Phase
	Err   error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("day %d failed during %s: %v", e.Day, e.Phase, e.Err)
}

func (e *DayError) Unwrap() error {
	return e.Err
}
