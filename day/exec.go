package day

import (
	"fmt"
)

// ExecutionError reports that a day's own logic failed or panicked.
type ExecutionError struct {
	Day  int
	Part Part
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("day %d %s failed: %v", e.Day, e.Part, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// RunPart1 calls d.Part1. Errors and panics come back as *ExecutionError.
func RunPart1(d Day, input string) (out Output, ctx any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExecutionError{Day: d.Number(), Part: Part1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, ctx, err = d.Part1(input)
	if err != nil {
		return Output{}, nil, &ExecutionError{Day: d.Number(), Part: Part1, Err: err}
	}
	return out, ctx, nil
}

// RunPart2 calls d.Part2. Errors and panics come back as *ExecutionError.
func RunPart2(d Day, input string, ctx any) (out Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExecutionError{Day: d.Number(), Part: Part2, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, err = d.Part2(input, ctx)
	if err != nil {
		return Output{}, &ExecutionError{Day: d.Number(), Part: Part2, Err: err}
	}
	return out, nil
}
