// Package day defines the contract puzzle solutions implement and the
// registry the harness runs them from.
//
// A solution is written against Solution with its own output and context
// types. New adapts it into a Day, which the harness drives without knowing
// those types: outputs are carried as Output values and the context is passed
// from part 1 to part 2 untouched.
package day

import (
	"fmt"
)

// MaxNumber is the highest day number any puzzle year can have.
const MaxNumber = 25

// Part identifies one of the two halves of a day.
type Part int

const (
	Part1 Part = 1
	Part2 Part = 2
)

func (p Part) String() string {
	return fmt.Sprintf("part %d", int(p))
}

// Output is a part result. It keeps the dynamic value for equality checks and
// its rendered text for display.
type Output struct {
	value any
	text  string
}

// NewOutput wraps a solution result.
func NewOutput[O comparable](v O) Output {
	return Output{value: v, text: fmt.Sprint(v)}
}

// String returns the rendered result.
func (o Output) String() string {
	return o.text
}

// Equal reports whether both outputs hold the same dynamic type and value.
// Values whose dynamic type is not comparable are never equal.
func (o Output) Equal(other Output) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return o.value == other.value
}

// Case is a type-erased example: input text plus optional expected outputs.
type Case struct {
	Input string
	Part1 *Output
	Part2 *Output
}

// Day is one registered puzzle day as the harness sees it.
type Day interface {
	Number() int
	Part1(input string) (Output, any, error)
	Part2(input string, ctx any) (Output, error)
	// Example returns the self-test case, or false when the day has none.
	Example() (Case, bool)
}

// Solution is implemented by puzzle code. O is the answer type, C whatever
// part 1 wants to hand to part 2.
type Solution[O comparable, C any] interface {
	Part1(input string) (O, C, error)
	Part2(input string, ctx C) (O, error)
}

// Example is a typed self-test case. A nil expectation leaves that part
// unchecked.
type Example[O comparable] struct {
	Input string
	Part1 *O
	Part2 *O
}

// Expect returns a pointer to v, for filling Example expectations inline.
func Expect[O comparable](v O) *O {
	return &v
}

// Funcs adapts two plain functions into a Solution.
type Funcs[O comparable, C any] struct {
	Part1Func func(input string) (O, C, error)
	Part2Func func(input string, ctx C) (O, error)
}

// Part1 implements Solution.
func (f Funcs[O, C]) Part1(input string) (O, C, error) {
	return f.Part1Func(input)
}

// Part2 implements Solution.
func (f Funcs[O, C]) Part2(input string, ctx C) (O, error) {
	return f.Part2Func(input, ctx)
}

// Typed is the Day produced by New.
type Typed[O comparable, C any] struct {
	number   int
	solution Solution[O, C]
	example  *Example[O]
}

// New adapts a typed solution into a Day with the given number.
func New[O comparable, C any](number int, s Solution[O, C]) *Typed[O, C] {
	return &Typed[O, C]{number: number, solution: s}
}

// WithExample attaches a self-test case and returns the same day.
func (t *Typed[O, C]) WithExample(ex Example[O]) *Typed[O, C] {
	t.example = &ex
	return t
}

// Number implements Day.
func (t *Typed[O, C]) Number() int {
	return t.number
}

// Part1 implements Day.
func (t *Typed[O, C]) Part1(input string) (Output, any, error) {
	out, ctx, err := t.solution.Part1(input)
	if err != nil {
		return Output{}, nil, err
	}
	return NewOutput(out), ctx, nil
}

// Part2 implements Day. ctx must be the value returned by Part1 of the same
// run; nil is accepted and replaced by the zero context.
func (t *Typed[O, C]) Part2(input string, ctx any) (Output, error) {
	var typed C
	if ctx != nil {
		c, ok := ctx.(C)
		if !ok {
			return Output{}, fmt.Errorf("context has type %T, want %T", ctx, typed)
		}
		typed = c
	}
	out, err := t.solution.Part2(input, typed)
	if err != nil {
		return Output{}, err
	}
	return NewOutput(out), nil
}

// Example implements Day.
func (t *Typed[O, C]) Example() (Case, bool) {
	if t.example == nil || t.example.Input == "" {
		return Case{}, false
	}
	c := Case{Input: t.example.Input}
	if t.example.Part1 != nil {
		out := NewOutput(*t.example.Part1)
		c.Part1 = &out
	}
	if t.example.Part2 != nil {
		out := NewOutput(*t.example.Part2)
		c.Part2 = &out
	}
	return c, true
}
