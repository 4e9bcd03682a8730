// Package example self-tests a day against its author-supplied example.
package example

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/aocrun/day"
	"github.com/verte-zerg/aocrun/internal/logging"
)

// PartOutcome is the result of one part on the example input.
type PartOutcome struct {
	Output   day.Output
	Elapsed  time.Duration
	Expected *day.Output
}

// Checked reports whether an expected value was supplied.
func (p PartOutcome) Checked() bool {
	return p.Expected != nil
}

// Passed reports whether the output matched. Unchecked parts pass.
func (p PartOutcome) Passed() bool {
	return p.Expected == nil || p.Output.Equal(*p.Expected)
}

// Outcome is the result of running a day's example.
type Outcome struct {
	Day     int
	Skipped bool
	Part1   PartOutcome
	Part2   PartOutcome
}

// Passed reports whether every checked part matched.
func (o Outcome) Passed() bool {
	return o.Skipped || (o.Part1.Passed() && o.Part2.Passed())
}

// Mismatch returns a *MismatchError describing failed comparisons, or nil.
func (o Outcome) Mismatch() error {
	if o.Passed() {
		return nil
	}
	err := &MismatchError{Day: o.Day}
	for _, p := range []struct {
		part    day.Part
		outcome PartOutcome
	}{{day.Part1, o.Part1}, {day.Part2, o.Part2}} {
		if p.outcome.Passed() {
			continue
		}
		err.Parts = append(err.Parts, PartMismatch{
			Part: p.part,
			Got:  p.outcome.Output.String(),
			Want: p.outcome.Expected.String(),
		})
	}
	return err
}

// PartMismatch is one failed comparison.
type PartMismatch struct {
	Part day.Part
	Got  string
	Want string
}

// MismatchError reports example outputs that disagree with expectations.
type MismatchError struct {
	Day   int
	Parts []PartMismatch
}

func (e *MismatchError) Error() string {
	details := make([]string, 0, len(e.Parts))
	for _, p := range e.Parts {
		details = append(details, fmt.Sprintf("%s got %s, want %s", p.Part, p.Got, p.Want))
	}
	return fmt.Sprintf("day %d example mismatch: %s", e.Day, strings.Join(details, "; "))
}

// Runner executes examples.
type Runner struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewRunner returns a runner using the wall clock.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{now: time.Now, logger: logging.OrNop(logger)}
}

// Run executes both parts of d on its example input. A day without an example
// is skipped. Part 2 runs even when part 1 mismatched; an execution error
// stops the run and is returned as *day.ExecutionError.
func (r *Runner) Run(d day.Day) (Outcome, error) {
	c, ok := d.Example()
	if !ok {
		r.logger.Debug("no example, skipping tests", zap.Int("day", d.Number()))
		return Outcome{Day: d.Number(), Skipped: true}, nil
	}
	r.logger.Info("running tests", zap.Int("day", d.Number()))

	out := Outcome{Day: d.Number()}
	start := r.now()
	out1, ctx, err := day.RunPart1(d, c.Input)
	if err != nil {
		return out, err
	}
	out.Part1 = PartOutcome{Output: out1, Elapsed: r.now().Sub(start), Expected: c.Part1}
	r.logPart(d.Number(), day.Part1, out.Part1)

	start = r.now()
	out2, err := day.RunPart2(d, c.Input, ctx)
	if err != nil {
		return out, err
	}
	out.Part2 = PartOutcome{Output: out2, Elapsed: r.now().Sub(start), Expected: c.Part2}
	r.logPart(d.Number(), day.Part2, out.Part2)
	return out, nil
}

func (r *Runner) logPart(n int, part day.Part, p PartOutcome) {
	fields := []zap.Field{
		zap.Int("day", n),
		zap.Int("part", int(part)),
		zap.Stringer("result", p.Output),
		zap.Duration("elapsed", p.Elapsed),
	}
	switch {
	case !p.Checked():
		r.logger.Debug("example part unchecked", fields...)
	case p.Passed():
		r.logger.Debug("example part passed", fields...)
	default:
		r.logger.Warn("example part mismatch", append(fields, zap.Stringer("want", p.Expected))...)
	}
}
