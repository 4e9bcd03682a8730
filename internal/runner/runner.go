// Package runner drives selected days through example check, input
// acquisition, execution and reporting.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/aocrun/day"
	"github.com/verte-zerg/aocrun/internal/example"
	"github.com/verte-zerg/aocrun/internal/logging"
	"github.com/verte-zerg/aocrun/internal/model"
	"github.com/verte-zerg/aocrun/internal/stats"
)

// InputSource provides puzzle inputs.
type InputSource interface {
	Get(ctx context.Context, year, day int) (string, error)
}

// Recorder persists reported part results.
type Recorder interface {
	InsertResults(ctx context.Context, records []model.RunRecord) error
}

// DayReport is the final state of one day. Err is set only when State is StateFailed.
type DayReport struct {
	Day     int
	State   State
	Err     *DayError
	Example *example.Outcome
	Parts   []stats.PartResult
}

// Result collects the reports of a run in execution order.
type Result struct {
	RunID   string
	Reports []DayReport
}

// Failed returns the reports of days that ended in StateFailed.
func (r Result) Failed() []DayReport {
	var out []DayReport
	for _, rep := range r.Reports {
		if rep.State == StateFailed {
			out = append(out, rep)
		}
	}
	return out
}

// Options wires a Runner's collaborators. Nil fields get defaults, except
// Inputs, which is required unless every run is tests-only.
type Options struct {
	Inputs    InputSource
	Recorder  Recorder
	Renderer  *stats.Renderer
	Collector *stats.Collector
	Examples  *example.Runner
	Logger    *zap.Logger
}

// Runner executes days sequentially with per-day failure isolation.
type Runner struct {
	registry  *day.Registry
	inputs    InputSource
	recorder  Recorder
	renderer  *stats.Renderer
	collector *stats.Collector
	examples  *example.Runner
	logger    *zap.Logger
	now       func() time.Time
}

// New returns a runner over reg.
func New(reg *day.Registry, opts Options) *Runner {
	logger := logging.OrNop(opts.Logger)
	r := &Runner{
		registry:  reg,
		inputs:    opts.Inputs,
		recorder:  opts.Recorder,
		renderer:  opts.Renderer,
		collector: opts.Collector,
		examples:  opts.Examples,
		logger:    logger,
		now:       time.Now,
	}
	if r.collector == nil {
		r.collector = stats.NewCollector()
	}
	if r.examples == nil {
		r.examples = example.NewRunner(logger)
	}
	return r
}

// Run executes days in the order given. A failing day is reported and the
// remaining days still run.
func (r *Runner) Run(ctx context.Context, cfg model.RunConfig, days []int) Result {
	result := Result{RunID: uuid.NewString()}
	for _, n := range days {
		rep := r.runDay(ctx, cfg, n, result.RunID)
		if rep.Err != nil {
			r.logger.Error("day failed",
				zap.Int("day", rep.Day),
				zap.String("phase", string(rep.Err.Phase)),
				zap.Error(rep.Err.Err),
			)
			r.line(rep.Err.Error(), true)
		}
		result.Reports = append(result.Reports, rep)
	}
	return result
}

func (r *Runner) runDay(ctx context.Context, cfg model.RunConfig, n int, runID string) (rep DayReport) {
	rep = DayReport{Day: n, State: StatePending}
	fail := func(phase Phase, err error) DayReport {
		rep.State = StateFailed
		rep.Err = &DayError{Day: n, Phase: phase, Err: err}
		return rep
	}

	d, ok := r.registry.Get(n)
	if !ok {
		return fail(PhaseSelect, fmt.Errorf("no implementation registered for day %d", n))
	}
	started := r.now()

	if !cfg.SkipTests {
		outcome, err := r.examples.Run(d)
		if err != nil {
			return fail(PhaseExample, err)
		}
		rep.Example = &outcome
		if outcome.Skipped {
			r.line(fmt.Sprintf("Day %d: no example, tests skipped", n), false)
		} else {
			parts := exampleParts(outcome)
			r.render(fmt.Sprintf("Day %d (example)", n), parts)
			r.record(ctx, runID, started, cfg, n, model.ModeExample, parts)
		}
		if err := outcome.Mismatch(); err != nil {
			return fail(PhaseExample, err)
		}
		rep.State = StateExampleChecked
	}
	if cfg.TestsOnly {
		rep.State = StateReported
		return rep
	}

	if r.inputs == nil {
		return fail(PhaseInput, errors.New("no input source configured"))
	}
	input, err := r.inputs.Get(ctx, cfg.Year, n)
	if err != nil {
		return fail(PhaseInput, err)
	}
	rep.State = StateInputAcquired

	r.logger.Debug("starting part 1", zap.Int("day", n), zap.Int("runs", cfg.Stats))
	var (
		out1 day.Output
		ctx1 any
	)
	sum1, err := r.collector.Collect(func() error {
		out, c, err := day.RunPart1(d, input)
		if err != nil {
			return err
		}
		out1, ctx1 = out, c
		return nil
	}, cfg.Stats)
	if err != nil {
		return fail(PhasePart1, err)
	}
	rep.State = StatePart1Done
	r.logger.Info("part 1 completed", zap.Int("day", n), zap.Stringer("result", out1), zap.Duration("mean", sum1.Mean))

	r.logger.Debug("starting part 2", zap.Int("day", n), zap.Int("runs", cfg.Stats))
	var out2 day.Output
	first := true
	sum2, err := r.collector.CollectTimed(func() (time.Duration, error) {
		c := ctx1
		ctx1 = nil
		if !first {
			// The context is consumed by the first run; later runs rebuild
			// it outside the measurement.
			_, fresh, err := day.RunPart1(d, input)
			if err != nil {
				return 0, fmt.Errorf("recomputing context: %w", err)
			}
			c = fresh
		}
		first = false
		start := r.now()
		out, err := day.RunPart2(d, input, c)
		elapsed := r.now().Sub(start)
		if err != nil {
			return 0, err
		}
		out2 = out
		return elapsed, nil
	}, cfg.Stats)
	if err != nil {
		return fail(PhasePart2, err)
	}
	rep.State = StatePart2Done
	r.logger.Info("part 2 completed", zap.Int("day", n), zap.Stringer("result", out2), zap.Duration("mean", sum2.Mean))

	rep.Parts = []stats.PartResult{
		{Part: int(day.Part1), Output: out1.String(), Summary: sum1},
		{Part: int(day.Part2), Output: out2.String(), Summary: sum2},
	}
	r.render(fmt.Sprintf("Day %d", n), rep.Parts)
	r.record(ctx, runID, started, cfg, n, model.ModeInput, rep.Parts)
	rep.State = StateReported
	return rep
}

func exampleParts(o example.Outcome) []stats.PartResult {
	parts := make([]stats.PartResult, 0, 2)
	for i, p := range []example.PartOutcome{o.Part1, o.Part2} {
		summary, _ := stats.Summarize([]time.Duration{p.Elapsed})
		pr := stats.PartResult{
			Part:    i + 1,
			Output:  p.Output.String(),
			Summary: summary,
			Checked: p.Checked(),
			Passed:  p.Passed(),
		}
		if p.Expected != nil {
			pr.Expected = p.Expected.String()
		}
		parts = append(parts, pr)
	}
	return parts
}

func (r *Runner) render(title string, parts []stats.PartResult) {
	if r.renderer == nil {
		return
	}
	if err := r.renderer.RenderParts(title, parts); err != nil {
		r.logger.Warn("failed to write report", zap.Error(err))
	}
}

func (r *Runner) line(text string, failed bool) {
	if r.renderer == nil {
		return
	}
	if err := r.renderer.RenderLine(text, failed); err != nil {
		r.logger.Warn("failed to write report", zap.Error(err))
	}
}

func (r *Runner) record(ctx context.Context, runID string, started time.Time, cfg model.RunConfig, n int, mode model.Mode, parts []stats.PartResult) {
	if r.recorder == nil || !cfg.History {
		return
	}
	records := make([]model.RunRecord, 0, len(parts))
	for _, p := range parts {
		rec := model.RunRecord{
			RunID:     runID,
			StartedAt: started,
			Year:      cfg.Year,
			Day:       n,
			Part:      p.Part,
			Mode:      mode,
			Output:    p.Output,
			Runs:      p.Summary.Runs,
			Min:       p.Summary.Min,
			Max:       p.Summary.Max,
			Mean:      p.Summary.Mean,
			Median:    p.Summary.Median,
		}
		if p.Checked {
			passed := p.Passed
			rec.Passed = &passed
		}
		records = append(records, rec)
	}
	if err := r.recorder.InsertResults(ctx, records); err != nil {
		r.logger.Warn("failed to record history", zap.Int("day", n), zap.Error(err))
	}
}
