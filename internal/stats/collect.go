package stats

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrInvalidRunCount is returned for run counts below one.
	ErrInvalidRunCount = errors.New("run count must be at least 1")
	// ErrNoSamples is returned when summarizing an empty sample set.
	ErrNoSamples = errors.New("no samples")
)

// Summary reduces the elapsed times of repeated runs of one operation.
type Summary struct {
	Runs    int
	Min     time.Duration
	Max     time.Duration
	Mean    time.Duration
	Median  time.Duration
	Samples []time.Duration
}

// Summarize computes min, max, mean and median. The median of an even-sized
// sample is the mean of the two middle values.
func Summarize(samples []time.Duration) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, s := range sorted {
		total += s
	}
	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	kept := make([]time.Duration, len(samples))
	copy(kept, samples)
	return Summary{
		Runs:    n,
		Min:     sorted[0],
		Max:     sorted[n-1],
		Mean:    total / time.Duration(n),
		Median:  median,
		Samples: kept,
	}, nil
}

// Collector times repeated runs of an operation, serially on the calling
// goroutine.
type Collector struct {
	now func() time.Time
}

// NewCollector returns a collector using the wall clock.
func NewCollector() *Collector {
	return &Collector{now: time.Now}
}

// NewCollectorWithClock returns a collector reading time from now.
func NewCollectorWithClock(now func() time.Time) *Collector {
	return &Collector{now: now}
}

// Collect runs op n times, timing each run. The first failure aborts the
// batch and is returned without a summary.
func (c *Collector) Collect(op func() error, n int) (Summary, error) {
	return c.CollectTimed(func() (time.Duration, error) {
		start := c.now()
		err := op()
		return c.now().Sub(start), err
	}, n)
}

// CollectTimed runs op n times, using the duration each run reports. It lets
// an operation exclude its own setup from the measurement.
func (c *Collector) CollectTimed(op func() (time.Duration, error), n int) (Summary, error) {
	if n < 1 {
		return Summary{}, fmt.Errorf("%w: got %d", ErrInvalidRunCount, n)
	}
	samples := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		elapsed, err := op()
		if err != nil {
			return Summary{}, err
		}
		samples = append(samples, elapsed)
	}
	return Summarize(samples)
}
