// Package stats contains timing statistics and result reporting.
package stats

import (
	"math"
	"strings"
	"time"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the samples, in run
// order.
func Sparkline(samples []time.Duration) string {
	if len(samples) == 0 {
		return ""
	}
	minVal := samples[0]
	maxVal := samples[0]
	for _, v := range samples[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(samples))
	}
	spread := float64(maxVal - minVal)
	var b strings.Builder
	for _, v := range samples {
		pos := float64(v-minVal) / spread
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample squeezes samples into at most width buckets by averaging, so long
// stats runs still fit on one line.
func Resample(samples []time.Duration, width int) []time.Duration {
	if width <= 0 || len(samples) <= width {
		return samples
	}
	out := make([]time.Duration, width)
	for i := 0; i < width; i++ {
		start := i * len(samples) / width
		end := (i + 1) * len(samples) / width
		var sum time.Duration
		for _, s := range samples[start:end] {
			sum += s
		}
		out[i] = sum / time.Duration(end-start)
	}
	return out
}

// FormatDuration renders d with precision suited to its magnitude.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d >= time.Microsecond:
		return d.Round(10 * time.Nanosecond).String()
	default:
		return d.String()
	}
}
