// Package model defines shared data structures.
package model

import "time"

// Selection is the day-choosing part of the command line.
type Selection struct {
	// Day is an explicit day number; 0 means none given unless Explicit is set.
	Day int
	// Explicit marks Day as passed on the command line, even when it is 0.
	Explicit bool
	All      bool
}

// HasDay reports whether a single day was requested.
func (s Selection) HasDay() bool {
	return s.Explicit || s.Day != 0
}

// RunConfig defines a validated run.
type RunConfig struct {
	Year      int
	Selection Selection
	SkipTests bool
	TestsOnly bool
	// Stats is how many times each part is executed for timing.
	Stats   int
	History bool
}

// Mode tells whether a recorded result came from the example or the real input.
type Mode string

const (
	ModeExample Mode = "example"
	ModeInput   Mode = "input"
)

// RunRecord is one persisted part result.
type RunRecord struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Year      int           `json:"year" yaml:"year"`
	Day       int           `json:"day" yaml:"day"`
	Part      int           `json:"part" yaml:"part"`
	Mode      Mode          `json:"mode" yaml:"mode"`
	Output    string        `json:"output" yaml:"output"`
	Runs      int           `json:"runs" yaml:"runs"`
	Min       time.Duration `json:"min_ns" yaml:"min"`
	Max       time.Duration `json:"max_ns" yaml:"max"`
	Mean      time.Duration `json:"mean_ns" yaml:"mean"`
	Median    time.Duration `json:"median_ns" yaml:"median"`
	// Passed is nil when the result was not checked against an expectation.
	Passed *bool `json:"passed,omitempty" yaml:"passed,omitempty"`
}

// HistoryFilter narrows history listings.
type HistoryFilter struct {
	Year int
	Day  int
	Last int
}
