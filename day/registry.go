package day

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidNumber is returned for day numbers outside 1..MaxNumber.
	ErrInvalidNumber = errors.New("invalid day number")
	// ErrDuplicateNumber is returned when two days share a number.
	ErrDuplicateNumber = errors.New("duplicate day number")
)

// Registry is an ordered, immutable set of days keyed by number.
type Registry struct {
	days     []Day
	byNumber map[int]Day
}

// NewRegistry validates the days and orders them by number.
func NewRegistry(days ...Day) (*Registry, error) {
	r := &Registry{
		days:     make([]Day, 0, len(days)),
		byNumber: make(map[int]Day, len(days)),
	}
	for _, d := range days {
		if d == nil {
			return nil, fmt.Errorf("nil day: %w", ErrInvalidNumber)
		}
		n := d.Number()
		if n < 1 || n > MaxNumber {
			return nil, fmt.Errorf("day %d: %w (must be 1-%d)", n, ErrInvalidNumber, MaxNumber)
		}
		if _, ok := r.byNumber[n]; ok {
			return nil, fmt.Errorf("day %d: %w", n, ErrDuplicateNumber)
		}
		r.byNumber[n] = d
		r.days = append(r.days, d)
	}
	sort.Slice(r.days, func(i, j int) bool {
		return r.days[i].Number() < r.days[j].Number()
	})
	return r, nil
}

// Get returns the day with number n.
func (r *Registry) Get(n int) (Day, bool) {
	d, ok := r.byNumber[n]
	return d, ok
}

// Numbers returns the registered day numbers in ascending order.
func (r *Registry) Numbers() []int {
	out := make([]int, len(r.days))
	for i, d := range r.days {
		out[i] = d.Number()
	}
	return out
}

// Len returns the number of registered days.
func (r *Registry) Len() int {
	return len(r.days)
}
