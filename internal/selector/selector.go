// Package selector decides which days a run covers.
package selector

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/aocrun/day"
	"github.com/verte-zerg/aocrun/internal/model"
)

var (
	ErrDayOutOfRange        = errors.New("day out of range")
	ErrDayNotRegistered     = errors.New("no implementation registered for day")
	ErrCannotInferDay       = errors.New("cannot infer day from today's date")
	ErrConflictingSelection = errors.New("--day and --all are mutually exclusive")
)

// Puzzles unlock at midnight US Eastern; a fixed offset is close enough for
// picking "today" in December.
var puzzleZone = time.FixedZone("UTC-5", -5*60*60)

// SelectionError reports why no valid set of days could be chosen.
type SelectionError struct {
	Day  int
	Year int
	Err  error
}

func (e *SelectionError) Error() string {
	if e.Day != 0 {
		return fmt.Sprintf("day %d (%d): %v", e.Day, e.Year, e.Err)
	}
	return fmt.Sprintf("%d: %v", e.Year, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// MaxDay returns the last puzzle day of year. From 2025 on there are 12.
func MaxDay(year int) int {
	if year >= 2025 {
		return 12
	}
	return day.MaxNumber
}

// PuzzleDate returns now as a calendar date in the puzzle time zone.
func PuzzleDate(now time.Time) (year int, month time.Month, dom int) {
	return now.In(puzzleZone).Date()
}

// Resolve returns the days to run in ascending order.
func Resolve(sel model.Selection, year int, now time.Time, reg *day.Registry) ([]int, error) {
	maxDay := MaxDay(year)
	switch {
	case sel.HasDay() && sel.All:
		return nil, &SelectionError{Day: sel.Day, Year: year, Err: ErrConflictingSelection}
	case sel.HasDay():
		return explicit(sel.Day, year, maxDay, reg)
	case sel.All:
		days := reg.Numbers()
		for _, d := range days {
			if d > maxDay {
				return nil, &SelectionError{Day: d, Year: year, Err: fmt.Errorf("%w (1-%d)", ErrDayOutOfRange, maxDay)}
			}
		}
		return days, nil
	}

	y, m, dom := PuzzleDate(now)
	if y != year || m != time.December || dom > maxDay {
		return nil, &SelectionError{
			Year: year,
			Err:  fmt.Errorf("%w: it is %04d-%02d-%02d in UTC-5; use --day or --all", ErrCannotInferDay, y, int(m), dom),
		}
	}
	return explicit(dom, year, maxDay, reg)
}

func explicit(n, year, maxDay int, reg *day.Registry) ([]int, error) {
	if n < 1 || n > maxDay {
		return nil, &SelectionError{Day: n, Year: year, Err: fmt.Errorf("%w (1-%d)", ErrDayOutOfRange, maxDay)}
	}
	if _, ok := reg.Get(n); !ok {
		return nil, &SelectionError{Day: n, Year: year, Err: ErrDayNotRegistered}
	}
	return []int{n}, nil
}
