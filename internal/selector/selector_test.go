package selector

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/aocrun/day"
	"github.com/verte-zerg/aocrun/internal/model"
)

func testRegistry(t *testing.T, numbers ...int) *day.Registry {
	t.Helper()
	days := make([]day.Day, 0, len(numbers))
	for _, n := range numbers {
		days = append(days, day.New[int, struct{}](n, day.Funcs[int, struct{}]{
			Part1Func: func(string) (int, struct{}, error) { return 0, struct{}{}, nil },
			Part2Func: func(string, struct{}) (int, error) { return 0, nil },
		}))
	}
	reg, err := day.NewRegistry(days...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func eastern(year int, month time.Month, dom, hour int) time.Time {
	return time.Date(year, month, dom, hour, 0, 0, 0, puzzleZone)
}

func TestResolve(t *testing.T) {
	reg := testRegistry(t, 1, 2, 10, 12, 13)
	tests := []struct {
		name    string
		sel     model.Selection
		year    int
		now     time.Time
		want    []int
		wantErr error
	}{
		{name: "explicit", sel: model.Selection{Day: 2}, year: 2024, want: []int{2}},
		{name: "explicit beyond 12 before 2025", sel: model.Selection{Day: 13}, year: 2024, want: []int{13}},
		{name: "explicit beyond 12 from 2025", sel: model.Selection{Day: 13}, year: 2025, wantErr: ErrDayOutOfRange},
		{name: "explicit zero-range", sel: model.Selection{Day: 26}, year: 2024, wantErr: ErrDayOutOfRange},
		{name: "explicit negative", sel: model.Selection{Day: -1}, year: 2024, wantErr: ErrDayOutOfRange},
		{name: "explicit zero", sel: model.Selection{Explicit: true}, year: 2024, now: eastern(2024, time.December, 1, 12), wantErr: ErrDayOutOfRange},
		{name: "explicit zero with all", sel: model.Selection{Explicit: true, All: true}, year: 2024, wantErr: ErrConflictingSelection},
		{name: "explicit unregistered", sel: model.Selection{Day: 5}, year: 2024, wantErr: ErrDayNotRegistered},
		{name: "all", sel: model.Selection{All: true}, year: 2024, want: []int{1, 2, 10, 12, 13}},
		{name: "all beyond cap", sel: model.Selection{All: true}, year: 2025, wantErr: ErrDayOutOfRange},
		{name: "conflict", sel: model.Selection{Day: 1, All: true}, year: 2024, wantErr: ErrConflictingSelection},
		{name: "infer december", year: 2025, now: eastern(2025, time.December, 10, 12), want: []int{10}},
		{name: "infer not december", year: 2025, now: eastern(2025, time.January, 5, 12), wantErr: ErrCannotInferDay},
		{name: "infer other year", year: 2024, now: eastern(2025, time.December, 10, 12), wantErr: ErrCannotInferDay},
		{name: "infer past cap", year: 2025, now: eastern(2025, time.December, 20, 12), wantErr: ErrCannotInferDay},
		{name: "infer unregistered", year: 2024, now: eastern(2024, time.December, 3, 12), wantErr: ErrDayNotRegistered},
		// 03:00 UTC on the 11th is still the 10th in UTC-5.
		{name: "infer uses utc-5", year: 2025, now: time.Date(2025, time.December, 11, 3, 0, 0, 0, time.UTC), want: []int{10}},
		// 05:00 UTC on 1 Dec is midnight in UTC-5, so day 1 has unlocked.
		{name: "infer unlock boundary", year: 2024, now: time.Date(2024, time.December, 1, 5, 0, 0, 0, time.UTC), want: []int{1}},
		{name: "infer just before unlock", year: 2024, now: time.Date(2024, time.December, 1, 4, 59, 0, 0, time.UTC), wantErr: ErrCannotInferDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.sel, tt.year, tt.now, reg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				var selErr *SelectionError
				if !errors.As(err, &selErr) {
					t.Fatalf("expected *SelectionError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected days (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMaxDay(t *testing.T) {
	for year, want := range map[int]int{2015: 25, 2024: 25, 2025: 12, 2030: 12} {
		if got := MaxDay(year); got != want {
			t.Fatalf("MaxDay(%d) = %d, want %d", year, got, want)
		}
	}
}
