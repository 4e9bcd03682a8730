package aocrun

import (
	"path/filepath"
	"testing"

	"github.com/verte-zerg/aocrun/day"
)

func constDay(n int) day.Day {
	return day.New[int, struct{}](n, day.Funcs[int, struct{}]{
		Part1Func: func(string) (int, struct{}, error) { return 1, struct{}{}, nil },
		Part2Func: func(string, struct{}) (int, error) { return 2, nil },
	}).WithExample(day.Example[int]{Input: "x", Part1: day.Expect(1), Part2: day.Expect(2)})
}

func TestRunRejectsDuplicateDays(t *testing.T) {
	if code := Run(2024, nil, constDay(1), constDay(1)); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunTestsOnly(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	if code := Run(2024, []string{"--all", "--tests-only", "--no-history"}, constDay(1), constDay(2)); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}
