package stats

import (
	"strings"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Part", "Result", "Time"}
	rows := [][]string{
		{"1", "12345", "1.5ms"},
		{"2", "7", "250µs"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign, nil)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Part  Result   Time" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1     12345   1.5ms" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "2     7       250µs" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableStylesPaddedCells(t *testing.T) {
	style := func(row, col int, padded string) string {
		if row == 0 && col == 1 {
			return "[" + padded + "]"
		}
		return padded
	}
	lines := formatTable([]string{"A", "Check"}, [][]string{{"x", "ok"}}, nil, style)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], "[ok   ]") {
		t.Fatalf("expected padded cell to be styled, got %q", lines[1])
	}
}
