package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRenderTrend(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	trends := []Trend{
		{Name: "part 1", Samples: []time.Duration{ms(10), ms(20), ms(30)}},
		{Name: "part 2", Samples: []time.Duration{ms(30)}},
		{Name: "empty"},
	}
	if err := r.RenderTrend("Day 1", trends, 4); err != nil {
		t.Fatalf("RenderTrend failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected title, 4 rows and legend, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Day 1" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "30ms │ ") {
		t.Fatalf("expected the top row to carry the max label, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "10ms │ ") {
		t.Fatalf("expected the bottom row to carry the min label, got %q", lines[4])
	}
	blank := string(brailleFromMask(0))
	for _, row := range []string{lines[1], lines[4]} {
		plot := strings.SplitN(row, "│ ", 2)[1]
		if strings.Trim(plot, blank) == "" {
			t.Fatalf("expected dots in row %q", row)
		}
	}
	if !strings.Contains(lines[5], "part 1") || !strings.Contains(lines[5], "part 2") || strings.Contains(lines[5], "empty") {
		t.Fatalf("unexpected legend %q", lines[5])
	}
}

func TestRenderTrendNoSamples(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf, false).RenderTrend("Day 1", nil, 0); err != nil {
		t.Fatalf("RenderTrend failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No recorded runs.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDurationToDot(t *testing.T) {
	if got := durationToDot(ms(10), ms(10), ms(30), 8); got != 7 {
		t.Fatalf("min should map to the bottom row, got %d", got)
	}
	if got := durationToDot(ms(30), ms(10), ms(30), 8); got != 0 {
		t.Fatalf("max should map to the top row, got %d", got)
	}
	if got := durationToDot(ms(5), ms(5), ms(5), 8); got != 4 {
		t.Fatalf("flat series should sit mid-plot, got %d", got)
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	var pts [][2]int
	drawLine(0, 0, 3, 1, func(x, y int) { pts = append(pts, [2]int{x, y}) })
	if pts[0] != [2]int{0, 0} || pts[len(pts)-1] != [2]int{3, 1} {
		t.Fatalf("unexpected line %v", pts)
	}
}
