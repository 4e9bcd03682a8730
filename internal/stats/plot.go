package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Trend is one named series of durations, oldest first.
type Trend struct {
	Name    string
	Samples []time.Duration
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	maxPlotWidth      = 72
	plotWidthBackup   = 60
	axisSeparator     = " │ "
)

var trendStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#13C2C2")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#EB2F96")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#2F54EB")),
}

// RenderTrend plots the trends as braille lines on a shared duration axis.
// A non-positive height uses the default.
func (r *Renderer) RenderTrend(title string, trends []Trend, height int) error {
	kept := trends[:0:0]
	for _, t := range trends {
		if len(t.Samples) > 0 {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		_, err := fmt.Fprintln(r.w, r.paint(mutedStyle, "No recorded runs."))
		return err
	}
	if height <= 0 {
		height = defaultPlotHeight
	}

	lo, hi := durationRange(kept)
	labels := []string{FormatDuration(hi), FormatDuration(lo + (hi-lo)/2), FormatDuration(lo)}
	axisWidth := 0
	for _, l := range labels {
		axisWidth = max(axisWidth, runewidth.StringWidth(l))
	}
	width := plotWidth(r.w, axisWidth+runewidth.StringWidth(axisSeparator))

	cells := make([][][]uint8, len(kept))
	for i, t := range kept {
		cells[i] = plotTrend(t.Samples, lo, hi, width, height)
	}

	if _, err := fmt.Fprintln(r.w, r.paint(titleStyle, title)); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = labels[0]
		case height / 2:
			label = labels[1]
		case height - 1:
			label = labels[2]
		}
		var row strings.Builder
		row.WriteString(strings.Repeat(" ", axisWidth-runewidth.StringWidth(label)))
		row.WriteString(r.paint(mutedStyle, label+axisSeparator))
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i := range cells {
				if m := cells[i][y][x]; m != 0 {
					if owner < 0 {
						owner = i
					}
					mask |= m
				}
			}
			ch := string(brailleFromMask(mask))
			if owner >= 0 {
				ch = r.paint(trendStyles[owner%len(trendStyles)], ch)
			}
			row.WriteString(ch)
		}
		if _, err := fmt.Fprintln(r.w, strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}

	legend := make([]string, 0, len(kept))
	for i, t := range kept {
		legend = append(legend, r.paint(trendStyles[i%len(trendStyles)], fmt.Sprintf("%c %s", brailleFromMask(0xff), t.Name)))
	}
	_, err := fmt.Fprintln(r.w, strings.Repeat(" ", axisWidth)+"   "+strings.Join(legend, "  "))
	return err
}

func durationRange(trends []Trend) (lo, hi time.Duration) {
	lo, hi = trends[0].Samples[0], trends[0].Samples[0]
	for _, t := range trends {
		for _, s := range t.Samples {
			lo = min(lo, s)
			hi = max(hi, s)
		}
	}
	return lo, hi
}

// plotTrend rasterises samples into a height x width grid of braille masks.
// Each cell holds 2x4 dots.
func plotTrend(samples []time.Duration, lo, hi time.Duration, width, height int) [][]uint8 {
	grid := make([][]uint8, height)
	for y := range grid {
		grid[y] = make([]uint8, width)
	}
	dotsX, dotsY := width*2, height*4
	samples = Resample(samples, dotsX)

	prevX, prevY := -1, -1
	for i, s := range samples {
		x := 0
		if len(samples) > 1 {
			x = i * (dotsX - 1) / (len(samples) - 1)
		}
		y := durationToDot(s, lo, hi, dotsY)
		if prevX < 0 {
			setBrailleDot(grid, x, y)
		} else {
			drawLine(prevX, prevY, x, y, func(px, py int) {
				setBrailleDot(grid, px, py)
			})
		}
		prevX, prevY = x, y
	}
	return grid
}

// durationToDot maps v to a dot row, 0 being the top of the plot.
func durationToDot(v, lo, hi time.Duration, rows int) int {
	if hi == lo || rows <= 1 {
		return rows / 2
	}
	pos := float64(v-lo) / float64(hi-lo)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return min(max(row, 0), rows-1)
}

func plotWidth(w io.Writer, reserved int) int {
	total := plotWidthBackup + reserved
	if file, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(file.Fd())); err == nil && tw > 0 {
			total = tw
		}
	}
	return min(max(total-reserved, minPlotWidth), maxPlotWidth)
}

// drawLine walks the Bresenham line from (x0, y0) to (x1, y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Braille dot bits by column, then row.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func setBrailleDot(grid [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(grid) || cx >= len(grid[cy]) {
		return
	}
	grid[cy][cx] |= brailleBits[x%2][y%4]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
