package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/aocrun/internal/model"
)

const (
	sparkWidthBackup = 40
	sparkWidthMax    = 60
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// PartResult is the reported outcome of one part.
type PartResult struct {
	Part    int
	Output  string
	Summary Summary
	// Checked is set when an expected value was available; Passed and
	// Expected are meaningful only then.
	Checked  bool
	Passed   bool
	Expected string
}

// Renderer writes result tables.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer returns a renderer. Colour is applied only when color is set.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

// RenderParts prints a titled table for the parts of one day.
func (r *Renderer) RenderParts(title string, parts []PartResult) error {
	if _, err := fmt.Fprintln(r.w, r.paint(titleStyle, title)); err != nil {
		return err
	}
	if len(parts) == 0 {
		_, err := fmt.Fprintln(r.w, r.paint(mutedStyle, "No results."))
		return err
	}

	multi := false
	checked := false
	for _, p := range parts {
		if p.Summary.Runs > 1 {
			multi = true
		}
		if p.Checked {
			checked = true
		}
	}

	headers := []string{"Part", "Result", "Time"}
	rightAlign := map[int]bool{2: true}
	if multi {
		headers = []string{"Part", "Result", "Mean", "Min", "Max", "Median", "Runs"}
		rightAlign = map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	}
	checkCol := -1
	if checked {
		checkCol = len(headers)
		headers = append(headers, "Check")
	}
	sparkCol := -1
	if multi {
		sparkCol = len(headers)
		headers = append(headers, "Samples")
	}

	rows := make([][]string, 0, len(parts))
	for _, p := range parts {
		row := []string{strconv.Itoa(p.Part), p.Output}
		if multi {
			row = append(row,
				FormatDuration(p.Summary.Mean),
				FormatDuration(p.Summary.Min),
				FormatDuration(p.Summary.Max),
				FormatDuration(p.Summary.Median),
				strconv.Itoa(p.Summary.Runs),
			)
		} else {
			row = append(row, FormatDuration(p.Summary.Mean))
		}
		if checkCol >= 0 {
			row = append(row, checkLabel(p))
		}
		if sparkCol >= 0 {
			row = append(row, Sparkline(Resample(p.Summary.Samples, sparkWidth(r.w))))
		}
		rows = append(rows, row)
	}

	style := func(rowIdx, col int, padded string) string {
		if rowIdx < 0 {
			return r.paint(mutedStyle, padded)
		}
		if col == checkCol && parts[rowIdx].Checked {
			if parts[rowIdx].Passed {
				return r.paint(passStyle, padded)
			}
			return r.paint(failStyle, padded)
		}
		return padded
	}
	for _, line := range formatTable(headers, rows, rightAlign, style) {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w, "")
	return err
}

// RenderLine prints a single status line, painted as a failure when failed.
func (r *Renderer) RenderLine(text string, failed bool) error {
	if failed {
		text = r.paint(failStyle, text)
	}
	_, err := fmt.Fprintln(r.w, text)
	return err
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

func checkLabel(p PartResult) string {
	switch {
	case !p.Checked:
		return "-"
	case p.Passed:
		return "ok"
	default:
		return fmt.Sprintf("want %s", p.Expected)
	}
}

func sparkWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return sparkWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return sparkWidthBackup
	}
	if width/3 > sparkWidthMax {
		return sparkWidthMax
	}
	return width / 3
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// RenderHistory prints recorded part results, oldest first.
func (r *Renderer) RenderHistory(records []model.RunRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(r.w, r.paint(mutedStyle, "No recorded runs."))
		return err
	}
	headers := []string{"Started", "Year", "Day", "Part", "Mode", "Result", "Mean", "Runs", "Check"}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 6: true, 7: true}
	const checkCol = 8
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		check := "-"
		if rec.Passed != nil {
			check = "ok"
			if !*rec.Passed {
				check = "fail"
			}
		}
		rows = append(rows, []string{
			rec.StartedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.Day),
			strconv.Itoa(rec.Part),
			string(rec.Mode),
			rec.Output,
			FormatDuration(rec.Mean),
			strconv.Itoa(rec.Runs),
			check,
		})
	}
	style := func(rowIdx, col int, padded string) string {
		if rowIdx < 0 {
			return r.paint(mutedStyle, padded)
		}
		if col == checkCol && records[rowIdx].Passed != nil {
			if *records[rowIdx].Passed {
				return r.paint(passStyle, padded)
			}
			return r.paint(failStyle, padded)
		}
		return padded
	}
	for _, line := range formatTable(headers, rows, rightAlign, style) {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}
