package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/aocrun/internal/config"
	"github.com/verte-zerg/aocrun/internal/model"
	"github.com/verte-zerg/aocrun/internal/stats"
	"github.com/verte-zerg/aocrun/internal/store"
)

type historyFlags struct {
	year   int
	day    int
	last   int
	format string
	plot   bool
	dbPath string
}

func newHistoryCmd(app App) *cobra.Command {
	flags := &historyFlags{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryCmd(cmd, app, flags)
		},
	}
	cmd.Flags().IntVar(&flags.year, "year", 0, "year filter")
	cmd.Flags().IntVarP(&flags.day, "day", "d", 0, "day filter")
	cmd.Flags().IntVar(&flags.last, "last", 0, "limit to the last N part results")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&flags.plot, "plot", false, "plot mean part times of real-input runs")
	cmd.Flags().StringVar(&flags.dbPath, "db", config.DefaultHistoryPath(), "path to the history database")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, app App, flags *historyFlags) error {
	format := strings.ToLower(strings.TrimSpace(flags.format))
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("--format must be one of table, json, yaml")
	}
	if flags.last < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := store.Open(flags.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		_ = st.Close()
	}()

	records, err := st.ListResults(cmd.Context(), model.HistoryFilter{
		Year: flags.year,
		Day:  flags.day,
		Last: flags.last,
	})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if flags.plot {
		r := stats.NewRenderer(app.Out, stats.ShouldUseColor(app.Out))
		return r.RenderTrend("Mean time per run", trendsFromRecords(records), 0)
	}
	return writeHistory(app.Out, format, records)
}

// trendsFromRecords groups real-input results into one series per year, day
// and part, in that order.
func trendsFromRecords(records []model.RunRecord) []stats.Trend {
	type key struct{ year, day, part int }
	samples := map[key][]time.Duration{}
	var keys []key
	for _, rec := range records {
		if rec.Mode != model.ModeInput {
			continue
		}
		k := key{rec.Year, rec.Day, rec.Part}
		if _, ok := samples[k]; !ok {
			keys = append(keys, k)
		}
		samples[k] = append(samples[k], rec.Mean)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.day != b.day {
			return a.day < b.day
		}
		return a.part < b.part
	})
	trends := make([]stats.Trend, 0, len(keys))
	for _, k := range keys {
		trends = append(trends, stats.Trend{
			Name:    fmt.Sprintf("%d day %d part %d", k.year, k.day, k.part),
			Samples: samples[k],
		})
	}
	return trends
}

func writeHistory(w io.Writer, format string, records []model.RunRecord) error {
	if records == nil {
		records = []model.RunRecord{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return stats.NewRenderer(w, stats.ShouldUseColor(w)).RenderHistory(records)
	}
}
