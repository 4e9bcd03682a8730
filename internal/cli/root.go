// Package cli wires the command line onto the run harness.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/aocrun/day"
	"github.com/verte-zerg/aocrun/internal/config"
	"github.com/verte-zerg/aocrun/internal/input"
	"github.com/verte-zerg/aocrun/internal/logging"
	"github.com/verte-zerg/aocrun/internal/model"
	"github.com/verte-zerg/aocrun/internal/runner"
	"github.com/verte-zerg/aocrun/internal/selector"
	"github.com/verte-zerg/aocrun/internal/session"
	"github.com/verte-zerg/aocrun/internal/stats"
	"github.com/verte-zerg/aocrun/internal/store"
)

const (
	defaultStats = 1
	firstYear    = 2015
)

// ErrDaysFailed is returned when at least one selected day ends failed.
var ErrDaysFailed = errors.New("one or more days failed")

// App holds what the command line runs against.
type App struct {
	Registry *day.Registry
	// Year is the default puzzle year; --year and the config file override it.
	Year int

	In  *os.File
	Out io.Writer
	Err io.Writer
	Now func() time.Time
}

type runFlags struct {
	configPath string
	year       int
	day        int
	all        bool
	skipTests  bool
	testsOnly  bool
	stats      int
	noHistory  bool
	verbose    bool
}

// settings is the merged flag and file configuration of a run.
type settings struct {
	run         model.RunConfig
	inputsDir   string
	sessionFile string
	baseURL     string
	verbose     bool
}

// Execute runs the command line with args and returns the process exit code.
func Execute(app App, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// NewRootCmd builds the root command. Running it executes the selected days.
func NewRootCmd(app App) *cobra.Command {
	app = app.withDefaults()
	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:           "aocrun",
		Short:         "Run Advent of Code solutions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDays(cmd, app, flags)
		},
	}
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	rootCmd.Flags().StringVar(&flags.configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	rootCmd.Flags().IntVar(&flags.year, "year", app.Year, "puzzle year")
	rootCmd.Flags().IntVarP(&flags.day, "day", "d", 0, "run a single day")
	rootCmd.Flags().BoolVarP(&flags.all, "all", "a", false, "run every registered day")
	rootCmd.Flags().BoolVarP(&flags.skipTests, "skip-tests", "s", false, "skip the example self-tests")
	rootCmd.Flags().BoolVarP(&flags.testsOnly, "tests-only", "t", false, "run only the example self-tests")
	rootCmd.Flags().IntVarP(&flags.stats, "stats", "n", defaultStats, "run each part N times and report timing statistics")
	rootCmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not record results in the history database")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

func (a App) withDefaults() App {
	if a.In == nil {
		a.In = os.Stdin
	}
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Registry == nil {
		a.Registry, _ = day.NewRegistry()
	}
	return a
}

func runDays(cmd *cobra.Command, app App, flags *runFlags) error {
	fileCfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s := mergeSettings(cmd, flags, fileCfg)
	if err := validateConfig(s.run); err != nil {
		return err
	}

	logger := logging.New(app.Err, s.verbose)
	defer func() {
		_ = logger.Sync()
	}()

	days, err := selector.Resolve(s.run.Selection, s.run.Year, app.Now(), app.Registry)
	if err != nil {
		return err
	}
	logger.Debug("selected days", zap.Int("year", s.run.Year), zap.Ints("days", days))

	opts := runner.Options{
		Renderer: stats.NewRenderer(app.Out, stats.ShouldUseColor(app.Out)),
		Logger:   logger,
	}
	if !s.run.TestsOnly {
		creds := session.NewFileProvider(s.sessionFile, newPrompter(app), logger)
		opts.Inputs = input.NewStore(s.inputsDir, input.NewHTTPFetcher(s.baseURL), creds, logger)
	}
	if s.run.History {
		st, err := store.Open(config.DefaultHistoryPath())
		if err != nil {
			logger.Warn("history disabled: failed to open db", zap.Error(err))
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Warn("failed to close db", zap.Error(cerr))
				}
			}()
			opts.Recorder = st
		}
	}

	result := runner.New(app.Registry, opts).Run(cmd.Context(), s.run, days)
	if failed := result.Failed(); len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrDaysFailed, len(failed), len(result.Reports))
	}
	return nil
}

func newPrompter(app App) session.Prompter {
	if out, ok := app.Out.(*os.File); ok {
		return session.NewPrompter(app.In, out)
	}
	return &session.LinePrompter{In: app.In, Out: app.Out}
}

func mergeSettings(cmd *cobra.Command, flags *runFlags, fileCfg config.FileConfig) settings {
	applyIntConfig(cmd, "year", &flags.year, fileCfg.Run.Year)
	applyIntConfig(cmd, "stats", &flags.stats, fileCfg.Run.Stats)
	// An explicit --tests-only overrides skip-tests from the file.
	if !cmd.Flags().Changed("tests-only") {
		applyBoolConfig(cmd, "skip-tests", &flags.skipTests, fileCfg.Run.SkipTests)
	}

	history := !flags.noHistory
	if fileCfg.Run.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Run.History
	}

	s := settings{
		run: model.RunConfig{
			Year:      flags.year,
			Selection: model.Selection{
				Day:      flags.day,
				Explicit: cmd.Flags().Changed("day"),
				All:      flags.all,
			},
			SkipTests: flags.skipTests,
			TestsOnly: flags.testsOnly,
			Stats:     flags.stats,
			History:   history,
		},
		inputsDir:   config.DefaultInputsDir,
		sessionFile: config.DefaultSessionFile,
		baseURL:     input.DefaultBaseURL,
		verbose:     flags.verbose,
	}
	setString(&s.inputsDir, fileCfg.Run.InputsDir)
	setString(&s.sessionFile, fileCfg.Run.SessionFile)
	setString(&s.baseURL, fileCfg.Run.BaseURL)
	return s
}

func validateConfig(cfg model.RunConfig) error {
	if cfg.Selection.HasDay() && cfg.Selection.All {
		return fmt.Errorf("--day and --all are mutually exclusive")
	}
	if cfg.SkipTests && cfg.TestsOnly {
		return fmt.Errorf("--skip-tests and --tests-only are mutually exclusive")
	}
	if cfg.Stats < 1 {
		return fmt.Errorf("--stats must be >= 1")
	}
	if cfg.Year < firstYear {
		return fmt.Errorf("--year must be >= %d", firstYear)
	}
	return nil
}
