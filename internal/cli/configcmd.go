package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/aocrun/internal/config"
	"github.com/verte-zerg/aocrun/internal/input"
)

func newConfigCmd(app App) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := ensureConfigFile(path); err != nil {
				return err
			}
			return openEditor(app, path)
		},
	}
	cmd.Flags().StringVar(&path, "config", config.DefaultConfigPath(), "path to the TOML config file")
	return cmd
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func openEditor(app App, path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = app.In
	cmd.Stdout = app.Out
	cmd.Stderr = app.Err
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func setString(target, value *string) {
	if value == nil || *value == "" {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# aocrun configuration
# Uncomment a value to enable it. CLI flags override config values.

[run]
# year = 2024                # Puzzle year (default: the year the binary was built for)
# stats = %d                  # Runs per part for timing statistics
# skip-tests = false         # Skip example self-tests
# history = true             # Record results in the history database
# inputs-dir = %q        # Where downloaded inputs are cached
# session-file = %q     # File holding the session cookie
# base-url = %q
`,
		defaultStats,
		config.DefaultInputsDir,
		config.DefaultSessionFile,
		input.DefaultBaseURL,
	)
}
