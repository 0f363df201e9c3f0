package main

import (
	"fmt"
	"log/slog"

	"benchreport/internal/config"
	"benchreport/internal/harness"
	"benchreport/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Indirections so tests can run without cargo or a terminal.
var (
	newRunnerFunc   = func(dir string) harness.Runner { return harness.NewCargoRunner(dir) }
	runWithProgress = ui.RunWithSpinner
)

func newRunCmd() *cobra.Command {
	var flags categoryFlags
	var noSave bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark harness and report the results",
		Long: `Builds the bench targets, runs the selected benchmark suites (all of
them when no category flag is given), then processes and persists the
results. A failing suite is reported as a warning; results the other
suites already produced are still processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := newRunnerFunc(viper.GetString(config.KeyProjectDir))

			if err := runWithProgress("Building benches...", func() error {
				return runner.Build(ctx)
			}); err != nil {
				return fmt.Errorf("harness build failed: %w", err)
			}

			var memStats []harness.MemoryStat
			for _, suite := range flags.suites() {
				var out string
				err := runWithProgress(fmt.Sprintf("Running %s benchmarks...", suite.Name), func() error {
					var benchErr error
					out, benchErr = runner.Bench(ctx, suite)
					return benchErr
				})
				if err != nil {
					slog.Warn("bench suite failed, continuing with completed results",
						"suite", suite.Name, "error", err)
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s suite failed: %v\n", suite.Name, err)
				}
				if suite.CaptureOutput {
					memStats = append(memStats, harness.ParseMemoryOutput(out)...)
				}
			}

			return processResults(cmd, flags.sections(), memStats, !noSave)
		},
	}

	addCategoryFlags(cmd, &flags)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist a report")
	return cmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}
