package main

import (
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var flags categoryFlags
	var noSave bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report on existing harness results without re-running benchmarks",
		Long: `Processes the estimate records already present in the results directory
and renders the selected categories. Out-of-band memory stats are only
collected by 'run'; this command reports criterion timings alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return processResults(cmd, flags.sections(), nil, !noSave)
		},
	}

	addCategoryFlags(cmd, &flags)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist a report")
	return cmd
}

func init() {
	rootCmd.AddCommand(newReportCmd())
}
