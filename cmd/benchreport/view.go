package main

import (
	"fmt"
	"os"

	"benchreport/internal/baseline"
	"benchreport/internal/config"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [report]",
		Short: "Render a saved report in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				latest, ok := baseline.SelectLatest(viper.GetString(config.KeyReportDir))
				if !ok {
					return fmt.Errorf("no saved reports in %s", viper.GetString(config.KeyReportDir))
				}
				path = latest
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading report: %w", err)
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), string(content))
				return nil
			}
			out, err := renderer.Render(string(content))
			if err != nil {
				// Fallback to plain text
				fmt.Fprint(cmd.OutOrStdout(), string(content))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	return cmd
}

func init() {
	rootCmd.AddCommand(newViewCmd())
}
