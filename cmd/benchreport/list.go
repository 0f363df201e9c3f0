package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"benchreport/internal/baseline"
	"benchreport/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved benchmark reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := viper.GetString(config.KeyReportDir)
			entries, err := os.ReadDir(dir)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "No reports yet.")
					return nil
				}
				return fmt.Errorf("reading report directory: %w", err)
			}

			var names []string
			for _, e := range entries {
				n := e.Name()
				if e.IsDir() || !strings.HasPrefix(n, baseline.ReportPrefix) || !strings.HasSuffix(n, baseline.ReportExt) {
					continue
				}
				names = append(names, n)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports yet.")
				return nil
			}
			// Newest first.
			sort.Sort(sort.Reverse(sort.StringSlice(names)))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "REPORT\tGENERATED\t")
			for i, n := range names {
				marker := ""
				if i == 0 {
					marker = "(latest)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", filepath.Join(dir, n), reportAge(n), marker)
			}
			return w.Flush()
		},
	}
	return cmd
}

// reportAge turns a report filename's embedded timestamp into a
// human-readable age.
func reportAge(name string) string {
	ts := strings.TrimSuffix(strings.TrimPrefix(name, baseline.ReportPrefix), baseline.ReportExt)
	t, err := time.ParseInLocation("20060102_150405", ts, time.UTC)
	if err != nil {
		return "unknown"
	}
	return formatSince(t)
}

// formatSince returns a human-readable string representing the time
// elapsed since the given timestamp.
func formatSince(t time.Time) string {
	const day = 24 * time.Hour

	since := time.Since(t)
	if since < 0 {
		return "0s ago"
	}

	switch {
	case since < time.Minute:
		return fmt.Sprintf("%ds ago", int(since.Seconds()))
	case since < time.Hour:
		return fmt.Sprintf("%dm ago", int(since.Minutes()))
	case since < day:
		return fmt.Sprintf("%dh ago", int(since.Hours()))
	case since < 7*day:
		return fmt.Sprintf("%dd ago", int(since.Hours()/24))
	case since < 30*day:
		return fmt.Sprintf("%dw ago", int(since.Hours()/(24*7)))
	case since < 365*day:
		return fmt.Sprintf("%dmo ago", int(since.Hours()/(24*30)))
	}
	return fmt.Sprintf("%dy ago", int(since.Hours()/(24*365)))
}

func init() {
	rootCmd.AddCommand(newListCmd())
}
