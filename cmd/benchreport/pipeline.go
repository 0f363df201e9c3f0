package main

import (
	"errors"
	"fmt"
	"time"

	"benchreport/internal/baseline"
	"benchreport/internal/config"
	"benchreport/internal/criterion"
	"benchreport/internal/harness"
	"benchreport/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// categoryFlags selects which benchmark categories to execute and display.
// No flag set means every category.
type categoryFlags struct {
	parse     bool
	compare   bool
	ops       bool
	memory    bool
	delimiter bool
}

func addCategoryFlags(cmd *cobra.Command, f *categoryFlags) {
	cmd.Flags().BoolVar(&f.parse, "parse", false, "parse throughput benchmarks")
	cmd.Flags().BoolVar(&f.compare, "compare", false, "comparison against nom-bibtex")
	cmd.Flags().BoolVar(&f.ops, "ops", false, "query operation benchmarks")
	cmd.Flags().BoolVar(&f.memory, "memory", false, "memory usage benchmarks")
	cmd.Flags().BoolVar(&f.delimiter, "delimiter", false, "delimiter scanning benchmarks")
}

func (f categoryFlags) sections() report.Sections {
	s := report.Sections{
		Parse:     f.parse,
		Compare:   f.compare,
		Ops:       f.ops,
		Memory:    f.memory,
		Delimiter: f.delimiter,
	}
	if !s.Any() {
		return report.AllSections()
	}
	return s
}

// suites maps the selected categories onto bench targets. Operations and
// memory timings are produced by the compare suite; the memory suite adds
// the out-of-band allocator stats.
func (f categoryFlags) suites() []harness.Suite {
	all := !f.parse && !f.compare && !f.ops && !f.memory && !f.delimiter
	want := map[string]bool{}
	if all || f.parse {
		want["parse"] = true
	}
	if all || f.compare || f.ops || f.memory {
		want["compare"] = true
	}
	if all || f.memory {
		want["memory"] = true
	}
	if all || f.delimiter {
		want["delimiter"] = true
	}
	var out []harness.Suite
	for _, s := range harness.Suites {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

// processResults is the batch pipeline shared by run and report: load,
// classify, derive, render, persist. The baseline is read before the new
// report lands so the diff is against the prior run.
func processResults(cmd *cobra.Command, sections report.Sections, memStats []harness.MemoryStat, save bool) error {
	resultsDir := viper.GetString(config.KeyResultsDir)
	reportDir := viper.GetString(config.KeyReportDir)

	raw, err := criterion.Load(resultsDir)
	if err != nil {
		if errors.Is(err, criterion.ErrNoResults) {
			return fmt.Errorf("%w\nRun 'benchreport run' to execute the harness first", err)
		}
		return err
	}

	base := baseline.Load(reportDir)
	data := report.Build(raw, base, memStats, time.Now())

	if debugFlag {
		report.RenderDebug(cmd.OutOrStdout(), data)
	}
	report.Render(cmd.OutOrStdout(), data, sections)

	if save {
		path, err := report.Write(reportDir, data, sections)
		if err != nil {
			return fmt.Errorf("persisting report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport: %s\n", path)
	}
	return nil
}
