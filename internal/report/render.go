package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"benchreport/internal/classify"
	"benchreport/internal/metrics"
)

// Sections selects which tables the renderer and writer emit. The zero
// value renders nothing; All() is the default when no category flags were
// given.
type Sections struct {
	Parse     bool
	Compare   bool
	Ops       bool
	Memory    bool
	Delimiter bool
}

// All enables every section.
func AllSections() Sections {
	return Sections{Parse: true, Compare: true, Ops: true, Memory: true, Delimiter: true}
}

// Any reports whether at least one section is enabled.
func (s Sections) Any() bool {
	return s.Parse || s.Compare || s.Ops || s.Memory || s.Delimiter
}

// Render writes the styled console report.
func Render(w io.Writer, d *Data, sections Sections) {
	fmt.Fprintln(w, headerStyle.Render("BibTeX Parser Benchmarks"))

	if sections.Parse {
		renderParse(w, d)
	}
	if sections.Compare {
		renderComparison(w, d)
	}
	if sections.Ops {
		renderOperations(w, d)
	}
	if sections.Delimiter {
		renderDelimiter(w, d)
	}
	if sections.Memory {
		renderMemory(w, d)
	}
	renderChanges(w, d)
	renderSummary(w, d)
}

func renderParse(w io.Writer, d *Data) {
	rows := d.ParseRows()
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, tableTitleStyle.Render("Parse Performance"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ENTRIES\tTIME\tTHROUGHPUT\tVS NOM-BIBTEX\tVS PREVIOUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%.0f MiB/s\t%s\t%s\n",
			r.Entries,
			metrics.FormatTime(r.Ns),
			r.MiBPerSec,
			formatSpeedup(r.Speedup, r.HasSpeedup, r.Tier),
			formatDelta(r.Delta),
		)
	}
	tw.Flush()
}

func renderComparison(w io.Writer, d *Data) {
	rows := d.ComparisonRows()
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, tableTitleStyle.Render("Parser Comparison"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ENTRIES\tBIBTEX-PARSER\tNOM-BIBTEX\tSPEEDUP")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			r.Entries,
			metrics.FormatTime(r.CandidateNs),
			metrics.FormatTime(r.ReferenceNs),
			formatSpeedup(r.Speedup, true, r.Tier),
		)
	}
	tw.Flush()
}

func renderOperations(w io.Writer, d *Data) {
	rows := d.OperationRows()
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, tableTitleStyle.Render("Operations"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tTIME\tVS PREVIOUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Label, metrics.FormatTime(r.Ns), formatDelta(r.Delta))
	}
	tw.Flush()
}

func renderDelimiter(w io.Writer, d *Data) {
	rows := d.DelimiterRows()
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, tableTitleStyle.Render("Delimiter Methods"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tENTRIES\tTIME\tTHROUGHPUT\tVS PREVIOUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.0f MiB/s\t%s\n",
			r.Method, r.Entries, metrics.FormatTime(r.Ns), r.MiBPerSec, formatDelta(r.Delta))
	}
	tw.Flush()
}

func renderMemory(w io.Writer, d *Data) {
	timings := d.MemoryTimingRows()
	if len(timings) > 0 {
		fmt.Fprintln(w, tableTitleStyle.Render("Memory Benchmarks"))
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "BENCHMARK\tTIME\tVS PREVIOUS")
		for _, r := range timings {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Key, metrics.FormatTime(r.Ns), formatDelta(r.Delta))
		}
		tw.Flush()
	}

	rows := d.MemoryRows()
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, tableTitleStyle.Render("Memory Overhead"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ENTRIES\tINPUT\tPEAK\tOVERHEAD\tRATING")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.Entries,
			metrics.FormatBytes(float64(r.InputBytes)),
			metrics.FormatBytes(float64(r.PeakBytes)),
			formatOverhead(r.Overhead, r.HasOverhead),
			formatOverheadTier(r),
		)
	}
	tw.Flush()
}

func renderChanges(w io.Writer, d *Data) {
	changes := d.Changes()
	if len(changes) == 0 {
		return
	}
	var notable []Change
	for _, c := range changes {
		if c.Delta.Tier == metrics.DeltaImproved || c.Delta.Tier == metrics.DeltaRegressed {
			notable = append(notable, c)
		}
	}
	if len(notable) == 0 {
		return
	}
	fmt.Fprintln(w, tableTitleStyle.Render("Changes vs Previous Run"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tPREVIOUS\tCURRENT\tCHANGE")
	for _, c := range notable {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			c.Name,
			metrics.FormatTime(c.PreviousNs),
			metrics.FormatTime(c.CurrentNs),
			formatDelta(c.Delta),
		)
	}
	tw.Flush()
}

func renderSummary(w io.Writer, d *Data) {
	s := d.Summary()
	var lines string
	if s.HasThroughput {
		lines += fmt.Sprintf("Average parse throughput: %.0f MiB/s", s.AvgMiBPerSec)
	}
	if s.HasSpeedup {
		if lines != "" {
			lines += "\n"
		}
		lines += fmt.Sprintf("%.1fx faster than nom-bibtex (%d entries)", s.Speedup, s.SpeedupSize)
	}
	if s.HasOverhead {
		if lines != "" {
			lines += "\n"
		}
		lines += fmt.Sprintf("Peak memory overhead: %.2fx input size", s.PeakOverhead)
	}
	if s.HasBaseline {
		if lines != "" {
			lines += "\n"
		}
		lines += fmt.Sprintf("vs previous run: %d improved, %d regressed", s.Improvements, s.Regressions)
	}
	if lines == "" {
		return
	}
	fmt.Fprintln(w, summaryStyle.Render(lines))
}

// RenderDebug lists every raw name before classification, for chasing
// names that fall through to Unclassified.
func RenderDebug(w io.Writer, d *Data) {
	fmt.Fprintln(w, tableTitleStyle.Render(fmt.Sprintf("Raw Results (%d)", len(d.Measurements))))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTIME\tCATEGORY")
	for _, m := range d.Measurements {
		cat := m.Category.String()
		if m.Category == classify.Unclassified {
			cat = badStyle.Render(cat)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Raw, metrics.FormatTime(m.NsPerOp), cat)
	}
	tw.Flush()
}

func formatSpeedup(s float64, ok bool, tier metrics.SpeedupTier) string {
	if !ok {
		return dimStyle.Render("-")
	}
	text := fmt.Sprintf("%.1fx", s)
	switch tier {
	case metrics.SpeedupExcellent, metrics.SpeedupGood:
		return goodStyle.Render(text)
	case metrics.SpeedupRegression:
		return badStyle.Render(text)
	default:
		return text
	}
}

func formatDelta(d metrics.Delta) string {
	switch d.Tier {
	case metrics.DeltaNew:
		return dimStyle.Render("new")
	case metrics.DeltaUnchanged:
		return dimStyle.Render("unchanged")
	case metrics.DeltaImproved:
		return goodStyle.Render(fmt.Sprintf("%+.1f%%", d.Pct))
	case metrics.DeltaRegressed:
		return badStyle.Render(fmt.Sprintf("%+.1f%%", d.Pct))
	default:
		return fmt.Sprintf("%+.1f%%", d.Pct)
	}
}

func formatOverhead(r float64, ok bool) string {
	if !ok {
		return dimStyle.Render("-")
	}
	return fmt.Sprintf("%.2fx", r)
}

func formatOverheadTier(r MemoryRow) string {
	if !r.HasOverhead {
		return dimStyle.Render("-")
	}
	switch r.Tier {
	case metrics.OverheadExcellent:
		return goodStyle.Render(r.Tier.String())
	case metrics.OverheadAcceptable:
		return warnStyle.Render(r.Tier.String())
	default:
		return badStyle.Render(r.Tier.String())
	}
}
