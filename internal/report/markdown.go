package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"benchreport/internal/baseline"
	"benchreport/internal/metrics"
)

// LatestName is the stable pointer to the most recent report.
const LatestName = "latest" + baseline.ReportExt

// memoryRecord is the persisted form of one out-of-band memory stat.
type memoryRecord struct {
	InputBytes   int64 `json:"input_bytes"`
	PeakBytes    int64 `json:"peak_bytes"`
	CurrentBytes int64 `json:"current_bytes"`
}

// rawResults is the embedded snapshot schema. The "criterion" key is the
// contract the baseline store parses back out; do not rename it.
type rawResults struct {
	Criterion map[string]float64      `json:"criterion"`
	Memory    map[string]memoryRecord `json:"memory,omitempty"`
}

// Markdown renders the full report document.
func Markdown(d *Data, sections Sections) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Benchmark Report - %s\n\n", d.GeneratedAt.UTC().Format("2006-01-02 15:04"))

	writeMarkdownSummary(&b, d)
	if sections.Parse {
		writeMarkdownParse(&b, d)
	}
	if sections.Compare {
		writeMarkdownComparison(&b, d)
	}
	if sections.Ops {
		writeMarkdownOperations(&b, d)
	}
	if sections.Delimiter {
		writeMarkdownDelimiter(&b, d)
	}
	if sections.Memory {
		writeMarkdownMemory(&b, d)
	}
	writeMarkdownChanges(&b, d)

	raw := rawResults{Criterion: d.Raw}
	if len(d.Memory) > 0 {
		raw.Memory = make(map[string]memoryRecord, len(d.Memory))
		for _, s := range d.Memory {
			raw.Memory[s.Name] = memoryRecord{
				InputBytes:   s.InputBytes,
				PeakBytes:    s.PeakBytes,
				CurrentBytes: s.CurrentBytes,
			}
		}
	}
	blob, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling raw results: %w", err)
	}
	fmt.Fprintf(&b, "## Raw Results\n\n```json\n%s\n```\n", blob)

	return b.String(), nil
}

func writeMarkdownSummary(b *strings.Builder, d *Data) {
	s := d.Summary()
	b.WriteString("## Summary\n\n")
	if s.HasThroughput {
		fmt.Fprintf(b, "- Average parse throughput: %.0f MiB/s\n", s.AvgMiBPerSec)
	}
	if s.HasSpeedup {
		fmt.Fprintf(b, "- %.1fx faster than nom-bibtex (%d entries)\n", s.Speedup, s.SpeedupSize)
	}
	if s.HasOverhead {
		fmt.Fprintf(b, "- Peak memory overhead: %.2fx input size\n", s.PeakOverhead)
	}
	if s.HasBaseline {
		fmt.Fprintf(b, "- vs previous run: %d improved, %d regressed\n", s.Improvements, s.Regressions)
	}
	if !s.HasThroughput && !s.HasSpeedup && !s.HasOverhead && !s.HasBaseline {
		b.WriteString("- No derived metrics for this run\n")
	}
	b.WriteString("\n")
}

func writeMarkdownParse(b *strings.Builder, d *Data) {
	rows := d.ParseRows()
	if len(rows) == 0 {
		return
	}
	b.WriteString("## Parse Performance\n\n")
	b.WriteString("| Entries | Time | Throughput | vs nom-bibtex | vs previous |\n")
	b.WriteString("|---:|---:|---:|:---:|:---:|\n")
	for _, r := range rows {
		speedup := "-"
		if r.HasSpeedup {
			speedup = fmt.Sprintf("%.1fx", r.Speedup)
		}
		fmt.Fprintf(b, "| %d | %s | %.0f MiB/s | %s | %s |\n",
			r.Entries, metrics.FormatTime(r.Ns), r.MiBPerSec, speedup, markdownDelta(r.Delta))
	}
	b.WriteString("\n")
}

func writeMarkdownComparison(b *strings.Builder, d *Data) {
	rows := d.ComparisonRows()
	if len(rows) == 0 {
		return
	}
	b.WriteString("## Parser Comparison\n\n")
	b.WriteString("| Entries | bibtex-parser | nom-bibtex | Speedup | Rating |\n")
	b.WriteString("|---:|---:|---:|:---:|:---:|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %d | %s | %s | %.1fx | %s |\n",
			r.Entries, metrics.FormatTime(r.CandidateNs), metrics.FormatTime(r.ReferenceNs),
			r.Speedup, r.Tier)
	}
	b.WriteString("\n")
}

func writeMarkdownOperations(b *strings.Builder, d *Data) {
	rows := d.OperationRows()
	if len(rows) == 0 {
		return
	}
	b.WriteString("## Operations\n\n")
	b.WriteString("| Operation | Time | vs previous |\n")
	b.WriteString("|:---|---:|:---:|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s | %s |\n", r.Label, metrics.FormatTime(r.Ns), markdownDelta(r.Delta))
	}
	b.WriteString("\n")
}

func writeMarkdownDelimiter(b *strings.Builder, d *Data) {
	rows := d.DelimiterRows()
	if len(rows) == 0 {
		return
	}
	b.WriteString("## Delimiter Methods\n\n")
	b.WriteString("| Method | Entries | Time | Throughput | vs previous |\n")
	b.WriteString("|:---|---:|---:|---:|:---:|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %d | %s | %.0f MiB/s | %s |\n",
			r.Method, r.Entries, metrics.FormatTime(r.Ns), r.MiBPerSec, markdownDelta(r.Delta))
	}
	b.WriteString("\n")
}

func writeMarkdownMemory(b *strings.Builder, d *Data) {
	timings := d.MemoryTimingRows()
	if len(timings) > 0 {
		b.WriteString("## Memory Benchmarks\n\n")
		b.WriteString("| Benchmark | Time | vs previous |\n")
		b.WriteString("|:---|---:|:---:|\n")
		for _, r := range timings {
			fmt.Fprintf(b, "| %s | %s | %s |\n", r.Key, metrics.FormatTime(r.Ns), markdownDelta(r.Delta))
		}
		b.WriteString("\n")
	}

	rows := d.MemoryRows()
	if len(rows) == 0 {
		return
	}
	b.WriteString("## Memory Overhead\n\n")
	b.WriteString("| Entries | Input | Peak | Overhead | Rating |\n")
	b.WriteString("|---:|---:|---:|:---:|:---:|\n")
	for _, r := range rows {
		overhead := "-"
		rating := "-"
		if r.HasOverhead {
			overhead = fmt.Sprintf("%.2fx", r.Overhead)
			rating = r.Tier.String()
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
			r.Entries, metrics.FormatBytes(float64(r.InputBytes)),
			metrics.FormatBytes(float64(r.PeakBytes)), overhead, rating)
	}
	b.WriteString("\n")
}

func writeMarkdownChanges(b *strings.Builder, d *Data) {
	changes := d.Changes()
	if len(changes) == 0 {
		return
	}
	b.WriteString("## Changes vs Previous Run\n\n")
	b.WriteString("| Benchmark | Previous | Current | Change |\n")
	b.WriteString("|:---|---:|---:|:---:|\n")
	for _, c := range changes {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			c.Name, metrics.FormatTime(c.PreviousNs), metrics.FormatTime(c.CurrentNs),
			markdownDelta(c.Delta))
	}
	b.WriteString("\n")
}

func markdownDelta(d metrics.Delta) string {
	switch d.Tier {
	case metrics.DeltaNew:
		return "new"
	case metrics.DeltaUnchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("%+.1f%%", d.Pct)
	}
}

// Write persists the report into dir and repoints the latest alias. It
// returns the path of the written report.
func Write(dir string, d *Data, sections Sections) (string, error) {
	content, err := Markdown(d, sections)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	name := fmt.Sprintf("%s%s%s", baseline.ReportPrefix,
		d.GeneratedAt.UTC().Format("20060102_150405"), baseline.ReportExt)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	if err := updateLatest(dir, name, content); err != nil {
		return path, fmt.Errorf("updating latest pointer: %w", err)
	}
	return path, nil
}

// updateLatest points latest.md at the newest report, copying the content
// where symlinks are unavailable.
func updateLatest(dir, name, content string) error {
	link := filepath.Join(dir, LatestName)
	_ = os.Remove(link)
	if err := os.Symlink(name, link); err != nil {
		return os.WriteFile(link, []byte(content), 0644)
	}
	return nil
}
