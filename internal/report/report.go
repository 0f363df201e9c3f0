// Package report turns classified measurements into console tables and the
// persisted markdown artifact.
package report

import (
	"sort"
	"time"

	"benchreport/internal/classify"
	"benchreport/internal/harness"
	"benchreport/internal/metrics"
)

// Data is one run's worth of processed results. It is assembled once and
// read by both the console renderer and the markdown writer, so the two
// always agree.
type Data struct {
	GeneratedAt  time.Time
	Raw          map[string]float64
	Baseline     map[string]float64
	Measurements []classify.Measurement
	Memory       []harness.MemoryStat
}

// Build classifies the raw results and pairs them with the baseline
// snapshot and any out-of-band memory stats.
func Build(raw, baseline map[string]float64, memory []harness.MemoryStat, now time.Time) *Data {
	if baseline == nil {
		baseline = map[string]float64{}
	}
	mem := append([]harness.MemoryStat(nil), memory...)
	sort.Slice(mem, func(i, j int) bool { return mem[i].Entries < mem[j].Entries })
	return &Data{
		GeneratedAt:  now,
		Raw:          raw,
		Baseline:     baseline,
		Measurements: classify.All(raw),
		Memory:       mem,
	}
}

func (d *Data) delta(name string, currentNs float64) metrics.Delta {
	prev, ok := d.Baseline[name]
	return metrics.DeltaVsBaseline(currentNs, prev, ok)
}

func (d *Data) byCategory(c classify.Category) []classify.Measurement {
	var out []classify.Measurement
	for _, m := range d.Measurements {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// referenceNs returns the reference implementation's timing for an entry
// count, when the comparison suite produced one.
func (d *Data) referenceNs(entries int) (float64, bool) {
	for _, m := range d.byCategory(classify.ComparisonVariant) {
		if m.Reference && m.Entries == entries {
			return m.NsPerOp, true
		}
	}
	return 0, false
}

// candidateNs prefers the comparison suite's own candidate timing and
// falls back to the direct parse timing for the same entry count.
func (d *Data) candidateNs(entries int) (float64, bool) {
	for _, m := range d.byCategory(classify.ComparisonVariant) {
		if !m.Reference && m.Entries == entries {
			return m.NsPerOp, true
		}
	}
	for _, m := range d.byCategory(classify.ParseThroughput) {
		if m.Entries == entries {
			return m.NsPerOp, true
		}
	}
	return 0, false
}

// ParseRow is one line of the Parse Performance table.
type ParseRow struct {
	Entries    int
	Ns         float64
	MiBPerSec  float64
	EntriesSec float64
	Speedup    float64
	HasSpeedup bool
	Tier       metrics.SpeedupTier
	Delta      metrics.Delta
}

// ParseRows returns the parse throughput table sorted by entry count.
func (d *Data) ParseRows() []ParseRow {
	var rows []ParseRow
	for _, m := range d.byCategory(classify.ParseThroughput) {
		row := ParseRow{
			Entries:    m.Entries,
			Ns:         m.NsPerOp,
			MiBPerSec:  metrics.MiBPerSec(m.Entries, m.NsPerOp),
			EntriesSec: metrics.EntriesPerSec(m.Entries, m.NsPerOp),
			Delta:      d.delta(m.Raw, m.NsPerOp),
		}
		if ref, ok := d.referenceNs(m.Entries); ok {
			if s, ok := metrics.Speedup(ref, m.NsPerOp); ok {
				row.Speedup = s
				row.HasSpeedup = true
				row.Tier = metrics.ClassifySpeedup(s)
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Entries < rows[j].Entries })
	return rows
}

// ComparisonRow pairs the candidate and reference timing for one workload
// size. Rows exist only where both sides were measured.
type ComparisonRow struct {
	Entries     int
	CandidateNs float64
	ReferenceNs float64
	Speedup     float64
	Tier        metrics.SpeedupTier
}

// ComparisonRows returns the candidate/reference speedup table.
func (d *Data) ComparisonRows() []ComparisonRow {
	seen := map[int]bool{}
	var rows []ComparisonRow
	for _, m := range d.byCategory(classify.ComparisonVariant) {
		if seen[m.Entries] {
			continue
		}
		seen[m.Entries] = true
		ref, okRef := d.referenceNs(m.Entries)
		cand, okCand := d.candidateNs(m.Entries)
		if !okRef || !okCand {
			continue
		}
		s, ok := metrics.Speedup(ref, cand)
		if !ok {
			continue
		}
		rows = append(rows, ComparisonRow{
			Entries:     m.Entries,
			CandidateNs: cand,
			ReferenceNs: ref,
			Speedup:     s,
			Tier:        metrics.ClassifySpeedup(s),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Entries < rows[j].Entries })
	return rows
}

// Friendly labels for the query operation benchmarks.
var operationLabels = map[string]string{
	"operations/find_by_key_hit":     "Find by key (hit)",
	"operations/find_by_key_miss":    "Find by key (miss)",
	"operations/find_by_type_common": "Find by type (common)",
	"operations/find_by_type_rare":   "Find by type (rare)",
	"operations/find_by_field":       "Find by field",
}

// OperationRow is one line of the Operations table.
type OperationRow struct {
	Label string
	Key   string
	Ns    float64
	Delta metrics.Delta
}

// OperationRows returns the query operation table sorted by key.
func (d *Data) OperationRows() []OperationRow {
	var rows []OperationRow
	for _, m := range d.byCategory(classify.QueryOperation) {
		label, ok := operationLabels[m.Key]
		if !ok {
			label = m.Key
		}
		rows = append(rows, OperationRow{
			Label: label,
			Key:   m.Key,
			Ns:    m.NsPerOp,
			Delta: d.delta(m.Raw, m.NsPerOp),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// DelimiterRow is one line of the Delimiter Methods table.
type DelimiterRow struct {
	Method    string
	Entries   int
	Ns        float64
	MiBPerSec float64
	Delta     metrics.Delta
}

// DelimiterRows returns the delimiter scan method table, grouped by method
// then entry count.
func (d *Data) DelimiterRows() []DelimiterRow {
	var rows []DelimiterRow
	for _, m := range d.byCategory(classify.DelimiterMethod) {
		rows = append(rows, DelimiterRow{
			Method:    m.Method,
			Entries:   m.Entries,
			Ns:        m.NsPerOp,
			MiBPerSec: metrics.MiBPerSec(m.Entries, m.NsPerOp),
			Delta:     d.delta(m.Raw, m.NsPerOp),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Method != rows[j].Method {
			return rows[i].Method < rows[j].Method
		}
		return rows[i].Entries < rows[j].Entries
	})
	return rows
}

// MemoryTimingRow is a criterion-timed memory benchmark.
type MemoryTimingRow struct {
	Key   string
	Ns    float64
	Delta metrics.Delta
}

// MemoryTimingRows returns the memory_usage suite timings.
func (d *Data) MemoryTimingRows() []MemoryTimingRow {
	var rows []MemoryTimingRow
	for _, m := range d.byCategory(classify.MemoryUsage) {
		rows = append(rows, MemoryTimingRow{Key: m.Key, Ns: m.NsPerOp, Delta: d.delta(m.Raw, m.NsPerOp)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// MemoryRow is one out-of-band allocator measurement with its overhead
// ratio. Rows without a computable ratio are kept with HasOverhead false.
type MemoryRow struct {
	Entries     int
	InputBytes  int64
	PeakBytes   int64
	Overhead    float64
	HasOverhead bool
	Tier        metrics.OverheadTier
}

// MemoryRows returns the allocator overhead table.
func (d *Data) MemoryRows() []MemoryRow {
	var rows []MemoryRow
	for _, s := range d.Memory {
		row := MemoryRow{Entries: s.Entries, InputBytes: s.InputBytes, PeakBytes: s.PeakBytes}
		if r, ok := metrics.Overhead(float64(s.PeakBytes), float64(s.InputBytes)); ok {
			row.Overhead = r
			row.HasOverhead = true
			row.Tier = metrics.ClassifyOverhead(r)
		}
		rows = append(rows, row)
	}
	return rows
}

// Change is one run-over-run delta.
type Change struct {
	Name       string
	CurrentNs  float64
	PreviousNs float64
	Delta      metrics.Delta
}

// Changes returns the deltas for every benchmark present in the baseline,
// sorted by percentage change (biggest regression first).
func (d *Data) Changes() []Change {
	var out []Change
	for _, m := range d.Measurements {
		prev, ok := d.Baseline[m.Raw]
		if !ok || prev <= 0 {
			continue
		}
		out = append(out, Change{
			Name:       m.Raw,
			CurrentNs:  m.NsPerOp,
			PreviousNs: prev,
			Delta:      metrics.DeltaVsBaseline(m.NsPerOp, prev, true),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Delta.Pct != out[j].Delta.Pct {
			return out[i].Delta.Pct > out[j].Delta.Pct
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Unclassified returns the measurements no rule matched; they appear only
// in debug listings.
func (d *Data) Unclassified() []classify.Measurement {
	return d.byCategory(classify.Unclassified)
}

// Summary aggregates the headline numbers for the report.
type Summary struct {
	AvgMiBPerSec  float64
	HasThroughput bool
	Speedup       float64
	SpeedupSize   int
	HasSpeedup    bool
	PeakOverhead  float64
	HasOverhead   bool
	Improvements  int
	Regressions   int
	HasBaseline   bool
}

// Summary computes average parse throughput, the headline speedup (at
// 1000 entries when available, otherwise the largest measured size) and
// the worst memory overhead.
func (d *Data) Summary() Summary {
	var s Summary

	rows := d.ParseRows()
	var total float64
	for _, r := range rows {
		total += r.MiBPerSec
	}
	if len(rows) > 0 {
		s.AvgMiBPerSec = total / float64(len(rows))
		s.HasThroughput = true
	}

	comps := d.ComparisonRows()
	for _, c := range comps {
		// Prefer 1000 entries as the headline size.
		if !s.HasSpeedup || c.Entries == 1000 || (s.SpeedupSize != 1000 && c.Entries > s.SpeedupSize) {
			s.Speedup = c.Speedup
			s.SpeedupSize = c.Entries
			s.HasSpeedup = true
		}
	}

	for _, r := range d.MemoryRows() {
		if r.HasOverhead && r.Overhead > s.PeakOverhead {
			s.PeakOverhead = r.Overhead
			s.HasOverhead = true
		}
	}

	for _, c := range d.Changes() {
		s.HasBaseline = true
		switch c.Delta.Tier {
		case metrics.DeltaImproved:
			s.Improvements++
		case metrics.DeltaRegressed:
			s.Regressions++
		}
	}
	return s
}
