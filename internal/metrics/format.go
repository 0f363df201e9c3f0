package metrics

import "fmt"

const (
	nsPerMicro = 1_000.0
	nsPerMilli = 1_000_000.0
	nsPerSecF  = 1_000_000_000.0
)

// FormatTime renders a nanosecond timing with a human unit. Boundaries are
// half-open: exactly 1000 ns is microseconds, not nanoseconds.
func FormatTime(ns float64) string {
	switch {
	case ns < nsPerMicro:
		return fmt.Sprintf("%.0f ns", ns)
	case ns < nsPerMilli:
		return fmt.Sprintf("%.1f µs", ns/nsPerMicro)
	case ns < nsPerSecF:
		return fmt.Sprintf("%.1f ms", ns/nsPerMilli)
	default:
		return fmt.Sprintf("%.2f s", ns/nsPerSecF)
	}
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(b float64) string {
	switch {
	case b < 1024:
		return fmt.Sprintf("%.0f B", b)
	case b < mib:
		return fmt.Sprintf("%.1f KiB", b/1024)
	case b < 1024*mib:
		return fmt.Sprintf("%.1f MiB", b/mib)
	default:
		return fmt.Sprintf("%.2f GiB", b/(1024*mib))
	}
}
