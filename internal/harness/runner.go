// Package harness invokes the external cargo/criterion benchmark harness.
// The harness owns its own time budget; no timeout is enforced here.
package harness

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Suite describes one cargo bench target. CaptureOutput marks suites that
// report out-of-band measurements on stdout instead of criterion records.
type Suite struct {
	Name          string
	Bench         string
	Features      []string
	CaptureOutput bool
}

// Suites lists every bench target the harness knows, keyed by the CLI
// category names.
var Suites = []Suite{
	{Name: "parse", Bench: "parser"},
	{Name: "compare", Bench: "compare", Features: []string{"compare_nom_bibtex"}},
	{Name: "delimiter", Bench: "delimiter"},
	{Name: "memory", Bench: "memory", CaptureOutput: true},
}

// SuiteByName returns the suite registered under a category name.
func SuiteByName(name string) (Suite, bool) {
	for _, s := range Suites {
		if s.Name == name {
			return s, true
		}
	}
	return Suite{}, false
}

// Runner abstracts the harness so commands can be tested without cargo.
type Runner interface {
	Build(ctx context.Context) error
	Bench(ctx context.Context, suite Suite) (string, error)
}

// CargoRunner shells out to cargo in the project directory.
type CargoRunner struct {
	Dir string
}

func NewCargoRunner(dir string) *CargoRunner {
	return &CargoRunner{Dir: dir}
}

// Build compiles the bench targets ahead of time so bench invocations
// measure runs, not compilation.
func (r *CargoRunner) Build(ctx context.Context) error {
	args := []string{"build", "--release", "--benches", "--features", "compare_nom_bibtex"}
	cmd := exec.CommandContext(ctx, "cargo", args...)
	cmd.Dir = r.Dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cargo build failed: %w\nOutput:\n%s", err, out.String())
	}
	return nil
}

// Bench runs one suite and returns its stdout. A nonzero exit is returned
// as an error; callers downgrade it to a per-category warning because any
// records the suite already wrote are still worth processing.
func (r *CargoRunner) Bench(ctx context.Context, suite Suite) (string, error) {
	args := []string{"bench", "--bench", suite.Bench}
	for _, f := range suite.Features {
		args = append(args, "--features", f)
	}
	cmd := exec.CommandContext(ctx, "cargo", args...)
	cmd.Dir = r.Dir

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("bench suite %s failed: %w\n%s", suite.Name, err, errOut.String())
	}
	return out.String(), nil
}

// MemoryStat is one out-of-band measurement from the memory suite, which
// tracks allocator peaks itself and prints TSV lines instead of going
// through criterion.
type MemoryStat struct {
	Name         string
	Entries      int
	InputBytes   int64
	PeakBytes    int64
	CurrentBytes int64
}

// ParseMemoryOutput extracts the tab-separated measurement lines from the
// memory suite's stdout:
//
//	memory_parse/<entries>\t<input>\t<peak>\t<current>\t<ratio>
//
// Lines that do not match are ignored.
func ParseMemoryOutput(output string) []MemoryStat {
	var stats []MemoryStat
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 4 || !strings.HasPrefix(fields[0], "memory_parse/") {
			continue
		}
		entries, err := strconv.Atoi(strings.TrimPrefix(fields[0], "memory_parse/"))
		if err != nil || entries <= 0 {
			continue
		}
		input, err1 := strconv.ParseInt(fields[1], 10, 64)
		peak, err2 := strconv.ParseInt(fields[2], 10, 64)
		current, err3 := strconv.ParseInt(fields[3], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		stats = append(stats, MemoryStat{
			Name:         fields[0],
			Entries:      entries,
			InputBytes:   input,
			PeakBytes:    peak,
			CurrentBytes: current,
		})
	}
	return stats
}
