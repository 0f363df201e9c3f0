// Package criterion reads the estimate records the criterion harness
// leaves under target/criterion and flattens them into a name → timing map.
package criterion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoResults signals that the results root is missing or holds no
// parseable estimate records. Callers treat this as fatal: it means the
// harness has not run, which is different from a run that produced empty
// categories.
var ErrNoResults = errors.New("no benchmark results found")

const estimatesFile = "estimates.json"

// estimates mirrors the slice of criterion's estimates.json we care
// about: the mean point estimate in nanoseconds.
type estimates struct {
	Mean struct {
		PointEstimate float64 `json:"point_estimate"`
	} `json:"mean"`
}

// Load walks the results root and returns a mapping from benchmark name to
// its mean point estimate in nanoseconds.
//
// The benchmark name is rebuilt from the record's position: every path
// segment strictly between the root and the record's final two components
// (the statistics folder and the file itself), joined with "/". Records
// under a "change" folder are relative deltas, not timings, and are
// skipped. Within one benchmark the lexical walk order makes "new"
// override "base", so the freshest sample wins deterministically.
func Load(root string) (map[string]float64, error) {
	results := make(map[string]float64)
	skipped := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "change" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != estimatesFile {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		segs := strings.Split(filepath.ToSlash(rel), "/")
		if len(segs) < 3 {
			// Too shallow to carry a benchmark name.
			return nil
		}
		name := strings.Join(segs[:len(segs)-2], "/")

		ns, err := readEstimate(path)
		if err != nil {
			slog.Warn("skipping unreadable estimate record", "path", path, "error", err)
			skipped++
			return nil
		}
		results[name] = ns
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: results directory %s does not exist", ErrNoResults, root)
		}
		return nil, fmt.Errorf("walking results directory: %w", err)
	}

	if skipped > 0 {
		slog.Info("skipped unreadable estimate records", "count", skipped)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoResults, root)
	}
	return results, nil
}

func readEstimate(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var est estimates
	if err := json.Unmarshal(data, &est); err != nil {
		return 0, fmt.Errorf("parsing estimates: %w", err)
	}
	ns := est.Mean.PointEstimate
	if ns <= 0 || math.IsNaN(ns) || math.IsInf(ns, 0) {
		return 0, fmt.Errorf("mean point estimate %v is not a positive finite duration", ns)
	}
	return ns, nil
}
