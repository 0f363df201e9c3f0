// Package baseline recovers the raw-measurement snapshot embedded in the
// most recent persisted report so the current run can be diffed against it.
package baseline

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReportPrefix and ReportExt shape the report filenames this store scans
// for. The timestamp part is zero-padded, so lexical order is generation
// order.
const (
	ReportPrefix = "report_"
	ReportExt    = ".md"
)

const rawResultsHeading = "## Raw Results"

// rawResults is the schema of the fenced JSON block a report embeds. The
// criterion key must stay stable across releases: it is what every later
// run parses back out.
type rawResults struct {
	Criterion map[string]float64 `json:"criterion"`
}

// SelectLatest returns the path of the most recently generated report in
// dir. Selection is by filename, which is deterministic and monotonic with
// generation time; the "latest" pointer itself is ignored.
func SelectLatest(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var reports []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, ReportPrefix) || !strings.HasSuffix(name, ReportExt) {
			continue
		}
		reports = append(reports, name)
	}
	if len(reports) == 0 {
		return "", false
	}
	sort.Strings(reports)
	return filepath.Join(dir, reports[len(reports)-1]), true
}

// Load returns the criterion snapshot from the latest report in dir. A
// missing directory, no prior reports, or an unparsable embedded block all
// mean "no baseline": the returned map is empty and the run carries on.
func Load(dir string) map[string]float64 {
	path, ok := SelectLatest(dir)
	if !ok {
		slog.Debug("no prior report, skipping baseline diff", "dir", dir)
		return map[string]float64{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("could not read prior report, skipping baseline diff", "path", path, "error", err)
		return map[string]float64{}
	}
	block, ok := extractRawBlock(string(data))
	if !ok {
		slog.Warn("prior report has no raw results block, skipping baseline diff", "path", path)
		return map[string]float64{}
	}
	var raw rawResults
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		slog.Warn("prior report raw results are unreadable, skipping baseline diff", "path", path, "error", err)
		return map[string]float64{}
	}
	if raw.Criterion == nil {
		return map[string]float64{}
	}
	return raw.Criterion
}

// extractRawBlock pulls the contents of the fenced JSON code block that
// follows the Raw Results heading.
func extractRawBlock(content string) (string, bool) {
	idx := strings.Index(content, rawResultsHeading)
	if idx < 0 {
		return "", false
	}
	rest := content[idx+len(rawResultsHeading):]

	start := strings.Index(rest, "```")
	if start < 0 {
		return "", false
	}
	rest = rest[start+3:]
	// Skip the fence's language tag line.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
