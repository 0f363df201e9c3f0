package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"benchreport/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEstimate drops a criterion-style estimate record under the results
// root.
func writeEstimate(t *testing.T, root, relDir string, ns float64) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(relDir))
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := fmt.Sprintf(`{"mean":{"point_estimate":%g}}`, ns)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "estimates.json"), []byte(content), 0644))
}

func setupDirs(t *testing.T) (resultsDir, reportDir string) {
	t.Helper()
	resultsDir = filepath.Join(t.TempDir(), "criterion")
	reportDir = filepath.Join(t.TempDir(), "reports")
	viper.Set(config.KeyResultsDir, resultsDir)
	viper.Set(config.KeyReportDir, reportDir)
	t.Cleanup(viper.Reset)
	return resultsDir, reportDir
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestReportCmd(t *testing.T) {
	resultsDir, reportDir := setupDirs(t)
	writeEstimate(t, resultsDir, "bibtex_parser/parse/1000/new", 5_000_000)
	writeEstimate(t, resultsDir, "parser_comparison/nom-bibtex/1000/new", 10_000_000)
	writeEstimate(t, resultsDir, "operations/find_by_key_hit/new", 850)

	out, err := execute(t, newReportCmd())
	require.NoError(t, err)

	assert.Contains(t, out, "Parse Performance")
	assert.Contains(t, out, "2.0x")
	assert.Contains(t, out, "Find by key (hit)")
	assert.Contains(t, out, "Report: ")

	// The persisted artifact and the latest alias both exist.
	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReportCmdUsesBaseline(t *testing.T) {
	resultsDir, _ := setupDirs(t)
	writeEstimate(t, resultsDir, "bibtex_parser/parse/1000/new", 5_000_000)

	_, err := execute(t, newReportCmd())
	require.NoError(t, err)

	// Second run diffs against the report the first one persisted.
	out, err := execute(t, newReportCmd(), "--no-save")
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")
}

func TestReportCmdNoSave(t *testing.T) {
	resultsDir, reportDir := setupDirs(t)
	writeEstimate(t, resultsDir, "bibtex_parser/parse/1000/new", 5_000_000)

	out, err := execute(t, newReportCmd(), "--no-save")
	require.NoError(t, err)
	assert.NotContains(t, out, "Report: ")

	_, statErr := os.Stat(reportDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReportCmdSectionFlags(t *testing.T) {
	resultsDir, _ := setupDirs(t)
	writeEstimate(t, resultsDir, "bibtex_parser/parse/1000/new", 5_000_000)
	writeEstimate(t, resultsDir, "operations/find_by_key_hit/new", 850)

	out, err := execute(t, newReportCmd(), "--ops", "--no-save")
	require.NoError(t, err)
	assert.Contains(t, out, "Operations")
	assert.NotContains(t, out, "Parse Performance")
}

func TestReportCmdNoResults(t *testing.T) {
	setupDirs(t)

	_, err := execute(t, newReportCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no benchmark results found")
	assert.Contains(t, err.Error(), "benchreport run")
}

func TestReportCmdDebugListing(t *testing.T) {
	resultsDir, _ := setupDirs(t)
	writeEstimate(t, resultsDir, "bibtex_parser/parse/1000/new", 5_000_000)
	writeEstimate(t, resultsDir, "pathological_cases/all_delimiters/new", 999)

	debugFlag = true
	t.Cleanup(func() { debugFlag = false })

	out, err := execute(t, newReportCmd(), "--no-save")
	require.NoError(t, err)
	assert.Contains(t, out, "Raw Results (2)")
	assert.Contains(t, out, "pathological_cases/all_delimiters")
	assert.Contains(t, out, "unclassified")
}
