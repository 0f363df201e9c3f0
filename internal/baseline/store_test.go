package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `# Benchmark Report - 2026-08-29 10:00

## Summary

- Average throughput: 68 MiB/s

## Raw Results

` + "```json\n" + `{
  "criterion": {
    "bibtex_parser/parse/1000": 5000000,
    "operations/find_by_key_hit": 850.5
  }
}
` + "```\n"

func writeReport(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestSelectLatest(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "report_20260827_090000.md", sampleReport)
	writeReport(t, dir, "report_20260829_100000.md", sampleReport)
	writeReport(t, dir, "report_20260828_230000.md", sampleReport)
	writeReport(t, dir, "notes.md", "not a report")

	path, ok := SelectLatest(dir)
	require.True(t, ok)
	assert.Equal(t, "report_20260829_100000.md", filepath.Base(path))
}

func TestSelectLatestEmpty(t *testing.T) {
	_, ok := SelectLatest(t.TempDir())
	assert.False(t, ok)

	_, ok = SelectLatest(filepath.Join(t.TempDir(), "missing"))
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "report_20260829_100000.md", sampleReport)

	snap := Load(dir)
	require.Len(t, snap, 2)
	assert.Equal(t, 5_000_000.0, snap["bibtex_parser/parse/1000"])
	assert.Equal(t, 850.5, snap["operations/find_by_key_hit"])
}

func TestLoadNoBaseline(t *testing.T) {
	assert.Empty(t, Load(t.TempDir()))
	assert.Empty(t, Load(filepath.Join(t.TempDir(), "missing")))
}

func TestLoadCorruptBlock(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "report_20260829_100000.md",
		"# Report\n\n## Raw Results\n\n```json\n{broken\n```\n")
	assert.Empty(t, Load(dir))
}

func TestLoadMissingHeading(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "report_20260829_100000.md", "# Report without raw block\n")
	assert.Empty(t, Load(dir))
}

func TestExtractRawBlock(t *testing.T) {
	block, ok := extractRawBlock(sampleReport)
	require.True(t, ok)
	assert.Contains(t, block, `"criterion"`)
	assert.NotContains(t, block, "```")
}
