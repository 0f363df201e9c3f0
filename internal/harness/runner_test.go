package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuiteByName(t *testing.T) {
	s, ok := SuiteByName("compare")
	require.True(t, ok)
	assert.Equal(t, "compare", s.Bench)
	assert.Equal(t, []string{"compare_nom_bibtex"}, s.Features)

	_, ok = SuiteByName("nope")
	assert.False(t, ok)
}

func TestParseMemoryOutput(t *testing.T) {
	out := `memory_parse
Compiling things...
memory_parse/10	4767	6120	5804	1.28
memory_parse/1000	352441	493417	470221	1.40
memory_parse/bad	1	2	3	4
memory_parse/50	x	2	3	4
some unrelated line
`
	stats := ParseMemoryOutput(out)
	require.Len(t, stats, 2)

	assert.Equal(t, "memory_parse/10", stats[0].Name)
	assert.Equal(t, 10, stats[0].Entries)
	assert.Equal(t, int64(4767), stats[0].InputBytes)
	assert.Equal(t, int64(6120), stats[0].PeakBytes)
	assert.Equal(t, int64(5804), stats[0].CurrentBytes)

	assert.Equal(t, 1000, stats[1].Entries)
	assert.Equal(t, int64(493417), stats[1].PeakBytes)
}

func TestParseMemoryOutputEmpty(t *testing.T) {
	assert.Empty(t, ParseMemoryOutput(""))
	assert.Empty(t, ParseMemoryOutput("no measurements here\n"))
}
