package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	Load("")
	assert.Equal(t, "target/criterion", viper.GetString(KeyResultsDir))
	assert.Equal(t, "benchmarks/reports", viper.GetString(KeyReportDir))
	assert.Equal(t, 5.0, viper.GetFloat64(KeyDeltaThreshold))
	assert.False(t, viper.GetBool(KeyVerbose))
}

func TestLoadConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("results_dir: /tmp/criterion\nverbose: true\n"), 0644))

	Load(path)
	assert.Equal(t, "/tmp/criterion", viper.GetString(KeyResultsDir))
	assert.True(t, viper.GetBool(KeyVerbose))
	// Untouched keys keep their defaults.
	assert.Equal(t, "benchmarks/reports", viper.GetString(KeyReportDir))
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BENCHREPORT_REPORT_DIR", "/tmp/reports")
	Load("")
	assert.Equal(t, "/tmp/reports", viper.GetString(KeyReportDir))
}
