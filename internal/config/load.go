package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyResultsDir     = "results_dir"
	KeyReportDir      = "report_dir"
	KeyProjectDir     = "project_dir"
	KeyVerbose        = "verbose"
	KeyDeltaThreshold = "delta_threshold"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// A .env next to the project is honored; a missing one is not an error.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".benchreport")
	}

	viper.SetEnvPrefix("BENCHREPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyResultsDir, "target/criterion")
	viper.SetDefault(KeyReportDir, "benchmarks/reports")
	viper.SetDefault(KeyProjectDir, ".")
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyDeltaThreshold, 5.0)

	// Hold the defaults when there is no config file at all.
	_ = viper.ReadInConfig()
}
