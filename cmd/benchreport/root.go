package main

import (
	"fmt"
	"os"

	"benchreport/internal/config"
	"benchreport/internal/telemetry"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit

var (
	cfgFile   string
	debugFlag bool
	noColor   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "benchreport",
	Short: "Run and report BibTeX parser benchmarks",
	Long: `benchreport drives the cargo/criterion benchmark harness for the BibTeX
parser, classifies every measurement, derives throughput, speedup and
memory-overhead metrics, and writes a timestamped markdown report whose
embedded raw results become the baseline for the next run.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.benchreport.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "verbose logging plus a listing of every raw benchmark name")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	viper.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)
	telemetry.InitLogger(viper.GetBool(config.KeyVerbose), "")
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
