// Package cmd implements the vepdiff CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eastgenomics/vepdiff/pkg/logging"
)

var (
	configFile string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vepdiff",
	Short: "Compare variant annotations between two VEP versions",
	Long: `vepdiff reconciles disagreements between two versions of variant-effect
annotations for the same samples.

It diffs the two annotation sets, queries the VariantValidator REST API for
an authoritative third opinion on each disputed variant/transcript pair, and
classifies every disagreement as newly corrected, newly wrong, or
persistently wrong in the newer version.

Typical flow:
  vepdiff diff --directory vcfs/ --old-version 110 --new-version 113
  vepdiff query --mismatches any_mismatches.tsv --genome-build GRCh38 --assay TWE
  vepdiff reconcile --mismatches any_mismatches.tsv --assay TWE
  vepdiff classify --reconciled merged_validator_mismatches.tsv

or everything at once:
  vepdiff run --directory vcfs/ --old-version 110 --new-version 113 --genome-build GRCh38 --assay TWE`,
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit string) {
	Version = version
	Commit = commit
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.vepdiff.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vepdiff")
	}

	// .env before viper env binding, .env.local overrides .env
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets the log level from flags and environment.
func configureLogging() {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	logging.SetLevel(level)
}
