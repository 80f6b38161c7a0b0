package cmd

import (
	"fmt"
	"os"

	"github.com/nikogura/resume-builder/pkg/collect"
	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-builder",
	Short: "Build tailored resumes and cover letters from your profile",
	Long: `resume-builder collects your career profile once, then tailors it to each
job posting you apply for: a focused summary, the most relevant jobs (your
current one always first), rewritten duties, matching skills and a cover letter.

Results are written as Word documents (via pandoc) plus plain-text copies.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. A cancelled prompt exits cleanly.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, collect.ErrInputCancelled) {
			fmt.Println("\nCancelled.")
			os.Exit(0)
		}

		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Check your config file or .env and make sure the API key for your provider is set.")
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-builder/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger returns the diagnostic logger. Warnings always show; debug
// output only with --verbose.
func newLogger() (log *logrus.Logger) {
	log = logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if getVerbose() {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig reads configuration from --config or the default location.
func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return cfg, err
	}

	if getVerbose() {
		fmt.Printf("Provider: %s (model %s)\n", cfg.Provider, cfg.GetModel())
		fmt.Printf("Profile: %s\n", cfg.ProfilePath)
	}

	return cfg, err
}
