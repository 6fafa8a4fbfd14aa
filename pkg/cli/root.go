// Package cli implements the stubkit command-line interface, used to
// exercise fixture files outside a test run.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stubkit/stubkit/pkg/config"
	"github.com/stubkit/stubkit/pkg/engine"
	"github.com/stubkit/stubkit/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	fixturePath string
	logLevel    string

	// Version is injected during build
	Version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stubkit",
	Short: "stubkit is an in-process service-virtualization engine",
	Long: `stubkit lets tests declare typed mock resources and answer
request-style calls against an in-process endpoint. This CLI loads a
fixture file and dispatches requests against it, for debugging
fixtures without running a test suite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fixturePath, "fixture", "f", "", "Fixture YAML file to load")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// loadEngine builds an engine from the --fixture flag.
func loadEngine() (*engine.Engine, error) {
	eng := engine.New(engine.Config{
		Logger: logging.New(logging.Config{Level: logging.ParseLevel(logLevel)}),
	})
	if fixturePath == "" {
		return eng, nil
	}
	fixture, err := config.LoadFromFile(fixturePath)
	if err != nil {
		return nil, err
	}
	if err := config.Apply(fixture, eng); err != nil {
		return nil, err
	}
	return eng, nil
}
