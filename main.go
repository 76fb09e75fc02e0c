// Command smartcab trains a tabular Q-learning agent to drive a
// smartcab through a grid of intersections.
//
// Usage:
//
//	smartcab [flags] <command> [args]
//
// Commands:
//
//	train    - Train an agent online, then evaluate it in testing trials
//	table    - Print a saved table of action values
//	version  - Print the version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smartcab",
	Short: "Train a Q-learning smartcab",
	Long: `smartcab trains a tabular Q-learning agent to drive through a grid
of intersections with traffic lights and other traffic, reaching its
destination before a deadline.

Examples:
  # Train with the default hyperparameters
  smartcab train

  # Train from a configuration file, overriding the seed
  smartcab train -f experiment.yaml --seed 7

  # Print a table saved by a previous run
  smartcab table out/table.bin
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log every tick at debug level")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(versionCmd)
}

// initLogging configures slog based on the verbose flag
func initLogging() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: logLevel})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
