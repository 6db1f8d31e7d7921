// Package main is the entry point for the tickerfeed CLI.
//
// Tickerfeed can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	tickerfeed serve -c config.yaml    # Start the feed server
//	tickerfeed validate -c config.yaml # Validate configuration
//	tickerfeed version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "tickerfeed",
	Short: "A real-time simulated stock price feed",
	Long: `Tickerfeed is a real-time simulated stock price feed.

It keeps a set of stock records in memory, nudges one price at random on
a fixed interval, and pushes every change to connected browsers over
Server-Sent Events. A small CRUD API lets you add, adjust, and remove
stocks while the feed runs.

Quick start:
  1. Create a config file (tickerfeed.yaml)
  2. Run: tickerfeed serve -c tickerfeed.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  update_interval_seconds: 5
  stocks:
    - symbol: AAPL
      name: Apple
      price: 150.00`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this tickerfeed binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tickerfeed %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
