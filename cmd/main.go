package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version information (can be set at build time)
var (
	version = "0.1.0"
)

// rootCmd starts every node found under the working directory
var rootCmd = &cobra.Command{
	Use:   "noderunner [--headless] [--screen] [--capsule-debug] [node args...]",
	Short: "Start every node in the current directory",
	Long: `noderunner looks at each directory under the current one and starts
corda.jar, plus corda-webserver.jar when node.conf sets a webAddress.

Each jar gets its own debug port (from 5005) and monitoring port (from 7005).
Nodes open in a new terminal window or tab, or run in the background when no
display is available.

Flags:
  --headless        run nodes as child processes without a terminal window
  --screen          run nodes in detached screen sessions when screen is installed
  --capsule-debug   verbose capsule logging and debug level launcher logs

Every other argument is passed to each node unchanged.

Usage:
  noderunner          Start the nodes
  noderunner doctor   Show what would be started and how
  noderunner init     Write a default .noderunner.yaml`,
	Version: version,
	// Node arguments are forwarded verbatim, so cobra must not reject them.
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	RunE:               runNodes,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
