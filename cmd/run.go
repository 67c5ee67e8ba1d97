package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harshul/noderunner/internal/config"
	"github.com/harshul/noderunner/internal/launcher"
	"github.com/harshul/noderunner/internal/logging"
	"github.com/harshul/noderunner/internal/orchestrator"
	"github.com/harshul/noderunner/internal/ui"
)

// configEnv overrides the location of the config file.
const configEnv = config.EnvPrefix + "_CONFIG"

func configPath(cwd string) string {
	path := os.Getenv(configEnv)
	if path == "" {
		path = config.FileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return path
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

func runNodes(cmd *cobra.Command, args []string) error {
	if wantsHelp(args) {
		return cmd.Help()
	}
	if launcher.HasFlag(args, "--version") {
		fmt.Fprintln(cmd.OutOrStdout(), "noderunner version "+version)
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.Load(configPath(cwd))
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	level := cfg.Log.Level
	if launcher.HasFlag(args, launcher.CapsuleDebugFlag) {
		level = "debug"
	}
	logger, closer, err := logging.Setup(level, cfg.Log.Output)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	orch, err := orchestrator.New(orchestrator.Options{
		WorkDir: cwd,
		Args:    args,
		Config:  cfg,
		Printer: ui.NewPrinter(cmd.OutOrStdout()),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	result, err := orch.Run(cmd.Context())
	if err != nil {
		return err
	}

	// Failed candidates were already reported; the run itself succeeded.
	if failed := result.Failed(); len(failed) > 0 {
		logger.Warn("some nodes did not start", "run_id", result.RunID, "failed", len(failed))
	}
	return nil
}
