package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harshul/noderunner/internal/config"
	"github.com/harshul/noderunner/internal/ui"
)

// initCmd writes a default config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .noderunner.yaml",
	Long: `The init command writes a .noderunner.yaml with every setting at its
default value:
- java_home and jvm_args for the java command
- the first debug and monitoring ports
- where the monitoring agent is looked up
- the terminal emulator and log settings

Edit the file to change how nodes are started. Settings can also be
overridden with NODERUNNER_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringP("output", "o", config.FileName, "Output file path for the configuration")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(cwd, outputPath)
	}

	if _, err := os.Stat(outputPath); err == nil && !force {
		overwrite, err := ui.Confirm(
			fmt.Sprintf("%s already exists. Overwrite it?", filepath.Base(outputPath)),
			"The current settings will be replaced with the defaults.",
			false,
		)
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		if !overwrite {
			return fmt.Errorf("configuration file already exists at %s. Use --force to overwrite", outputPath)
		}
	}

	if err := config.Write(outputPath, config.Default()); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	out := ui.NewPrinter(cmd.OutOrStdout())
	out.Success(fmt.Sprintf("Configuration written to %s", outputPath))
	out.Info("Run 'noderunner' to start your nodes")
	return nil
}
