package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harshul/noderunner/internal/config"
	"github.com/harshul/noderunner/internal/doctor"
	"github.com/harshul/noderunner/internal/launcher"
	"github.com/harshul/noderunner/internal/logging"
	"github.com/harshul/noderunner/internal/nodes"
	"github.com/harshul/noderunner/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Show the detected environment and which nodes would start",
	Long: `The doctor command probes the host the same way a launch does and
reports:
- the platform, display and screen availability
- the java runtime that nodes would be started with
- each node home and which of its jars would be launched, or why not
- the launch strategy that would be used

Nothing is started.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().Bool("headless", false, "Probe as if --headless was given")
	doctorCmd.Flags().Bool("screen", false, "Probe as if --screen was given")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	headless, _ := cmd.Flags().GetBool("headless")
	screen, _ := cmd.Flags().GetBool("screen")

	cfg, err := config.Load(configPath(cwd))
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	logger, closer, err := logging.Setup(cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	out := ui.NewPrinter(cmd.OutOrStdout())
	javaPath := doctor.JavaPath(cfg.JavaHome)

	diagnosis, err := doctor.Diagnose(cmd.Context(), doctor.NewProber(logger), cwd, javaPath, headless)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", cwd, err)
	}

	printDiagnosis(out, diagnosis, launcher.Select(diagnosis.Environment, screen))
	return nil
}

func printDiagnosis(out *ui.Printer, d doctor.Diagnosis, strategy launcher.Strategy) {
	env := d.Environment
	out.Printf("Working directory: %s", d.WorkDir)
	out.Printf("Platform: %s (%s)", env.Platform, env.Host)
	out.Printf("Headless: %t", env.Headless)
	out.Printf("screen installed: %t", env.HasMultiplexer)
	out.Printf("Launch strategy: %s", strategy)
	out.Println("")

	if d.Runtime.Installed {
		out.Success(fmt.Sprintf("%s: %s", d.Runtime.Name, d.Runtime.Version))
		out.Detail(d.Runtime.Path)
	} else {
		out.Error(fmt.Sprintf("%s not found at %s", d.Runtime.Name, d.Runtime.Path))
	}
	out.Println("")

	for _, home := range d.Homes {
		if home.Launchable() == 0 {
			out.Detail(fmt.Sprintf("%s: nothing to start", home.Name))
			continue
		}
		out.Info(home.Name)
		for _, v := range home.Variants {
			if v.Reason == nodes.NotSkipped {
				out.Detail(fmt.Sprintf("%s (%s): will start", v.JarName, v.Variant))
			} else {
				out.Detail(fmt.Sprintf("%s (%s): %s", v.JarName, v.Variant, v.Reason))
			}
		}
	}

	if d.Healthy {
		out.Println("")
		out.Success("Ready to start nodes")
		return
	}
	out.Println("")
	for _, issue := range d.Issues {
		out.Warn(issue)
	}
}
