// Package orchestrator runs one launch pass over the node homes in a
// working directory.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/harshul/noderunner/internal/config"
	"github.com/harshul/noderunner/internal/doctor"
	"github.com/harshul/noderunner/internal/launcher"
	"github.com/harshul/noderunner/internal/nodes"
	"github.com/harshul/noderunner/internal/ports"
	"github.com/harshul/noderunner/internal/ui"
)

// Options controls one run.
type Options struct {
	WorkDir string
	// Args are the raw command line arguments, launcher flags included
	Args     []string
	Config   config.Config
	JavaPath string

	Printer  *ui.Printer
	Logger   *slog.Logger
	Prober   *doctor.Prober
	Launcher *launcher.Launcher
	// PortAvailable and PortStatus back the busy port warning
	PortAvailable func(int) bool
	PortStatus    func(int) string
	Now           func() time.Time
}

type Orchestrator struct {
	opts      Options
	allocator *ports.Allocator
	builder   launcher.Builder
	logger    *slog.Logger
	out       *ui.Printer
}

func New(opts Options) (*Orchestrator, error) {
	if opts.WorkDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		opts.WorkDir = cwd
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Printer == nil {
		opts.Printer = ui.NewPrinter(os.Stdout)
	}
	if opts.Prober == nil {
		opts.Prober = doctor.NewProber(opts.Logger)
	}
	if opts.Launcher == nil {
		opts.Launcher = launcher.New(opts.Logger, opts.Config.Terminal, opts.Config.SettleDelay)
	}
	if opts.Config.DriversDir == "" {
		opts.Config.DriversDir = launcher.DefaultDriversDir
	}
	if opts.Config.AgentPattern == "" {
		opts.Config.AgentPattern = launcher.DefaultAgentPattern
	}
	if opts.JavaPath == "" {
		opts.JavaPath = doctor.JavaPath(opts.Config.JavaHome)
	}
	if opts.PortAvailable == nil {
		opts.PortAvailable = ports.IsPortAvailable
	}
	if opts.PortStatus == nil {
		opts.PortStatus = ports.PortStatus
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Orchestrator{
		opts:      opts,
		allocator: ports.NewAllocator(opts.Config.Ports.DebugBase, opts.Config.Ports.MonitoringBase),
		builder: launcher.Builder{
			JavaPath:   opts.JavaPath,
			DriversDir: opts.Config.DriversDir,
		},
		logger: opts.Logger,
		out:    opts.Printer,
	}, nil
}

// Run scans the working directory and launches every matching jar. Failures
// are recorded per candidate; the error is non-nil only when the working
// directory cannot be scanned. Once ctx is done no further jar is launched.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	args := o.opts.Args
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: o.opts.Now(),
		WorkDir:   o.opts.WorkDir,
	}
	logger := o.logger.With("run_id", result.RunID)

	env := o.opts.Prober.Probe(ctx, launcher.HasFlag(args, launcher.HeadlessFlag))
	result.Environment = env
	o.out.Printf("isHeadless: %t", env.Headless)
	o.out.Printf("Starting nodes in %s", o.opts.WorkDir)
	logger.Debug("environment probed", "platform", env.Platform.String(), "host", env.Host,
		"headless", env.Headless, "screen", env.HasMultiplexer)

	homes, err := nodes.Scan(o.opts.WorkDir)
	if err != nil {
		return result, fmt.Errorf("failed to scan %s: %w", o.opts.WorkDir, err)
	}

	strategy := launcher.Select(env, launcher.HasFlag(args, launcher.ScreenFlag))
	jvmArgs := append([]string(nil), o.opts.Config.JVMArgs...)
	if launcher.HasFlag(args, launcher.CapsuleDebugFlag) {
		jvmArgs = append(jvmArgs, launcher.CapsuleVerboseArg)
	}

homes:
	for _, home := range homes {
		for _, jt := range nodes.JarTypes {
			if err := ctx.Err(); err != nil {
				result.Interrupted = true
				o.out.Warn(fmt.Sprintf("Interrupted, not starting the remaining nodes: %v", err))
				break homes
			}
			if reason := nodes.Check(home, jt); reason != nodes.NotSkipped {
				logger.Debug("skipping", "home", home.Name, "jar", jt.JarName, "reason", reason.String())
				result.Skipped = append(result.Skipped, Skip{Home: home.Name, JarName: jt.JarName, Reason: skipReason(reason)})
				continue
			}

			req := launcher.Request{
				Home:           home,
				JarType:        jt,
				DebugPort:      o.allocator.NextDebug(),
				MonitoringPort: o.allocator.NextMonitoring(),
				Args:           args,
				JVMArgs:        jvmArgs,
			}
			outcome := o.launch(ctx, logger, strategy, req)
			result.Outcomes = append(result.Outcomes, outcome)
			if outcome.Err != nil {
				o.out.Error(fmt.Sprintf("Failed to start %s in %s: %v", jt.JarName, home.Dir, outcome.Err))
			}
		}
	}

	o.out.Printf("Started %d processes", result.StartedCount())
	o.out.Println("Finished starting nodes")

	if path := o.opts.Config.RecordFile; path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(o.opts.WorkDir, path)
		}
		if err := WriteRecord(path, result); err != nil {
			o.out.Warn(fmt.Sprintf("Failed to write run record: %v", err))
		} else {
			logger.Debug("run record written", "path", path)
		}
	}

	return result, nil
}

func (o *Orchestrator) launch(ctx context.Context, logger *slog.Logger, s launcher.Strategy, req launcher.Request) Outcome {
	outcome := Outcome{
		Home:           req.Home.Name,
		Dir:            req.Home.Dir,
		JarName:        req.JarType.JarName,
		Strategy:       s,
		DebugPort:      req.DebugPort,
		MonitoringPort: req.MonitoringPort,
	}
	o.out.Printf("Starting %s in %s on debug port %d", req.JarType.JarName, req.Home.Dir, req.DebugPort)

	cfg := o.opts.Config
	agent, err := launcher.ResolveAgent(req.Home.Dir, o.builder.DriversDir, cfg.AgentPattern)
	if err != nil {
		if cfg.MonitoringRequired || !errors.Is(err, launcher.ErrAgentNotFound) {
			return outcome.fail(AgentUnresolved, err)
		}
		o.out.Warn(fmt.Sprintf("%s: starting without monitoring: %v", req.Home.Name, err))
		agent = ""
	}

	argv := o.builder.Build(req, s, agent)
	o.warnBusy("debug", req.DebugPort)
	if agent != "" {
		o.warnBusy("monitoring", req.MonitoringPort)
	}

	started, err := o.opts.Launcher.Launch(ctx, s, req, argv)
	if err != nil {
		return outcome.fail(SpawnRejected, err)
	}

	logger.Info("node started", "home", req.Home.Name, "jar", req.JarType.JarName,
		"strategy", s.String(), "debug_port", req.DebugPort, "monitoring_port", req.MonitoringPort)
	outcome.Started = &started
	return outcome
}

// warnBusy reports an allocated port that something already listens on. The
// allocation is kept either way.
func (o *Orchestrator) warnBusy(kind string, port int) {
	if o.opts.PortAvailable(port) {
		return
	}
	o.out.Warn(fmt.Sprintf("%s %s", kind, o.opts.PortStatus(port)))
}
