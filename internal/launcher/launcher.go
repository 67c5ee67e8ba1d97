package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// ErrSpawnRejected is returned when the OS refuses to start a process.
var ErrSpawnRejected = errors.New("spawn rejected")

// DefaultSettleDelay is how long the Terminal tab strategy pauses after
// asking Terminal.app for a new tab.
const DefaultSettleDelay = 1200 * time.Millisecond

// DefaultTerminal is the emulator used outside tmux on Linux.
const DefaultTerminal = "xterm"

// Started describes a process the launcher spawned. The launcher does not
// wait for it.
type Started struct {
	Process     *os.Process
	CommandLine string
}

// StartFunc starts a prepared command without waiting for it.
type StartFunc func(*exec.Cmd) error

func startCmd(cmd *exec.Cmd) error {
	return cmd.Start()
}

// Launcher spawns built commands using a launch strategy.
type Launcher struct {
	Start      StartFunc
	Automation TerminalAutomation
	Getenv     func(string) string
	// Terminal is the emulator opened by LinuxTerminal outside tmux
	Terminal string

	Stdin  io.Reader
	Stdout io.Writer

	Logger *slog.Logger
}

// New returns a Launcher that starts real processes.
func New(logger *slog.Logger, terminal string, settle time.Duration) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	if terminal == "" {
		terminal = DefaultTerminal
	}
	return &Launcher{
		Start:      startCmd,
		Automation: NewOsascript(startCmd, settle),
		Getenv:     os.Getenv,
		Terminal:   terminal,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Logger:     logger,
	}
}

// Launch spawns argv for req using strategy s.
func (l *Launcher) Launch(ctx context.Context, s Strategy, req Request, argv []string) (Started, error) {
	if len(argv) == 0 {
		return Started{}, fmt.Errorf("%w: empty command", ErrSpawnRejected)
	}
	name := NodeName(req, s)

	var (
		started Started
		err     error
	)
	switch s {
	case Headless:
		started, err = l.launchHeadless(req.Home.Dir, name, argv)
	case UnixMultiplexer:
		started, err = l.launchScreen(req.Home.Dir, name, argv)
	case LinuxTerminal:
		started, err = l.launchLinuxTerminal(req.Home.Dir, name, argv)
	case MacTerminalTab:
		started, err = l.launchTerminalTab(ctx, req.Home.Dir, argv)
	case WindowsStart:
		started, err = l.launchWindowsStart(req.Home.Dir, name, argv)
	default:
		return Started{}, fmt.Errorf("unknown launch strategy %d", s)
	}
	if err != nil {
		return Started{}, fmt.Errorf("%w (%s): %w", ErrSpawnRejected, s, err)
	}

	l.Logger.Debug("spawned", "strategy", s.String(), "name", name, "command", started.CommandLine)
	return started, nil
}

// run starts cmd and describes it with a shell-quoted command line.
func (l *Launcher) run(cmd *exec.Cmd) (Started, error) {
	if err := l.Start(cmd); err != nil {
		return Started{}, err
	}
	return Started{Process: cmd.Process, CommandLine: UnixJoin(cmd.Args)}, nil
}
