package launcher

import "github.com/harshul/noderunner/internal/doctor"

// Strategy is how a built command is started and presented.
type Strategy int

const (
	// Headless runs java directly with the launcher's stdio
	Headless Strategy = iota
	// UnixMultiplexer runs java in a detached screen session
	UnixMultiplexer
	// LinuxTerminal opens a tmux window or a terminal emulator
	LinuxTerminal
	// MacTerminalTab opens a new Terminal.app tab
	MacTerminalTab
	// WindowsStart runs java in a new console via start
	WindowsStart
)

func (s Strategy) String() string {
	switch s {
	case Headless:
		return "headless"
	case UnixMultiplexer:
		return "screen"
	case LinuxTerminal:
		return "terminal"
	case MacTerminalTab:
		return "terminal-tab"
	case WindowsStart:
		return "start"
	default:
		return "unknown"
	}
}

// ExtraArgs are appended after the jar for this strategy.
func (s Strategy) ExtraArgs() []string {
	if s == Headless {
		return []string{NoLocalShellArg}
	}
	return nil
}

// Select picks the strategy for an environment. preferMultiplexer is the
// caller's --screen request; it only takes effect when screen is installed.
func Select(env doctor.Environment, preferMultiplexer bool) Strategy {
	if env.Headless {
		return Headless
	}
	switch env.Platform {
	case doctor.Windows:
		return WindowsStart
	case doctor.MacOS:
		if preferMultiplexer && env.HasMultiplexer {
			return UnixMultiplexer
		}
		return MacTerminalTab
	default:
		if preferMultiplexer && env.HasMultiplexer {
			return UnixMultiplexer
		}
		return LinuxTerminal
	}
}
