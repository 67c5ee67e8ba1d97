package launcher

import "github.com/harshul/noderunner/internal/nodes"

// Flags consumed by the launcher itself and never forwarded to a node.
const (
	HeadlessFlag     = "--headless"
	ScreenFlag       = "--screen"
	CapsuleDebugFlag = "--capsule-debug"
)

// CapsuleVerboseArg turns on capsule logging in the launched jar.
const CapsuleVerboseArg = "-Dcapsule.log=verbose"

// NoLocalShellArg stops a headless node from opening its interactive shell.
const NoLocalShellArg = "--no-local-shell"

// Request is everything needed to start one jar from one node home.
type Request struct {
	Home    *nodes.Home
	JarType nodes.JarType
	// DebugPort and MonitoringPort are zero when not allocated
	DebugPort      int
	MonitoringPort int
	// Args are the caller's command line arguments, launcher flags included
	Args []string
	// JVMArgs are passed to java before the identity label
	JVMArgs []string
}

// IsLauncherFlag reports whether arg is consumed by the launcher.
func IsLauncherFlag(arg string) bool {
	switch arg {
	case HeadlessFlag, ScreenFlag, CapsuleDebugFlag:
		return true
	}
	return false
}

// Passthrough returns args without the launcher's own flags.
func Passthrough(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !IsLauncherFlag(arg) {
			out = append(out, arg)
		}
	}
	return out
}

// HasFlag reports whether flag appears in args.
func HasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}
