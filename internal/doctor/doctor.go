package doctor

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/host"
)

// Platform is the host OS family.
type Platform int

const (
	Linux Platform = iota
	MacOS
	Windows
)

func (p Platform) String() string {
	switch p {
	case MacOS:
		return "macOS"
	case Windows:
		return "Windows"
	default:
		return "Linux"
	}
}

// PlatformFromHost classifies a host-identifying string such as "darwin" or
// "Windows 10". Anything that is not recognizably macOS or Windows is Linux.
func PlatformFromHost(hostName string) Platform {
	s := strings.ToLower(hostName)
	switch {
	case strings.Contains(s, "mac") || strings.Contains(s, "darwin"):
		return MacOS
	case strings.Contains(s, "win"):
		return Windows
	default:
		return Linux
	}
}

// Environment is the probed state of the host for one launcher run.
type Environment struct {
	Platform       Platform
	Headless       bool
	HasMultiplexer bool
	// Host is the string the platform was derived from
	Host string
}

// Prober queries the host. The multiplexer lookup runs at most once per Prober.
type Prober struct {
	// HostString returns the host-identifying string
	HostString func() string
	// Getenv reads an environment variable
	Getenv func(string) string
	// Which runs the "locate program" query and returns its stdout
	Which func(ctx context.Context, program string) ([]byte, error)

	Logger *slog.Logger

	once      sync.Once
	hasScreen bool
}

// NewProber returns a Prober backed by the real host.
func NewProber(logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		HostString: hostString,
		Getenv:     os.Getenv,
		Which:      which,
		Logger:     logger,
	}
}

// hostString prefers the OS reported by gopsutil and falls back to GOOS.
func hostString() string {
	info, err := host.Info()
	if err != nil || info.OS == "" {
		return runtime.GOOS
	}
	return info.OS
}

func which(ctx context.Context, program string) ([]byte, error) {
	return exec.CommandContext(ctx, "which", program).Output()
}

// Probe resolves the environment. headlessFlag forces headless mode.
func (p *Prober) Probe(ctx context.Context, headlessFlag bool) Environment {
	hostName := p.HostString()
	env := Environment{
		Platform: PlatformFromHost(hostName),
		Host:     hostName,
	}
	env.Headless = headlessFlag || p.displayHeadless(env.Platform)
	env.HasMultiplexer = p.HasMultiplexer(ctx, env.Platform)
	return env
}

// displayHeadless reports whether no graphical display is reachable. Only
// X11/Wayland hosts can be without one.
func (p *Prober) displayHeadless(platform Platform) bool {
	if platform != Linux {
		return false
	}
	return p.Getenv("DISPLAY") == "" && p.Getenv("WAYLAND_DISPLAY") == ""
}

// HasMultiplexer reports whether screen is installed. The lookup runs once;
// later calls return the cached answer. A failed lookup means unavailable.
func (p *Prober) HasMultiplexer(ctx context.Context, platform Platform) bool {
	if platform == Windows {
		return false
	}
	p.once.Do(func() {
		out, err := p.Which(ctx, "screen")
		if err != nil {
			p.Logger.Debug("screen lookup failed", "error", err)
			return
		}
		p.hasScreen = countLines(out) == 1
	})
	return p.hasScreen
}

func countLines(out []byte) int {
	n := 0
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n
}

// RuntimeStatus represents the status of a runtime check
type RuntimeStatus struct {
	Name      string
	Installed bool
	Version   string
	Path      string
}

// JavaPath returns the java executable to launch nodes with: javaHome/bin/java
// when javaHome is set, then $JAVA_HOME/bin/java, then java from PATH.
func JavaPath(javaHome string) string {
	exe := "java"
	if runtime.GOOS == "windows" {
		exe = "java.exe"
	}
	if javaHome == "" {
		javaHome = os.Getenv("JAVA_HOME")
	}
	if javaHome != "" {
		return filepath.Join(javaHome, "bin", exe)
	}
	if path, err := exec.LookPath("java"); err == nil {
		return path
	}
	return "java"
}

// CheckJavaRuntime checks if the given java executable runs
func CheckJavaRuntime(javaPath string) RuntimeStatus {
	status := RuntimeStatus{Name: "Java", Installed: false, Path: javaPath}

	cmd := exec.Command(javaPath, "-version")
	// Java outputs version to stderr
	output, err := cmd.CombinedOutput()
	if err == nil {
		status.Installed = true
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	if resolved, err := exec.LookPath(javaPath); err == nil {
		status.Path = resolved
	}

	return status
}
