package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// TerminalAutomation opens an interactive terminal and runs a shell command
// in it. Implementations drive a GUI and are inherently racy.
type TerminalAutomation interface {
	OpenTab(ctx context.Context, dir, command string) (Started, error)
}

// Osascript drives Terminal.app through AppleScript.
type Osascript struct {
	Start StartFunc
	// Settle is the pause after requesting a tab so that the next request
	// does not race the keystroke injection
	Settle time.Duration
}

// NewOsascript returns the Terminal.app automation.
func NewOsascript(start StartFunc, settle time.Duration) *Osascript {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Osascript{Start: start, Settle: settle}
}

// terminalTabScript is the AppleScript that opens a tab and runs command.
func terminalTabScript(command string) string {
	return fmt.Sprintf(`tell app "Terminal"
activate
delay 0.5
tell app "System Events" to tell process "Terminal" to keystroke "t" using command down
delay 0.5
do script %s in selected tab of the front window
end tell`, appleScriptString(command))
}

// OpenTab runs command in a new Terminal tab.
func (o *Osascript) OpenTab(ctx context.Context, dir, command string) (Started, error) {
	cmd := exec.Command("osascript", "-e", terminalTabScript(command))
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := o.Start(cmd); err != nil {
		return Started{}, err
	}

	timer := time.NewTimer(o.Settle)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	return Started{Process: cmd.Process, CommandLine: UnixJoin(cmd.Args)}, nil
}

// tabShellCommand is what the new tab runs: java in the home, closing the tab
// when it exits cleanly.
func tabShellCommand(dir string, argv []string) string {
	script := "cd " + UnixJoin([]string{dir}) + " && " + UnixJoin(argv) + " && exit"
	return "bash -c " + UnixJoin([]string{script})
}

func (l *Launcher) launchTerminalTab(ctx context.Context, dir string, argv []string) (Started, error) {
	return l.Automation.OpenTab(ctx, dir, tabShellCommand(dir, argv))
}
