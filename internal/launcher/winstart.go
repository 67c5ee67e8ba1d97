package launcher

import (
	"os/exec"
	"strings"
)

// startTitle is the quoted console title. start only reads its first argument
// as a title when it is quoted, and a title cannot contain quotes.
func startTitle(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, "") + `"`
}

// startCommandLine is the full cmd.exe command line that opens a new console
// titled name and runs argv in it.
func startCommandLine(name string, argv []string) string {
	return "cmd /C start " + startTitle(name) + " " + WindowsJoin(argv)
}

func (l *Launcher) launchWindowsStart(dir, name string, argv []string) (Started, error) {
	line := startCommandLine(name, argv)
	cmd := exec.Command("cmd", "/C", "start", name)
	cmd.Dir = dir
	setRawCommandLine(cmd, line)

	if err := l.Start(cmd); err != nil {
		return Started{}, err
	}
	return Started{Process: cmd.Process, CommandLine: line}, nil
}
