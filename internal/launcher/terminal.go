package launcher

import "os/exec"

// keepOpenOnFailure leaves a shell behind when the node exits with anything
// but success or SIGTERM (143), so the output can be read.
const keepOpenOnFailure = "; [ $? -eq 0 -o $? -eq 143 ] || sh"

// inTmux reports whether the launcher runs inside a tmux session.
func (l *Launcher) inTmux() bool {
	return l.Getenv("TMUX") != ""
}

// terminalCommand builds the window-opening command for LinuxTerminal.
func (l *Launcher) terminalCommand(dir, name string, argv []string) *exec.Cmd {
	shell := UnixJoin(argv) + keepOpenOnFailure

	var cmd *exec.Cmd
	if l.inTmux() {
		cmd = exec.Command("tmux", "new-window", "-n", name, "-c", dir, shell)
	} else {
		cmd = exec.Command(l.Terminal, "-T", name, "-e", "sh", "-c", shell)
	}
	cmd.Dir = dir
	return cmd
}

func (l *Launcher) launchLinuxTerminal(dir, name string, argv []string) (Started, error) {
	return l.run(l.terminalCommand(dir, name, argv))
}
