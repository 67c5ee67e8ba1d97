package launcher

import (
	"fmt"
	"os/exec"
)

// screenScript opens a detached screen session named after the node that runs
// argv and exits with its status.
func screenScript(dir, name string, argv []string) string {
	inner := UnixJoin(argv) + "; exit $?"
	return fmt.Sprintf("cd %s\nscreen -dmS %s sh -c %s\necho started %s\n",
		UnixJoin([]string{dir}),
		UnixJoin([]string{name}),
		UnixJoin([]string{inner}),
		UnixJoin([]string{name}))
}

func (l *Launcher) launchScreen(dir, name string, argv []string) (Started, error) {
	cmd := exec.Command("sh", "-c", screenScript(dir, name, argv))
	cmd.Dir = dir
	return l.run(cmd)
}
