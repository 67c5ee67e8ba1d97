package launcher

import (
	"os"
	"os/exec"
	"path/filepath"
)

// ErrorLogName is the file a headless node's stderr goes to.
func ErrorLogName(nodeName string) string {
	return "error." + nodeName + ".log"
}

// launchHeadless runs java in the home with the launcher's stdin and stdout
// and stderr redirected to a per-node log file.
func (l *Launcher) launchHeadless(dir, name string, argv []string) (Started, error) {
	logFile, err := os.Create(filepath.Join(dir, ErrorLogName(name)))
	if err != nil {
		return Started{}, err
	}
	// The child holds its own descriptor once started.
	defer logFile.Close()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = logFile

	started, err := l.run(cmd)
	if err != nil {
		logFile.Close()
		os.Remove(logFile.Name())
		return Started{}, err
	}
	return started, nil
}
