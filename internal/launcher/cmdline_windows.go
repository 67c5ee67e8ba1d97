//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// setRawCommandLine hands line to CreateProcess verbatim. cmd.exe does not
// understand the backslash escaping exec applies to Args.
func setRawCommandLine(cmd *exec.Cmd, line string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: line}
}
