//go:build !windows

package launcher

import "os/exec"

func setRawCommandLine(*exec.Cmd, string) {}
