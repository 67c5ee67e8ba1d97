package launcher

import (
	"fmt"
	"strings"
)

// Builder assembles the java command line for a launch.
type Builder struct {
	JavaPath   string
	DriversDir string
}

// NodeName labels the launched process. Headless launches use the home name;
// windowed launches append the jar so the node and its web server can be told
// apart.
func NodeName(req Request, s Strategy) string {
	if s == Headless {
		return req.Home.Name
	}
	return req.Home.Name + "-" + req.JarType.JarName
}

// Build returns the argv for req under strategy s. agent is the resolved
// monitoring agent file name, or empty when there is none.
func (b Builder) Build(req Request, s Strategy, agent string) []string {
	driversDir := b.DriversDir
	if driversDir == "" {
		driversDir = DefaultDriversDir
	}

	argv := []string{b.JavaPath}
	argv = append(argv, req.JVMArgs...)
	argv = append(argv, "-Dname="+NodeName(req, s))

	var capsuleArgs []string
	if req.DebugPort > 0 {
		capsuleArgs = append(capsuleArgs,
			fmt.Sprintf("-agentlib:jdwp=transport=dt_socket,server=y,suspend=n,address=%d", req.DebugPort))
	}
	if req.MonitoringPort > 0 && agent != "" {
		capsuleArgs = append(capsuleArgs,
			fmt.Sprintf("-javaagent:%s/%s=port=%d", driversDir, agent, req.MonitoringPort))
	}
	if len(capsuleArgs) > 0 {
		argv = append(argv, "-Dcapsule.jvm.args="+strings.Join(capsuleArgs, " "))
	}

	argv = append(argv, "-jar", req.JarType.JarName)
	argv = append(argv, s.ExtraArgs()...)
	argv = append(argv, Passthrough(req.Args)...)
	return argv
}
