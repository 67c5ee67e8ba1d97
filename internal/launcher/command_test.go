package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshul/noderunner/internal/nodes"
)

func testHome(t *testing.T, name string) *nodes.Home {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	home, err := nodes.NewHome(dir)
	require.NoError(t, err)
	return home
}

func TestBuild(t *testing.T) {
	home := testHome(t, "partyA")
	b := Builder{JavaPath: "/opt/jdk/bin/java"}

	req := Request{
		Home:           home,
		JarType:        nodes.NodeJar,
		DebugPort:      5005,
		MonitoringPort: 7005,
		Args:           []string{"--headless", "--log-to-console", "--screen", "--capsule-debug", "--sshd"},
		JVMArgs:        []string{CapsuleVerboseArg},
	}

	got := b.Build(req, LinuxTerminal, "jolokia-jvm-1.6.0-agent.jar")
	want := []string{
		"/opt/jdk/bin/java",
		"-Dcapsule.log=verbose",
		"-Dname=partyA-corda.jar",
		"-Dcapsule.jvm.args=-agentlib:jdwp=transport=dt_socket,server=y,suspend=n,address=5005 -javaagent:drivers/jolokia-jvm-1.6.0-agent.jar=port=7005",
		"-jar", "corda.jar",
		"--log-to-console",
		"--sshd",
	}
	assert.Equal(t, want, got)
}

func TestBuildHeadless(t *testing.T) {
	home := testHome(t, "notary")
	b := Builder{JavaPath: "java"}
	req := Request{
		Home:      home,
		JarType:   nodes.WebServerJar,
		DebugPort: 5006,
		Args:      []string{"--headless"},
	}

	got := b.Build(req, Headless, "")
	want := []string{
		"java",
		"-Dname=notary",
		"-Dcapsule.jvm.args=-agentlib:jdwp=transport=dt_socket,server=y,suspend=n,address=5006",
		"-jar", "corda-webserver.jar",
		"--no-local-shell",
	}
	assert.Equal(t, want, got)
}

func TestBuildWithoutPorts(t *testing.T) {
	home := testHome(t, "bank")
	b := Builder{JavaPath: "java", DriversDir: "agents"}

	got := b.Build(Request{Home: home, JarType: nodes.NodeJar, MonitoringPort: 7005}, WindowsStart, "")
	assert.Equal(t, []string{"java", "-Dname=bank-corda.jar", "-jar", "corda.jar"}, got)

	got = b.Build(Request{Home: home, JarType: nodes.NodeJar, MonitoringPort: 7005}, WindowsStart, "agent.jar")
	assert.Contains(t, got, "-Dcapsule.jvm.args=-javaagent:agents/agent.jar=port=7005")
}

func TestBuildNeverForwardsLauncherFlags(t *testing.T) {
	home := testHome(t, "partyB")
	b := Builder{JavaPath: "java"}
	args := []string{HeadlessFlag, "a b", ScreenFlag, `say "hi"`, CapsuleDebugFlag, HeadlessFlag}

	for _, s := range []Strategy{Headless, UnixMultiplexer, LinuxTerminal, MacTerminalTab, WindowsStart} {
		argv := b.Build(Request{Home: home, JarType: nodes.NodeJar, Args: args}, s, "")
		for _, arg := range argv {
			assert.False(t, IsLauncherFlag(arg), "%s forwarded %q", s, arg)
		}
		assert.Equal(t, []string{"a b", `say "hi"`}, argv[len(argv)-2:])
	}
}

func TestNodeName(t *testing.T) {
	home := testHome(t, "partyA")
	req := Request{Home: home, JarType: nodes.WebServerJar}

	assert.Equal(t, "partyA", NodeName(req, Headless))
	assert.Equal(t, "partyA-corda-webserver.jar", NodeName(req, UnixMultiplexer))
	assert.Equal(t, "partyA-corda-webserver.jar", NodeName(req, MacTerminalTab))
}

func TestPassthrough(t *testing.T) {
	assert.Empty(t, Passthrough(nil))
	assert.Equal(t, []string{"--headlessly", "x"}, Passthrough([]string{"--headlessly", "--screen", "x"}))
	assert.True(t, HasFlag([]string{"a", "--screen"}, ScreenFlag))
	assert.False(t, HasFlag([]string{"--screen=true"}, ScreenFlag))
}
