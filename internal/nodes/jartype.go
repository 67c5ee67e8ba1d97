package nodes

import "strings"

// Variant identifies which companion executable of a home is launched.
type Variant int

const (
	// Primary is the node process itself
	Primary Variant = iota
	// Auxiliary is the web server that fronts the node
	Auxiliary
)

func (v Variant) String() string {
	switch v {
	case Primary:
		return "node"
	case Auxiliary:
		return "webserver"
	default:
		return "unknown"
	}
}

// JarType describes a launchable jar and the configuration it requires.
type JarType struct {
	Variant Variant
	JarName string
	// Accept reports whether node.conf permits this jar to run
	Accept func(lines []string) bool
}

// WebAddressMarker must appear in node.conf for the web server to be started.
const WebAddressMarker = "webAddress"

// NodeJar is the primary node process.
var NodeJar = JarType{
	Variant: Primary,
	JarName: "corda.jar",
	Accept:  func([]string) bool { return true },
}

// WebServerJar is the auxiliary web server process.
var WebServerJar = JarType{
	Variant: Auxiliary,
	JarName: "corda-webserver.jar",
	Accept: func(lines []string) bool {
		for _, line := range lines {
			if strings.Contains(line, WebAddressMarker) {
				return true
			}
		}
		return false
	},
}

// JarTypes lists the variants in launch order.
var JarTypes = []JarType{NodeJar, WebServerJar}

// SkipReason explains why a jar type does not apply to a home.
type SkipReason int

const (
	// NotSkipped means the jar type applies
	NotSkipped SkipReason = iota
	// ArtifactMissing means the jar is absent
	ArtifactMissing
	// ConfigMismatch means node.conf is absent or does not satisfy the jar type
	ConfigMismatch
)

func (r SkipReason) String() string {
	switch r {
	case NotSkipped:
		return "applicable"
	case ArtifactMissing:
		return "artifact missing"
	case ConfigMismatch:
		return "configuration mismatch"
	default:
		return "unknown"
	}
}

// Check reports whether jt applies to the home, and if not, why. The
// configuration is only read when the jar is present.
func Check(h *Home, jt JarType) SkipReason {
	if !h.HasFile(jt.JarName) {
		return ArtifactMissing
	}
	lines, found := h.ConfigLines()
	if !found {
		return ConfigMismatch
	}
	if jt.Accept != nil && !jt.Accept(lines) {
		return ConfigMismatch
	}
	return NotSkipped
}

// Matches reports whether jt should be launched from the home. It is the
// boolean form of Check.
func Matches(h *Home, jt JarType) bool {
	return Check(h, jt) == NotSkipped
}
