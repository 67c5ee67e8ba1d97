package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// DefaultDriversDir is the directory under each home that holds JVM agents.
const DefaultDriversDir = "drivers"

// DefaultAgentPattern matches the Jolokia JVM agent jar.
const DefaultAgentPattern = `^jolokia-jvm-.*-agent\.jar$`

// ErrAgentNotFound is returned when the drivers directory does not hold
// exactly one monitoring agent.
var ErrAgentNotFound = errors.New("monitoring agent not found")

// ResolveAgent finds the single file in homeDir/driversDir whose name matches
// pattern and returns its name.
func ResolveAgent(homeDir, driversDir, pattern string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("agent pattern %q: %w", pattern, err)
	}

	dir := filepath.Join(homeDir, driversDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAgentNotFound, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if re.MatchString(entry.Name()) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: no file in %s matches %s", ErrAgentNotFound, dir, pattern)
	default:
		return "", fmt.Errorf("%w: %d files in %s match %s: %v", ErrAgentNotFound, len(matches), dir, pattern, matches)
	}
}
