package nodes

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConfigFileName is the node configuration file every launchable home carries.
const ConfigFileName = "node.conf"

// Home is one participant's deployment directory.
type Home struct {
	// Dir is the absolute path of the home
	Dir string
	// Name is the directory basename
	Name string

	configLoaded bool
	configLines  []string
	configFound  bool
}

// NewHome returns a Home for dir. The path is made absolute.
func NewHome(dir string) (*Home, error) {
	abs := dir
	if !filepath.IsAbs(abs) {
		var err error
		abs, err = filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
	}
	return &Home{Dir: abs, Name: filepath.Base(abs)}, nil
}

// HasFile reports whether a regular file with the given name exists in the home.
func (h *Home) HasFile(name string) bool {
	info, err := os.Stat(filepath.Join(h.Dir, name))
	return err == nil && !info.IsDir()
}

// ConfigLines returns the lines of node.conf. The file is read on first use
// and cached. found is false when the file does not exist or cannot be read.
func (h *Home) ConfigLines() (lines []string, found bool) {
	if h.configLoaded {
		return h.configLines, h.configFound
	}
	h.configLoaded = true

	f, err := os.Open(filepath.Join(h.Dir, ConfigFileName))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		h.configLines = append(h.configLines, scanner.Text())
	}
	if scanner.Err() != nil {
		h.configLines = nil
		return nil, false
	}
	h.configFound = true
	return h.configLines, true
}

// Scan lists the immediate subdirectories of workDir as node homes, sorted by
// name so that port assignment is reproducible. Hidden directories are skipped.
func Scan(workDir string) ([]*Home, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, err
	}

	var homes []*Home
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(workDir, entry.Name())
		// Follow symlinked homes; ReadDir reports the link itself.
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		home, err := NewHome(path)
		if err != nil {
			return nil, err
		}
		homes = append(homes, home)
	}

	sort.Slice(homes, func(i, j int) bool {
		return homes[i].Name < homes[j].Name
	})
	return homes, nil
}
