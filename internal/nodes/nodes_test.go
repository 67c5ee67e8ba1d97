package nodes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"partyB", "notary", "partyA", ".git"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0o755))
	}
	writeFile(t, filepath.Join(root, "runnodes.sh"), "#!/bin/sh\n")
	// Nested directories are not candidates.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "partyA", "drivers"), 0o755))

	homes, err := Scan(root)
	require.NoError(t, err)

	var names []string
	for _, h := range homes {
		names = append(names, h.Name)
		assert.True(t, filepath.IsAbs(h.Dir))
	}
	assert.Equal(t, []string{"notary", "partyA", "partyB"}, names)
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		jarType JarType
		want    SkipReason
	}{
		{
			name:    "node jar with any config",
			files:   map[string]string{"corda.jar": "", "node.conf": "myLegalName=\"O=Notary\"\n"},
			jarType: NodeJar,
			want:    NotSkipped,
		},
		{
			name:    "node jar without config",
			files:   map[string]string{"corda.jar": ""},
			jarType: NodeJar,
			want:    ConfigMismatch,
		},
		{
			name:    "missing node jar",
			files:   map[string]string{"node.conf": ""},
			jarType: NodeJar,
			want:    ArtifactMissing,
		},
		{
			name:    "webserver with marker",
			files:   map[string]string{"corda-webserver.jar": "", "node.conf": "p2pAddress=\"localhost:10002\"\nwebAddress=\"localhost:10004\"\n"},
			jarType: WebServerJar,
			want:    NotSkipped,
		},
		{
			name:    "webserver without marker",
			files:   map[string]string{"corda-webserver.jar": "", "node.conf": "p2pAddress=\"localhost:10002\"\n"},
			jarType: WebServerJar,
			want:    ConfigMismatch,
		},
		{
			name:    "marker without webserver jar",
			files:   map[string]string{"corda.jar": "", "node.conf": "webAddress=\"localhost:10004\"\n"},
			jarType: WebServerJar,
			want:    ArtifactMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}
			home, err := NewHome(dir)
			require.NoError(t, err)

			assert.Equal(t, tt.want, Check(home, tt.jarType))
			assert.Equal(t, tt.want == NotSkipped, Matches(home, tt.jarType))
		})
	}
}

func TestJarDirectoryIsNotAnArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "corda.jar"), 0o755))
	writeFile(t, filepath.Join(dir, ConfigFileName), "")

	home, err := NewHome(dir)
	require.NoError(t, err)
	assert.Equal(t, ArtifactMissing, Check(home, NodeJar))
}

func TestConfigLinesAreCached(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, ConfigFileName)
	writeFile(t, confPath, "a\nwebAddress=x\n")

	home, err := NewHome(dir)
	require.NoError(t, err)

	lines, found := home.ConfigLines()
	require.True(t, found)
	assert.Equal(t, []string{"a", "webAddress=x"}, lines)

	require.NoError(t, os.Remove(confPath))
	lines, found = home.ConfigLines()
	assert.True(t, found)
	assert.Len(t, lines, 2)
}

func TestJarTypeOrder(t *testing.T) {
	require.Len(t, JarTypes, 2)
	assert.Equal(t, Primary, JarTypes[0].Variant)
	assert.Equal(t, Auxiliary, JarTypes[1].Variant)
}
