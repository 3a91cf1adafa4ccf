package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slatefx/slate/internal/pipeline"
)

// projectFixture is a minimal on-disk project: a storage root holding
// the project data tree, one pipeline configuration and the
// back-mapping file pointing back at it. Paths are written for both
// Linux and macOS so the tests pass on either.
type projectFixture struct {
	StorageRoot string
	ConfigRoot  string
	DataRoot    string
}

func newProjectFixture(t *testing.T) projectFixture {
	t.Helper()

	// Commands read the process environment; make sure stray
	// settings from the host cannot leak into the resolution.
	t.Setenv(pipeline.EnvActiveConfig, "")
	t.Setenv(pipeline.EnvInstallLocation, "")

	storage := t.TempDir()
	configRoot := filepath.Join(storage, "configs", "demo_primary")
	dataRoot := filepath.Join(storage, "demo")

	writeFixtureFile(t, filepath.Join(configRoot, "config", "core", "roots.yml"),
		"primary:\n  linux_path: "+storage+"\n  mac_path: "+storage+"\n  windows_path: null\n")
	writeFixtureFile(t, filepath.Join(configRoot, "config", "core", "pipeline_configuration.yml"),
		"project_name: demo\n")
	writeFixtureFile(t, filepath.Join(configRoot, "config", "core", "install_location.yml"),
		"Linux: "+configRoot+"\nDarwin: "+configRoot+"\nWindows: null\n")

	require.NoError(t, os.MkdirAll(filepath.Join(dataRoot, "sequences"), 0o775))

	store := pipeline.NewBackMappingStore(storage)
	require.NoError(t, store.Append(configRoot, "", configRoot))

	return projectFixture{StorageRoot: storage, ConfigRoot: configRoot, DataRoot: dataRoot}
}

func writeFixtureFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o775))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o664))
}
