package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile writes content, creating parent directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o775))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o664))
}

// configRootOptions customizes makeConfigRoot fixtures.
type configRootOptions struct {
	rootsYML    string
	metadataYML string
	locationYML string
}

// makeConfigRoot lays out a minimal valid configuration root under
// dir. Empty option fields get sensible defaults tied to dir.
func makeConfigRoot(t *testing.T, dir string, opts configRootOptions) {
	t.Helper()

	if opts.rootsYML == "" {
		opts.rootsYML = "primary:\n  mac_path: /studio\n  linux_path: /studio\n  windows_path: 'P:\\studio'\n"
	}
	if opts.metadataYML == "" {
		opts.metadataYML = "project_name: demo\n"
	}
	if opts.locationYML == "" {
		opts.locationYML = "Linux: " + dir + "\nDarwin: " + dir + "\nWindows: null\n"
	}

	writeFile(t, rootsFile(dir), opts.rootsYML)
	writeFile(t, metadataFile(dir), opts.metadataYML)
	writeFile(t, locationFile(dir), opts.locationYML)
}

// makeProjectTree lays out a storage root holding project data and a
// back-mapping file pointing at the given configuration roots.
func makeProjectTree(t *testing.T, storageRoot string, configRoots ...string) string {
	t.Helper()

	store := NewBackMappingStore(storageRoot)
	for _, root := range configRoots {
		require.NoError(t, store.Append(root, "", root))
	}
	return store.File()
}
