package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/slatefx/slate/internal/platform"
)

// BackMapping is one configuration's registered path on each OS, as
// stored in the studio-wide back-mapping file under a storage root.
// The yaml keys are the legacy platform names the file format was born
// with.
type BackMapping struct {
	MacPath     string `yaml:"darwin"`
	WindowsPath string `yaml:"win32"`
	LinuxPath   string `yaml:"linux2"`
}

// PathFor returns the mapping's path for the given platform, "" when
// absent.
func (m BackMapping) PathFor(p platform.Platform) string {
	switch p {
	case platform.MacOS:
		return m.MacPath
	case platform.Windows:
		return m.WindowsPath
	default:
		return m.LinuxPath
	}
}

// BackMappingStore reads and appends the mapping from a storage root
// back to the pipeline configurations that reference it.
type BackMappingStore struct {
	storageRoot string
}

// NewBackMappingStore returns a store for the back-mapping file under
// the given storage root.
func NewBackMappingStore(storageRoot string) *BackMappingStore {
	return &BackMappingStore{storageRoot: storageRoot}
}

// File returns the path of the backing file.
func (s *BackMappingStore) File() string {
	return backMappingFile(s.storageRoot)
}

// Append records a configuration's per-OS paths in the back-mapping
// file. A triple structurally identical to an existing one is not
// appended again. The file is replaced atomically: a failed write
// never leaves a truncated file behind.
func (s *BackMappingStore) Append(macPath, windowsPath, linuxPath string) error {
	mappings, err := s.List()
	if err != nil {
		return err
	}

	entry := BackMapping{MacPath: macPath, WindowsPath: windowsPath, LinuxPath: linuxPath}
	for _, m := range mappings {
		if m == entry {
			return nil
		}
	}
	mappings = append(mappings, entry)

	return s.write(mappings)
}

// List returns the stored mappings in file order. A missing file is an
// empty sequence, not an error.
func (s *BackMappingStore) List() ([]BackMapping, error) {
	return loadBackMappings(s.File())
}

// PathsFor projects the stored mappings down to the paths for the
// given platform, in file order. Mappings with no path for the
// platform yield "" so positions stay aligned with List; callers
// filter as needed.
func (s *BackMappingStore) PathsFor(p platform.Platform) ([]string, error) {
	mappings, err := s.List()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(mappings))
	for i, m := range mappings {
		paths[i] = m.PathFor(p)
	}
	return paths, nil
}

func (s *BackMappingStore) write(mappings []BackMapping) error {
	file := s.File()

	data, err := yaml.Marshal(mappings)
	if err != nil {
		return newError(ErrCodeWriteFailure,
			"cannot encode back-mapping file %q: %v", file, err).withPath(file).withCause(err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o775); err != nil {
		return newError(ErrCodeWriteFailure,
			"cannot create back-mapping directory for %q: %v", file, err).withPath(file).withCause(err)
	}

	// Write-replace: land the bytes in a unique sibling first, then
	// rename over the real file.
	tmp := filepath.Join(filepath.Dir(file), fmt.Sprintf(".%s.%s.tmp", backMappingFileName, uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o664); err != nil {
		return newError(ErrCodeWriteFailure,
			"cannot write back-mapping file %q: %v", file, err).withPath(file).withCause(err)
	}
	if err := os.Rename(tmp, file); err != nil {
		os.Remove(tmp)
		return newError(ErrCodeWriteFailure,
			"cannot replace back-mapping file %q: %v", file, err).withPath(file).withCause(err)
	}
	return nil
}

// loadBackMappings reads a back-mapping file directly by path. The
// resolver uses this after locating the file by walking ancestors.
func loadBackMappings(file string) ([]BackMapping, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, newError(ErrCodeCorruptConfig,
			"cannot read back-mapping file %q: %v", file, err).withPath(file).withCause(err)
	}

	var mappings []BackMapping
	if err := yaml.Unmarshal(data, &mappings); err != nil {
		return nil, newError(ErrCodeCorruptConfig,
			"back-mapping file %q is corrupt: %v", file, err).withPath(file).withCause(err)
	}
	return mappings, nil
}
