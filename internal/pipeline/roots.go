package pipeline

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slatefx/slate/internal/platform"
)

// StorageRoot is one named storage's base path on each OS. Empty
// fields mean the storage is not configured for that OS. Paths are
// normalized on load to carry no trailing separator.
type StorageRoot struct {
	MacPath     string `yaml:"mac_path"`
	LinuxPath   string `yaml:"linux_path"`
	WindowsPath string `yaml:"windows_path"`
}

// PathFor returns the storage's base path for the given platform, ""
// when not configured.
func (s StorageRoot) PathFor(p platform.Platform) string {
	switch p {
	case platform.MacOS:
		return s.MacPath
	case platform.Windows:
		return s.WindowsPath
	default:
		return s.LinuxPath
	}
}

// LoadStorageRoots reads and validates config/core/roots.yml under the
// given configuration root. Every returned path has had exactly one
// trailing separator stripped if present.
func LoadStorageRoots(root string) (map[string]StorageRoot, error) {
	file := rootsFile(root)

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(ErrCodePathNotFound,
				"storage roots file %q does not exist", file).withPath(file).withCause(err)
		}
		return nil, newError(ErrCodeCorruptConfig,
			"cannot read storage roots file %q: %v", file, err).withPath(file).withCause(err)
	}

	var roots map[string]StorageRoot
	if err := yaml.Unmarshal(data, &roots); err != nil {
		return nil, newError(ErrCodeCorruptConfig,
			"storage roots file %q is corrupt: %v", file, err).withPath(file).withCause(err)
	}

	if _, ok := roots[PrimaryStorageName]; !ok {
		return nil, newError(ErrCodeMissingPrimaryStorage,
			"storage roots file %q does not define the %q storage", file, PrimaryStorageName).withPath(file)
	}

	for name, r := range roots {
		r.MacPath = platform.TrimTrailingSeparator(r.MacPath, platform.MacOS)
		r.LinuxPath = platform.TrimTrailingSeparator(r.LinuxPath, platform.Linux)
		r.WindowsPath = platform.TrimTrailingSeparator(r.WindowsPath, platform.Windows)
		roots[name] = r
	}

	return roots, nil
}
