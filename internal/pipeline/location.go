package pipeline

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slatefx/slate/internal/platform"
)

// LoadRegisteredLocation reads config/core/install_location.yml under
// the given configuration root and returns the path registered in the
// tracking service for the given platform.
//
// The registered path is the one recorded in the tracking service and
// in the back-mapping files; with drive-letter mappings or symlinks in
// play it may differ from the path the configuration is actually being
// accessed through.
//
// Returns "" (not an error) when the file has no entry for the
// platform: the configuration is unregistered there, which is distinct
// from the file being missing.
func LoadRegisteredLocation(root string, p platform.Platform) (string, error) {
	file := locationFile(root)

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", newError(ErrCodePathNotFound,
				"registered location file %q does not exist", file).withPath(file).withCause(err)
		}
		return "", newError(ErrCodeCorruptConfig,
			"cannot read registered location file %q: %v", file, err).withPath(file).withCause(err)
	}

	var locations map[string]string
	if err := yaml.Unmarshal(data, &locations); err != nil {
		return "", newError(ErrCodeCorruptConfig,
			"registered location file %q is corrupt: %v", file, err).withPath(file).withCause(err)
	}

	return locations[p.LocationKey()], nil
}

// currentPlatform detects the running platform, surfacing the typed
// UnsupportedPlatform failure for any OS outside the supported three.
func currentPlatform() (platform.Platform, error) {
	p, err := platform.Current()
	if err != nil {
		return 0, newError(ErrCodeUnsupportedPlatform, "%v", err).withCause(err)
	}
	return p, nil
}
