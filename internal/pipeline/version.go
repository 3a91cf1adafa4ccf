package pipeline

import (
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// CoreVersion is the version of the currently running core code.
const CoreVersion = "v0.19.2"

// localCoreVersion returns the version of the core installed inside
// the configuration, "" when no local core exists or its manifest is
// unreadable. Best effort: an absent or broken manifest just means
// there is nothing to compare against.
func localCoreVersion(root string) string {
	data, err := os.ReadFile(coreInfoFile(root))
	if err != nil {
		return ""
	}

	var info struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &info); err != nil {
		return ""
	}
	return info.Version
}

// isVersionNewer reports whether v is strictly newer than than.
// The tokens "head" and "master" denote development builds and compare
// as newest. Unparsable versions compare as not newer.
func isVersionNewer(v, than string) bool {
	if isDevVersion(than) {
		return false
	}
	if isDevVersion(v) {
		return true
	}

	sv, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	st, err := semver.NewVersion(than)
	if err != nil {
		return false
	}
	return sv.GreaterThan(st)
}

func isDevVersion(v string) bool {
	switch strings.ToLower(v) {
	case "head", "master":
		return true
	}
	return false
}

// checkCoreVersion verifies that a core installed inside the
// configuration is not newer than the running core. Running an older
// core against a newer local install is the one combination that must
// be refused.
func checkCoreVersion(root string) error {
	local := localCoreVersion(root)
	if local == "" {
		return nil
	}
	if isVersionNewer(local, CoreVersion) {
		return newError(ErrCodeVersionMismatch,
			"configuration %q has a locally installed core (%s) newer than the running core (%s); "+
				"run the configuration's own entry point instead", root, local, CoreVersion).withPath(root)
	}
	return nil
}
