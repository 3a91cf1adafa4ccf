package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/slatefx/slate/internal/platform"
)

// Handle is a resolved pipeline configuration. It exposes every
// derived filesystem location the surrounding tool needs. Construct it
// through FromEntity or FromPath, never directly: the resolvers are
// what guarantee the root is the right configuration for the caller's
// context.
//
// A handle owns its loaded metadata; handles for different roots share
// nothing.
type Handle struct {
	root     string
	platform platform.Platform
	env      Environment

	projectName        string
	roots              map[string]StorageRoot
	registeredLocation string
}

// newHandle loads and validates a configuration rooted at root. The
// version check runs first: a configuration carrying a newer local
// core must be refused before anything else trusts its metadata.
func newHandle(root string, p platform.Platform, env Environment) (*Handle, error) {
	if err := checkCoreVersion(root); err != nil {
		return nil, err
	}

	roots, err := LoadStorageRoots(root)
	if err != nil {
		return nil, err
	}

	meta, err := LoadConfigMetadata(root)
	if err != nil {
		return nil, err
	}

	registered, err := LoadRegisteredLocation(root, p)
	if err != nil {
		return nil, err
	}

	return &Handle{
		root:               root,
		platform:           p,
		env:                env,
		projectName:        meta.ProjectName,
		roots:              roots,
		registeredLocation: registered,
	}, nil
}

// Path returns the configuration root.
func (h *Handle) Path() string {
	return h.root
}

// ProjectName returns the project this configuration belongs to.
func (h *Handle) ProjectName() string {
	return h.projectName
}

// RegisteredLocation returns the path registered for this
// configuration in the tracking service for the current OS, "" when
// unregistered. With symlinks or drive mappings in play this may
// differ from Path.
func (h *Handle) RegisteredLocation() string {
	return h.registeredLocation
}

// DataRoots returns each storage's project data root for the current
// OS, keyed by storage name: the storage base path joined with the
// project name. Storages not configured for the current OS map to "".
//
// Stored base paths may have been written on another OS, so separators
// are converted to the current platform's before joining.
func (h *Handle) DataRoots() map[string]string {
	sep := h.platform.Separator()
	out := make(map[string]string, len(h.roots))
	for name, r := range h.roots {
		base := r.PathFor(h.platform)
		if base == "" {
			out[name] = ""
			continue
		}
		base = platform.ToNativeSeparators(base, h.platform)
		base = platform.TrimTrailingSeparator(base, h.platform)
		out[name] = base + sep + h.projectName
	}
	return out
}

// PrimaryDataRoot returns the project data root of the primary
// storage, "" when the primary storage is not configured for the
// current OS.
func (h *Handle) PrimaryDataRoot() string {
	return h.DataRoots()[PrimaryStorageName]
}

// PathCacheLocation returns the location of the project's path cache
// database, which lives under the primary data root so every
// configuration of the project shares it.
func (h *Handle) PathCacheLocation() (string, error) {
	primary := h.PrimaryDataRoot()
	if primary == "" {
		return "", newError(ErrCodePlatformPathMissing,
			"configuration %q has no primary storage path for %s", h.root, h.platform).withPath(h.root)
	}
	sep := h.platform.Separator()
	return primary + sep + dataDirName + sep + "cache" + sep + cacheDBFileName, nil
}

// CacheLocation returns the configuration-centric cache directory.
func (h *Handle) CacheLocation() string {
	return filepath.Join(h.root, "cache")
}

// ConfigLocation returns the configuration's config directory.
func (h *Handle) ConfigLocation() string {
	return filepath.Join(h.root, "config")
}

// HooksLocation returns the project hooks directory.
func (h *Handle) HooksLocation() string {
	return filepath.Join(h.root, "config", "hooks")
}

// CoreHooksLocation returns the core hooks directory.
func (h *Handle) CoreHooksLocation() string {
	return filepath.Join(h.root, "config", "core", "hooks")
}

// SchemaLocation returns the folder-schema directory.
func (h *Handle) SchemaLocation() string {
	return filepath.Join(h.root, "config", "core", "schema")
}

// InstallRoot returns the location where the configuration caches
// engines, apps and core code. The conventional location is the
// install directory inside the configuration root; when that does not
// exist (symlinked or shared installs) the environment override is
// used instead.
func (h *Handle) InstallRoot() (string, error) {
	install := filepath.Join(h.root, "install")
	if _, err := os.Stat(install); err == nil {
		return install, nil
	}
	if h.env.InstallRootOverride != "" {
		return h.env.InstallRootOverride, nil
	}
	return "", newError(ErrCodeInstallRootUnresolvable,
		"cannot resolve the install location for configuration %q: %q does not exist and %s is not set",
		h.root, install, EnvInstallLocation).withPath(h.root)
}

// AppsLocation returns the directory apps are cached in.
func (h *Handle) AppsLocation() (string, error) {
	return h.installSubdir("apps")
}

// EnginesLocation returns the directory engines are cached in.
func (h *Handle) EnginesLocation() (string, error) {
	return h.installSubdir("engines")
}

// FrameworksLocation returns the directory frameworks are cached in.
func (h *Handle) FrameworksLocation() (string, error) {
	return h.installSubdir("frameworks")
}

func (h *Handle) installSubdir(name string) (string, error) {
	install, err := h.InstallRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(install, name), nil
}

// Environments returns the names of all environments defined in this
// configuration, sorted: one per yml file in the environment directory,
// named by the file without its extension.
func (h *Handle) Environments() []string {
	files, _ := filepath.Glob(filepath.Join(h.root, "config", "env", "*.yml"))
	names := make([]string, 0, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		names = append(names, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	sort.Strings(names)
	return names
}

// EnvironmentDefinition returns the definition file of a named
// environment. The environment loader itself lives elsewhere; this
// only locates and verifies the file.
func (h *Handle) EnvironmentDefinition(name string) (string, error) {
	file := filepath.Join(h.root, "config", "env", name+".yml")
	if _, err := os.Stat(file); err != nil {
		return "", newError(ErrCodePathNotFound,
			"cannot load environment %q: definition file %q does not exist", name, file).withPath(file)
	}
	return file, nil
}
