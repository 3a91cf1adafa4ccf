package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slatefx/slate/internal/platform"
)

func newTestHandle(t *testing.T, dir string, opts configRootOptions, env Environment) *Handle {
	t.Helper()
	makeConfigRoot(t, dir, opts)
	h, err := newHandle(dir, platform.Linux, env)
	require.NoError(t, err)
	return h
}

func TestHandle_DataRoots(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{
		rootsYML: `
primary:
  mac_path: /studio/
  linux_path: /studio
  windows_path: null
textures:
  mac_path: null
  linux_path: \textures\fast
  windows_path: 'T:\textures\fast'
`,
		metadataYML: "project_name: demo\n",
	}, Environment{})

	roots := h.DataRoots()
	require.Len(t, roots, 2)
	assert.Equal(t, "/studio/demo", roots["primary"])
	// Separators written on another OS are converted before joining.
	assert.Equal(t, "/textures/fast/demo", roots["textures"])
	assert.Equal(t, "/studio/demo", h.PrimaryDataRoot())
}

func TestHandle_DataRoots_UnconfiguredPlatform(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{
		rootsYML: "primary:\n  mac_path: /studio\n  linux_path: null\n  windows_path: null\n",
	}, Environment{})

	assert.Equal(t, map[string]string{"primary": ""}, h.DataRoots())
	assert.Equal(t, "", h.PrimaryDataRoot())

	_, err := h.PathCacheLocation()
	require.Error(t, err)
	assert.Equal(t, ErrCodePlatformPathMissing, CodeOf(err))
}

func TestHandle_PathCacheLocation(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{
		rootsYML: "primary:\n  linux_path: /studio\n",
	}, Environment{})

	loc, err := h.PathCacheLocation()
	require.NoError(t, err)
	assert.Equal(t, "/studio/demo/slate/cache/path_cache.db", loc)
}

func TestHandle_DerivedLocations(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{}, Environment{})

	assert.Equal(t, dir, h.Path())
	assert.Equal(t, "demo", h.ProjectName())
	assert.Equal(t, filepath.Join(dir, "cache"), h.CacheLocation())
	assert.Equal(t, filepath.Join(dir, "config"), h.ConfigLocation())
	assert.Equal(t, filepath.Join(dir, "config", "hooks"), h.HooksLocation())
	assert.Equal(t, filepath.Join(dir, "config", "core", "hooks"), h.CoreHooksLocation())
	assert.Equal(t, filepath.Join(dir, "config", "core", "schema"), h.SchemaLocation())
}

func TestHandle_RegisteredLocation(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{
		locationYML: "Linux: /mnt/studio/pc\n",
	}, Environment{})

	assert.Equal(t, "/mnt/studio/pc", h.RegisteredLocation())
}

func TestHandle_RegisteredLocation_Unregistered(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{
		locationYML: "Darwin: /Volumes/studio/pc\n",
	}, Environment{})

	assert.Equal(t, "", h.RegisteredLocation())
}

func TestHandle_InstallRoot_Conventional(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{}, Environment{})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "install"), 0o775))

	install, err := h.InstallRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "install"), install)

	apps, err := h.AppsLocation()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(install, "apps"), apps)

	engines, err := h.EnginesLocation()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(install, "engines"), engines)

	frameworks, err := h.FrameworksLocation()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(install, "frameworks"), frameworks)
}

func TestHandle_InstallRoot_Override(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{}, Environment{InstallRootOverride: "/opt/slate"})

	install, err := h.InstallRoot()
	require.NoError(t, err)
	assert.Equal(t, "/opt/slate", install)
}

func TestHandle_InstallRoot_Unresolvable(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{}, Environment{})

	_, err := h.InstallRoot()
	require.Error(t, err)
	assert.Equal(t, ErrCodeInstallRootUnresolvable, CodeOf(err))
	assert.Contains(t, err.Error(), EnvInstallLocation)
}

func TestHandle_Environments(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{}, Environment{})

	assert.Empty(t, h.Environments())

	writeFile(t, filepath.Join(dir, "config", "env", "shot_step.yml"), "{}\n")
	writeFile(t, filepath.Join(dir, "config", "env", "asset_step.yml"), "{}\n")
	writeFile(t, filepath.Join(dir, "config", "env", "README.txt"), "not an environment\n")

	assert.Equal(t, []string{"asset_step", "shot_step"}, h.Environments())
}

func TestHandle_EnvironmentDefinition(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandle(t, dir, configRootOptions{}, Environment{})
	writeFile(t, filepath.Join(dir, "config", "env", "shot_step.yml"), "{}\n")

	file, err := h.EnvironmentDefinition("shot_step")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config", "env", "shot_step.yml"), file)

	_, err = h.EnvironmentDefinition("missing")
	require.Error(t, err)
	assert.Equal(t, ErrCodePathNotFound, CodeOf(err))
}

func TestNewHandle_VersionMismatch(t *testing.T) {
	dir := t.TempDir()
	makeConfigRoot(t, dir, configRootOptions{})
	writeFile(t, coreInfoFile(dir), "version: v99.0.0\n")

	_, err := newHandle(dir, platform.Linux, Environment{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeVersionMismatch, CodeOf(err))
}

func TestNewHandle_PropagatesStoreFailures(t *testing.T) {
	dir := t.TempDir()
	makeConfigRoot(t, dir, configRootOptions{
		rootsYML: "textures:\n  linux_path: /textures\n",
	})

	_, err := newHandle(dir, platform.Linux, Environment{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMissingPrimaryStorage, CodeOf(err))
}
