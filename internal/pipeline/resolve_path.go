package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slatefx/slate/internal/platform"
	"github.com/slatefx/slate/internal/tracking"
)

// FromPath resolves the pipeline configuration that owns an arbitrary
// filesystem path and returns a handle rooted at it.
//
// A path directly inside a configuration root resolves immediately.
// Otherwise the ancestors of the path are walked up to a back-mapping
// file, whose entries become the candidate set. An active
// configuration identity in env short-circuits disambiguation; with
// several candidates and no identity, the tracking service's
// authorization data decides.
func FromPath(ctx context.Context, svc tracking.Service, env Environment, inputPath string) (*Handle, error) {
	p, err := currentPlatform()
	if err != nil {
		return nil, err
	}
	return fromPath(ctx, svc, env, p, inputPath)
}

func fromPath(ctx context.Context, svc tracking.Service, env Environment, p platform.Platform, inputPath string) (*Handle, error) {
	if strings.TrimSpace(inputPath) == "" {
		return nil, newError(ErrCodeInvalidInput,
			"cannot resolve a pipeline configuration from an empty path")
	}
	path, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, newError(ErrCodeInvalidInput,
			"cannot resolve a pipeline configuration from %q: %v", inputPath, err).withCause(err)
	}

	// Callers sometimes resolve a file that is about to be created. Fall
	// back to the parent directory before giving up.
	if _, err := os.Stat(path); err != nil {
		parent := filepath.Dir(path)
		if _, perr := os.Stat(parent); perr != nil {
			return nil, newError(ErrCodePathNotFound,
				"cannot resolve a pipeline configuration from %q: the path does not exist on disk",
				path).withPath(path)
		}
		path = parent
	}

	// The path may itself be a configuration root.
	if _, err := os.Stat(metadataFile(path)); err == nil {
		return newHandle(path, p, env)
	}

	mappingFile, err := findBackMappingFile(path)
	if err != nil {
		return nil, err
	}

	mappings, err := loadBackMappings(mappingFile)
	if err != nil {
		return nil, err
	}

	// Candidates: registered paths for this OS that exist on disk.
	var candidates []string
	for _, m := range mappings {
		c := m.PathFor(p)
		if c == "" {
			continue
		}
		if _, err := os.Stat(c); err == nil {
			candidates = append(candidates, c)
		}
	}

	if env.ActiveConfigPath != "" {
		return matchActiveCandidate(candidates, env, p, path)
	}

	switch len(candidates) {
	case 1:
		return newHandle(candidates[0], p, env)
	case 0:
		return nil, newError(ErrCodeNoConfigurationsForProject,
			"cannot resolve a pipeline configuration from %q: the back-mapping file %q lists no configuration that exists for %s",
			path, mappingFile, p).withPath(path)
	default:
		return disambiguate(ctx, svc, env, p, path, candidates)
	}
}

// findBackMappingFile walks the ancestors of path looking for the
// studio-wide back-mapping file.
func findBackMappingFile(path string) (string, error) {
	cur := path
	for {
		file := backMappingFile(cur)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", newError(ErrCodeNotInProject,
				"cannot resolve a pipeline configuration from %q: the path does not belong to a project",
				path).withPath(path)
		}
		cur = parent
	}
}

// matchActiveCandidate trusts the active configuration identity and
// only verifies it is one of the candidates for this path.
func matchActiveCandidate(candidates []string, env Environment, p platform.Platform, path string) (*Handle, error) {
	want := platform.NormalizeForCompare(env.ActiveConfigPath, p)
	for _, c := range candidates {
		if platform.NormalizeForCompare(c, p) == want {
			return newHandle(c, p, env)
		}
	}
	return nil, newError(ErrCodeConfigurationMismatch,
		"cannot resolve %q from the configuration at %q: that configuration is not associated with this path; "+
			"launch from one of the project's own configurations",
		path, env.ActiveConfigPath).withPath(path)
}

// disambiguate resolves among several existing candidates using the
// tracking service's authorization data: a configuration with no user
// list is open to all, otherwise the current user must be on it.
func disambiguate(ctx context.Context, svc tracking.Service, env Environment, p platform.Platform, path string, candidates []string) (*Handle, error) {
	pathField := pathFieldFor(p)

	configs, err := svc.Find(ctx, ConfigurationEntityType,
		[]tracking.Filter{{Field: pathField, Op: "in", Value: candidates}},
		[]string{"code", "users", "mac_path", "windows_path", "linux_path"})
	if err != nil {
		return nil, fmt.Errorf("querying pipeline configurations for %q: %w", path, err)
	}

	user, err := svc.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving the current tracking-service user: %w", err)
	}

	var eligible []tracking.Record
	for _, c := range configs {
		users := c.UsersField("users")
		if len(users) == 0 {
			eligible = append(eligible, c)
			continue
		}
		if user == nil {
			continue
		}
		for _, u := range users {
			if u.ID == user.ID {
				eligible = append(eligible, c)
				break
			}
		}
	}

	switch len(eligible) {
	case 0:
		return nil, newError(ErrCodeNoAccessibleConfiguration,
			"cannot resolve a pipeline configuration from %q: none of the project's configurations is accessible to the current user",
			path).withPath(path)
	case 1:
		return newHandle(eligible[0].StringField(pathField), p, env)
	default:
		names := make([]string, len(eligible))
		paths := make([]string, len(eligible))
		for i, c := range eligible {
			names[i] = c.StringField("code")
			paths[i] = c.StringField(pathField)
		}
		return nil, newError(ErrCodeAmbiguousConfiguration,
			"cannot resolve a pipeline configuration from %q: the configurations %s all match; "+
				"run the command directly from one of %s",
			path, strings.Join(names, ", "), strings.Join(paths, ", ")).withPath(path)
	}
}
