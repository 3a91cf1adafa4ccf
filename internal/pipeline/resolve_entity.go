package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/slatefx/slate/internal/platform"
	"github.com/slatefx/slate/internal/tracking"
)

// configurationFields are the fields requested on pipeline
// configuration entities during resolution.
var configurationFields = []string{"mac_path", "windows_path", "linux_path", "code"}

// pathFieldFor returns the configuration-entity field holding the
// registered path for the given platform.
func pathFieldFor(p platform.Platform) string {
	switch p {
	case platform.MacOS:
		return "mac_path"
	case platform.Windows:
		return "windows_path"
	default:
		return "linux_path"
	}
}

// FromEntity resolves the pipeline configuration that applies to a
// tracking-service entity and returns a handle rooted at it.
//
// Invoked generically (no active configuration identity in env), the
// project's primary configuration wins. Invoked from a specific
// configuration's entry point, that configuration is trusted and only
// verified to belong to the entity's project, avoiding the remote
// authorization query.
func FromEntity(ctx context.Context, svc tracking.Service, env Environment, entityType string, entityID int) (*Handle, error) {
	p, err := currentPlatform()
	if err != nil {
		return nil, err
	}
	return fromEntity(ctx, svc, env, p, entityType, entityID)
}

func fromEntity(ctx context.Context, svc tracking.Service, env Environment, p platform.Platform, entityType string, entityID int) (*Handle, error) {
	entity := fmt.Sprintf("%s %d", entityType, entityID)

	rec, err := svc.FindOne(ctx, entityType,
		[]tracking.Filter{{Field: "id", Op: "is", Value: entityID}},
		[]string{"project"})
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", entity, err)
	}
	if rec == nil {
		return nil, newError(ErrCodeEntityNotFound,
			"cannot resolve a pipeline configuration from %s: no such entity in the tracking service",
			entity).withEntity(entity)
	}

	var project tracking.EntityRef
	if entityType == ProjectEntityType {
		project = tracking.EntityRef{Type: ProjectEntityType, ID: entityID}
	} else {
		ref, ok := rec.RefField("project")
		if !ok {
			return nil, newError(ErrCodeEntityNotLinked,
				"cannot resolve a pipeline configuration from %s: the entity is not linked to a project",
				entity).withEntity(entity)
		}
		project = ref
	}

	configs, err := svc.Find(ctx, ConfigurationEntityType,
		[]tracking.Filter{{Field: "project", Op: "is", Value: project}},
		configurationFields)
	if err != nil {
		return nil, fmt.Errorf("querying pipeline configurations for project %q: %w", project.Name, err)
	}
	if len(configs) == 0 {
		return nil, newError(ErrCodeNoConfigurationsForProject,
			"cannot resolve a pipeline configuration from %s: its project %q has no pipeline configurations registered",
			entity, project.Name).withEntity(entity)
	}

	pathField := pathFieldFor(p)

	if env.ActiveConfigPath == "" {
		// Generic invocation: the project's primary configuration wins.
		return resolvePrimary(configs, project, p, pathField, env)
	}
	return resolveActive(configs, env, p, pathField, entity, project)
}

// resolvePrimary selects the configuration entity carrying the
// reserved primary name and validates its path for the current OS.
func resolvePrimary(configs []tracking.Record, project tracking.EntityRef, p platform.Platform, pathField string, env Environment) (*Handle, error) {
	var primary tracking.Record
	for _, c := range configs {
		if c.StringField("code") == PrimaryConfigurationName {
			primary = c
			break
		}
	}
	if primary == nil {
		return nil, newError(ErrCodeNoPrimaryConfiguration,
			"project %q has no default pipeline configuration: one named %q is required",
			project.Name, PrimaryConfigurationName)
	}

	path := primary.StringField(pathField)
	if path == "" {
		return nil, newError(ErrCodePlatformPathMissing,
			"the %q configuration of project %q has no path registered for %s",
			PrimaryConfigurationName, project.Name, p)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, newError(ErrCodePathNotFound,
			"the %q configuration of project %q is registered at %q, but that path cannot be found",
			PrimaryConfigurationName, project.Name, path).withPath(path)
	}

	return newHandle(path, p, env)
}

// resolveActive verifies the active configuration identity against the
// project's configuration entities. The environment path may be a
// symlink or drive mapping, so it is first resolved to its registered
// location, and the match is made against registered paths. The
// canonical recorded path wins, not the environment value.
func resolveActive(configs []tracking.Record, env Environment, p platform.Platform, pathField, entity string, project tracking.EntityRef) (*Handle, error) {
	active := platform.CleanStoredPath(env.ActiveConfigPath, p)

	registered, err := LoadRegisteredLocation(active, p)
	if err != nil {
		return nil, err
	}
	if registered == "" {
		return nil, newError(ErrCodeUnregisteredLocation,
			"the configuration at %q has not been registered for %s", active, p).withPath(active)
	}

	want := platform.NormalizeForCompare(registered, p)
	for _, c := range configs {
		path := c.StringField(pathField)
		if path != "" && platform.NormalizeForCompare(path, p) == want {
			return newHandle(path, p, env)
		}
	}

	return nil, newError(ErrCodeConfigurationNotInProject,
		"cannot resolve %s from the configuration at %q: that configuration is not associated with project %q",
		entity, active, project.Name).withPath(active).withEntity(entity)
}
