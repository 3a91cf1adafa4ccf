package pipeline

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigMetadata holds the scalar metadata of a configuration.
type ConfigMetadata struct {
	ProjectName string `yaml:"project_name"`
}

// LoadConfigMetadata reads config/core/pipeline_configuration.yml
// under the given configuration root.
func LoadConfigMetadata(root string) (ConfigMetadata, error) {
	file := metadataFile(root)

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ConfigMetadata{}, newError(ErrCodePathNotFound,
				"configuration metadata file %q does not exist", file).withPath(file).withCause(err)
		}
		return ConfigMetadata{}, newError(ErrCodeCorruptConfig,
			"cannot read configuration metadata file %q: %v", file, err).withPath(file).withCause(err)
	}

	var meta ConfigMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return ConfigMetadata{}, newError(ErrCodeCorruptConfig,
			"configuration metadata file %q is corrupt: %v", file, err).withPath(file).withCause(err)
	}

	if meta.ProjectName == "" {
		return ConfigMetadata{}, newError(ErrCodeMissingField,
			"project_name not defined in configuration metadata file %q", file).withPath(file)
	}

	return meta, nil
}
