package pipeline

import "path/filepath"

// Reserved names shared with the tracking service and the on-disk
// metadata format.
const (
	// PrimaryStorageName is the storage every roots file must define.
	PrimaryStorageName = "primary"

	// PrimaryConfigurationName is the code of a project's default
	// pipeline configuration in the tracking service.
	PrimaryConfigurationName = "Primary"

	// ConfigurationEntityType is the tracking-service entity type holding
	// pipeline configuration records.
	ConfigurationEntityType = "PipelineConfiguration"

	// ProjectEntityType is the tracking-service project entity type.
	ProjectEntityType = "Project"
)

// Conventional names inside a configuration root and a storage root.
const (
	dataDirName         = "slate"
	backMappingFileName = "slate_configurations.yml"
	cacheDBFileName     = "path_cache.db"
)

// rootsFile is the storage-roots metadata file of a configuration.
func rootsFile(root string) string {
	return filepath.Join(root, "config", "core", "roots.yml")
}

// metadataFile is the scalar-metadata file of a configuration. Its
// presence is also the marker identifying a directory as a
// configuration root.
func metadataFile(root string) string {
	return filepath.Join(root, "config", "core", "pipeline_configuration.yml")
}

// locationFile is the registered-location pointer file of a
// configuration.
func locationFile(root string) string {
	return filepath.Join(root, "config", "core", "install_location.yml")
}

// coreInfoFile is the optional version manifest of a locally installed
// core.
func coreInfoFile(root string) string {
	return filepath.Join(root, "install", "core", "info.yml")
}

// backMappingFile is the studio-wide back-mapping file under a storage
// root (or any directory being probed for one).
func backMappingFile(dir string) string {
	return filepath.Join(dir, dataDirName, "config", backMappingFileName)
}
