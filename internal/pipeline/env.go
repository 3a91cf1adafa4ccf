package pipeline

import "os"

// Environment variable names read at the process boundary.
const (
	// EnvActiveConfig carries the path of the configuration the tool was
	// launched from, when it was launched from a specific configuration's
	// entry point rather than the generic studio command.
	EnvActiveConfig = "SLATE_CURRENT_CONFIG"

	// EnvInstallLocation overrides the install-root location for setups
	// where the conventional relative location does not exist (symlinked
	// or relocated installs).
	EnvInstallLocation = "SLATE_INSTALL_LOCATION"
)

// Environment is the explicit process-environment input to the
// resolvers. Read it once at the process boundary with
// EnvironmentFromOS and pass it down; the resolver core never touches
// the process environment itself.
type Environment struct {
	// ActiveConfigPath is the active configuration identity, "" when the
	// tool was invoked generically.
	ActiveConfigPath string

	// InstallRootOverride is the install-root override, "" when unset.
	InstallRootOverride string
}

// EnvironmentFromOS captures the resolver inputs from the process
// environment.
func EnvironmentFromOS() Environment {
	return Environment{
		ActiveConfigPath:    os.Getenv(EnvActiveConfig),
		InstallRootOverride: os.Getenv(EnvInstallLocation),
	}
}
