// Package platform models the three operating systems a pipeline
// configuration can be registered on, and the path normalization rules
// shared by every store and resolver.
//
// On-disk metadata predates this tool and uses legacy key names
// ("darwin", "win32", "linux2") in the back-mapping files and
// ("Darwin", "Windows", "Linux") in the registered-location files.
// Those spellings are part of the file format and must not change.
package platform

import (
	"fmt"
	"runtime"
)

// Platform identifies one of the supported operating systems.
type Platform int

const (
	// MacOS is Apple macOS (legacy key "darwin").
	MacOS Platform = iota
	// Windows is Microsoft Windows (legacy key "win32").
	Windows
	// Linux is Linux (legacy key "linux2").
	Linux
)

// Current returns the platform the process is running on.
// Returns an error for any GOOS outside the supported three.
func Current() (Platform, error) {
	switch runtime.GOOS {
	case "darwin":
		return MacOS, nil
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	default:
		return 0, fmt.Errorf("unsupported platform %q", runtime.GOOS)
	}
}

// String returns the human-readable platform name.
func (p Platform) String() string {
	switch p {
	case MacOS:
		return "macOS"
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// LegacyKey returns the key used for this platform in back-mapping
// files ("darwin", "win32", "linux2").
func (p Platform) LegacyKey() string {
	switch p {
	case MacOS:
		return "darwin"
	case Windows:
		return "win32"
	default:
		return "linux2"
	}
}

// LocationKey returns the key used for this platform in
// registered-location files ("Darwin", "Windows", "Linux").
func (p Platform) LocationKey() string {
	switch p {
	case MacOS:
		return "Darwin"
	case Windows:
		return "Windows"
	default:
		return "Linux"
	}
}

// Separator returns the path separator conventionally used on this
// platform in stored metadata paths.
func (p Platform) Separator() string {
	if p == Windows {
		return `\`
	}
	return "/"
}
