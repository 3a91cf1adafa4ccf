package platform

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanStoredPath strips the stray characters that tend to survive in
// paths stored in tracking-service fields and environment variables:
// exactly one trailing space, then exactly one trailing separator for
// the given platform. It never touches anything else, so "/" stays "/".
func CleanStoredPath(path string, p Platform) string {
	path = strings.TrimSuffix(path, " ")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, p.Separator())
	}
	return path
}

// TrimTrailingSeparator strips exactly one trailing separator for the
// given platform. Used when loading storage-root metadata, where paths
// are stored per-OS and may carry a trailing slash or backslash.
func TrimTrailingSeparator(path string, p Platform) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, p.Separator())
	}
	return path
}

// ToNativeSeparators converts every slash and backslash in path to the
// separator of the given platform. Storage-root paths may have been
// written from a different OS, so slash direction is not uniform.
func ToNativeSeparators(path string, p Platform) string {
	sep := p.Separator()
	path = strings.ReplaceAll(path, `\`, sep)
	return strings.ReplaceAll(path, "/", sep)
}

// NormalizeForCompare returns the canonical form of a stored path used
// for equality checks during resolution: NFC-normalized (macOS file
// APIs can hand back decomposed unicode) and cleaned of trailing
// space/separator. The returned value is for comparison only; callers
// keep the original stored path once a match is found.
func NormalizeForCompare(path string, p Platform) string {
	return CleanStoredPath(norm.NFC.String(path), p)
}
