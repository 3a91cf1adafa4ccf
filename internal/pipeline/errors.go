package pipeline

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes resolution and store failures.
type ErrorCode string

const (
	// ErrCodeCorruptConfig indicates a backing file that cannot be parsed.
	ErrCodeCorruptConfig ErrorCode = "CORRUPT_CONFIG"

	// ErrCodeMissingField indicates a parsable file lacking a required field.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeMissingPrimaryStorage indicates a roots file with no primary storage.
	ErrCodeMissingPrimaryStorage ErrorCode = "MISSING_PRIMARY_STORAGE"

	// ErrCodeUnsupportedPlatform indicates an OS outside the supported three.
	ErrCodeUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// ErrCodeEntityNotFound indicates the tracking service has no such entity.
	ErrCodeEntityNotFound ErrorCode = "ENTITY_NOT_FOUND"

	// ErrCodeEntityNotLinked indicates an entity with no project relation.
	ErrCodeEntityNotLinked ErrorCode = "ENTITY_NOT_LINKED"

	// ErrCodeNoConfigurationsForProject indicates a project with no
	// registered pipeline configurations.
	ErrCodeNoConfigurationsForProject ErrorCode = "NO_CONFIGURATIONS_FOR_PROJECT"

	// ErrCodeNoPrimaryConfiguration indicates no configuration entity
	// carries the reserved primary name.
	ErrCodeNoPrimaryConfiguration ErrorCode = "NO_PRIMARY_CONFIGURATION"

	// ErrCodePlatformPathMissing indicates the selected configuration has
	// no path recorded for the current OS.
	ErrCodePlatformPathMissing ErrorCode = "PLATFORM_PATH_MISSING"

	// ErrCodePathNotFound indicates a recorded or supplied path that does
	// not exist on disk.
	ErrCodePathNotFound ErrorCode = "PATH_NOT_FOUND"

	// ErrCodeUnregisteredLocation indicates the active configuration has
	// no registered location for the current OS.
	ErrCodeUnregisteredLocation ErrorCode = "UNREGISTERED_LOCATION"

	// ErrCodeConfigurationNotInProject indicates the active configuration
	// belongs to a different project than the requested entity.
	ErrCodeConfigurationNotInProject ErrorCode = "CONFIGURATION_NOT_IN_PROJECT"

	// ErrCodeConfigurationMismatch indicates the active configuration is
	// not associated with the input path.
	ErrCodeConfigurationMismatch ErrorCode = "CONFIGURATION_MISMATCH"

	// ErrCodeNoAccessibleConfiguration indicates no candidate
	// configuration is open to the current user.
	ErrCodeNoAccessibleConfiguration ErrorCode = "NO_ACCESSIBLE_CONFIGURATION"

	// ErrCodeAmbiguousConfiguration indicates more than one candidate
	// configuration is eligible.
	ErrCodeAmbiguousConfiguration ErrorCode = "AMBIGUOUS_CONFIGURATION"

	// ErrCodeVersionMismatch indicates the locally installed core is newer
	// than the running core.
	ErrCodeVersionMismatch ErrorCode = "VERSION_MISMATCH"

	// ErrCodeInstallRootUnresolvable indicates neither the conventional
	// install location nor the override resolve.
	ErrCodeInstallRootUnresolvable ErrorCode = "INSTALL_ROOT_UNRESOLVABLE"

	// ErrCodeWriteFailure indicates a back-mapping write that could not
	// complete.
	ErrCodeWriteFailure ErrorCode = "WRITE_FAILURE"

	// ErrCodeInvalidInput indicates a resolution input that is not
	// path-like.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeNotInProject indicates an ancestor walk that reached the
	// filesystem root without finding a back-mapping file.
	ErrCodeNotInProject ErrorCode = "NOT_IN_PROJECT"
)

// Error is the typed failure surfaced by every store and resolver in
// this package. Path and Entity identify the offending input when one
// exists; Message is the full human-readable diagnostic.
type Error struct {
	Code    ErrorCode
	Message string

	// Path is the file or configuration path the failure concerns.
	Path string

	// Entity names the tracking-service entity the failure concerns,
	// e.g. "Shot 42" or "project 'demo'".
	Entity string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode of err, unwrapping as needed. Returns
// "" for nil or untyped errors.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) withPath(path string) *Error {
	e.Path = path
	return e
}

func (e *Error) withEntity(entity string) *Error {
	e.Entity = entity
	return e
}

func (e *Error) withCause(err error) *Error {
	e.Err = err
	return e
}
