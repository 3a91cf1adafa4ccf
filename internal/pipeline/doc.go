// Package pipeline resolves, validates and exposes the filesystem
// locations of a studio pipeline configuration.
//
// A pipeline configuration is a directory tree holding one project's
// environment, app and hook configuration plus a small set of YAML
// metadata files. This package answers two questions:
//
//  1. WHICH configuration applies? FromEntity resolves via the
//     production-tracking service given an entity reference; FromPath
//     resolves from an arbitrary filesystem path by walking up to a
//     back-mapping file and disambiguating the candidates it lists.
//  2. WHERE is everything? The resolved Handle derives every path the
//     surrounding tool needs (data roots per storage, cache locations,
//     hooks, schema, install root, environment definitions) from the
//     configuration root plus its metadata files.
//
// RESOLUTION RULES:
//
// Both resolvers honor the "active configuration identity": when the
// process was launched from a specific configuration's entry point, an
// environment variable carries that configuration's path, and
// resolution only verifies consistency instead of querying the remote
// service for authorization data. The variable is read once at the
// process boundary (Environment / EnvironmentFromOS) and passed down
// explicitly; nothing in this package touches the process environment.
//
// Every failure is a typed *Error carrying a Code from the closed
// taxonomy in errors.go and a diagnostic naming the offending path or
// entity. Failures are terminal for the resolution attempt; nothing is
// retried and no partial result is ever returned.
//
// All operations re-read their backing files on every call. The files
// are tiny and resolutions are rare, so there is no cache to go stale.
package pipeline
