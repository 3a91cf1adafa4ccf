// Package pathcache stores the mapping between tracking-service
// entities and the filesystem paths created for them.
//
// The cache is a small SQLite database living under the project's
// primary data root (see Handle.PathCacheLocation), shared by every
// pipeline configuration of the project. It is an accelerator, not a
// source of truth: rows are only ever added, and a missing row simply
// means the path has not been seen yet.
package pathcache
