// Package tracking defines the narrow interface to the studio's
// production-tracking service.
//
// The resolver only ever needs three operations: find one entity, find
// all entities matching a filter, and look up the current user. The
// interface deliberately mirrors the remote service's query shape
// (entity type + field filters + requested fields, records as
// field→value maps) so a production client is a thin adapter, while
// tests run against the in-memory implementation in this package.
package tracking
