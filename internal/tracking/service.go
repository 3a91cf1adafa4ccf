package tracking

import "context"

// EntityRef identifies one entity in the tracking service.
type EntityRef struct {
	Type string
	ID   int
	Name string
}

// User is the identity record returned by CurrentUser.
type User struct {
	ID    int
	Login string
}

// Filter is one query condition: Field Op Value.
//
// Supported operators:
//   - "is": Value is compared for equality. EntityRef values match on
//     Type and ID only.
//   - "in": Value is a []string; the record field must equal one of them.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Record is one entity as returned by a query: requested field →
// value. Values are strings, ints, EntityRef (entity links) or
// []User (multi-user fields). A requested field absent on the remote
// entity is simply missing from the map.
type Record map[string]any

// StringField returns the named field as a string, or "" if absent or
// not a string.
func (r Record) StringField(field string) string {
	s, _ := r[field].(string)
	return s
}

// RefField returns the named field as an entity link.
func (r Record) RefField(field string) (EntityRef, bool) {
	ref, ok := r[field].(EntityRef)
	return ref, ok
}

// UsersField returns the named field as a user list, nil if absent.
func (r Record) UsersField(field string) []User {
	users, _ := r[field].([]User)
	return users
}

// Service is the resolver's view of the tracking service. All calls
// are single blocking round-trips; implementations do not retry.
type Service interface {
	// FindOne returns the first entity of the given type matching all
	// filters, with the requested fields populated. Returns nil (not an
	// error) when nothing matches.
	FindOne(ctx context.Context, entityType string, filters []Filter, fields []string) (Record, error)

	// Find returns all entities of the given type matching all filters.
	Find(ctx context.Context, entityType string, filters []Filter, fields []string) ([]Record, error)

	// CurrentUser returns the identity the service session is
	// authenticated as, or nil when no user can be determined.
	CurrentUser(ctx context.Context) (*User, error)
}
