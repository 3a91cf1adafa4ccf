package tracking

import (
	"context"
	"fmt"
)

// InMemory is a Service backed by records held in memory. Each stored
// record must carry an "id" int field; FindOne/Find project stored
// records down to the requested fields.
type InMemory struct {
	entities map[string][]Record
	user     *User
}

// NewInMemory returns an empty in-memory service with no current user.
func NewInMemory() *InMemory {
	return &InMemory{entities: make(map[string][]Record)}
}

// AddEntity registers a record under the given entity type.
func (m *InMemory) AddEntity(entityType string, rec Record) {
	m.entities[entityType] = append(m.entities[entityType], rec)
}

// SetCurrentUser sets the identity returned by CurrentUser. Passing
// nil models a session with no resolvable user.
func (m *InMemory) SetCurrentUser(u *User) {
	m.user = u
}

// FindOne implements Service.
func (m *InMemory) FindOne(ctx context.Context, entityType string, filters []Filter, fields []string) (Record, error) {
	matches, err := m.Find(ctx, entityType, filters, fields)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

// Find implements Service.
func (m *InMemory) Find(_ context.Context, entityType string, filters []Filter, fields []string) ([]Record, error) {
	var out []Record
	for _, rec := range m.entities[entityType] {
		ok, err := matchesAll(rec, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, project(rec, fields))
		}
	}
	return out, nil
}

// CurrentUser implements Service.
func (m *InMemory) CurrentUser(context.Context) (*User, error) {
	return m.user, nil
}

func matchesAll(rec Record, filters []Filter) (bool, error) {
	for _, f := range filters {
		ok, err := matches(rec, f)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matches(rec Record, f Filter) (bool, error) {
	switch f.Op {
	case "is":
		return valueEqual(rec[f.Field], f.Value), nil
	case "in":
		values, ok := f.Value.([]string)
		if !ok {
			return false, fmt.Errorf("filter %q: 'in' requires a []string value, got %T", f.Field, f.Value)
		}
		field, ok := rec[f.Field].(string)
		if !ok {
			return false, nil
		}
		for _, v := range values {
			if field == v {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("filter %q: unsupported operator %q", f.Field, f.Op)
	}
}

// valueEqual compares a record field against a filter value. Entity
// links compare on Type and ID; link names are display-only.
func valueEqual(field, want any) bool {
	fr, fok := field.(EntityRef)
	wr, wok := want.(EntityRef)
	if fok && wok {
		return fr.Type == wr.Type && fr.ID == wr.ID
	}
	return field == want
}

func project(rec Record, fields []string) Record {
	out := Record{"id": rec["id"]}
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
	}
	return out
}
