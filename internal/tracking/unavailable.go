package tracking

import (
	"context"
	"fmt"
)

// Unavailable is a Service whose every query fails with a fixed
// explanation. The CLI uses it for local-only commands: resolutions
// that never reach the remote service work normally, and the ones that
// would need it fail with a message telling the user why.
type Unavailable struct {
	Reason string
}

// NewUnavailable returns an Unavailable service with the given reason.
func NewUnavailable(reason string) *Unavailable {
	return &Unavailable{Reason: reason}
}

func (u *Unavailable) err() error {
	return fmt.Errorf("tracking service unavailable: %s", u.Reason)
}

// FindOne implements Service.
func (u *Unavailable) FindOne(context.Context, string, []Filter, []string) (Record, error) {
	return nil, u.err()
}

// Find implements Service.
func (u *Unavailable) Find(context.Context, string, []Filter, []string) ([]Record, error) {
	return nil, u.err()
}

// CurrentUser implements Service.
func (u *Unavailable) CurrentUser(context.Context) (*User, error) {
	return nil, u.err()
}
