package introspect

import (
	"errors"
	"fmt"
)

// ErrIntrospectionFailed is matched by every error a describer returns.
var ErrIntrospectionFailed = errors.New("introspection failed")

// ConnectionError reports a failure to establish the database session.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%v: connect: %v", ErrIntrospectionFailed, e.Err)
}

func (e *ConnectionError) Unwrap() []error { return []error{ErrIntrospectionFailed, e.Err} }

// QueryError reports a failed catalog query. Query names the catalog step, not the SQL text.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrIntrospectionFailed, e.Query, e.Err)
}

func (e *QueryError) Unwrap() []error { return []error{ErrIntrospectionFailed, e.Err} }

// IntegrityError reports an index whose owning table is not part of the description.
type IntegrityError struct {
	Index    string
	Relation string
	Schema   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%v: dangling index %q: owning table %q not found in schema %q",
		ErrIntrospectionFailed, e.Index, e.Relation, e.Schema)
}

func (e *IntegrityError) Unwrap() error { return ErrIntrospectionFailed }
