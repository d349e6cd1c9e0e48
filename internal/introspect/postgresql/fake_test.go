package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// fakeResult is what the fake client answers for one query.
type fakeResult struct {
	rows  [][]any
	err   error
	delay time.Duration
}

// fakeClient answers catalog queries from canned rows and records its lifecycle.
type fakeClient struct {
	mu      sync.Mutex
	tables  fakeResult
	columns map[string]fakeResult // keyed by "schema.table"
	indexes fakeResult
	seqs    fakeResult

	queries     []string
	closed      atomic.Bool
	openRows    atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	queryAfter  atomic.Bool // set when a query arrives after Close
}

func newFakeClient() *fakeClient {
	return &fakeClient{columns: make(map[string]fakeResult)}
}

func (c *fakeClient) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	if c.closed.Load() {
		c.queryAfter.Store(true)
	}

	var (
		res   fakeResult
		label string
	)
	switch query {
	case queryTables:
		res, label = c.tables, "tables"
	case queryColumns:
		key := fmt.Sprintf("%v.%v", args[1], args[0])
		res, label = c.columns[key], "columns:"+key
	case queryIndexes:
		res, label = c.indexes, "indexes"
	case querySequences:
		res, label = c.seqs, "sequences"
	default:
		return nil, fmt.Errorf("unexpected query %q", query)
	}

	c.mu.Lock()
	c.queries = append(c.queries, label)
	c.mu.Unlock()

	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		current := c.maxInFlight.Load()
		if n <= current || c.maxInFlight.CompareAndSwap(current, n) {
			break
		}
	}

	if res.delay > 0 {
		select {
		case <-time.After(res.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if res.err != nil {
		return nil, res.err
	}

	c.openRows.Add(1)
	return &fakeRows{data: res.rows, pos: -1, onClose: func() { c.openRows.Add(-1) }}, nil
}

func (c *fakeClient) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *fakeClient) recorded() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func (c *fakeClient) opener() Opener {
	return func(context.Context, string, string, int) (Client, error) {
		return c, nil
	}
}

type fakeRows struct {
	data    [][]any
	pos     int
	closed  bool
	onClose func()
}

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	return r.pos < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos]
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i := range dest {
		if err := assign(dest[i], row[i]); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() error {
	if !r.closed {
		r.closed = true
		r.onClose()
	}
	return nil
}

func assign(dest, src any) error {
	if s, ok := dest.(sql.Scanner); ok {
		return s.Scan(src)
	}
	switch d := dest.(type) {
	case *string:
		v, ok := src.(string)
		if !ok {
			return fmt.Errorf("cannot scan %T into *string", src)
		}
		*d = v
	case *bool:
		v, ok := src.(bool)
		if !ok {
			return fmt.Errorf("cannot scan %T into *bool", src)
		}
		*d = v
	case *int64:
		v, ok := src.(int64)
		if !ok {
			return fmt.Errorf("cannot scan %T into *int64", src)
		}
		*d = v
	default:
		return errors.New("unsupported scan destination")
	}
	return nil
}
