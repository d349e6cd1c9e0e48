// Package introspect contains the describer interface which lets you introspect a live
// database for its current schema. A describer returns a core.SchemaDescription with
// all tables, columns, indexes and sequences, or an error if the connection or any
// query was unsuccessful.
package introspect

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"dbdiff/internal/core"
)

// Describer introspects one database engine.
type Describer interface {
	DescribeDatabase(ctx context.Context, opts ConnectionOptions) (*core.SchemaDescription, error)
}

// Constructor builds a describer; a nil logger disables logging.
type Constructor func(logger *zap.Logger) Describer

var (
	registry = make(map[core.Dialect]Constructor)
	mu       sync.RWMutex
)

// Register makes a describer constructor available under the given dialect key.
func Register(dialect core.Dialect, fn Constructor) {
	mu.Lock()
	defer mu.Unlock()
	registry[dialect] = fn
}

// NewDescriber returns a fresh describer for the dialect.
func NewDescriber(dialect core.Dialect, logger *zap.Logger) (Describer, error) {
	mu.RLock()
	fn, ok := registry[dialect]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q; registered dialects: %v", dialect, Registered())
	}

	return fn(logger), nil
}

// Registered lists the registered dialect keys in sorted order.
func Registered() []core.Dialect {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]core.Dialect, 0, len(registry))
	for d := range registry {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}
