// Package postgresql contains the describer implementation for PostgreSQL. It opens one
// database/sql pool per call, runs a fixed sequence of catalog queries and assembles a
// core.SchemaDescription from tables, columns, indexes and sequences.
package postgresql

import (
	"context"

	"go.uber.org/zap"

	"dbdiff/internal/core"
	"dbdiff/internal/introspect"
)

// DefaultMaxConns bounds the column fan-out when ConnectionOptions.MaxConns is zero.
const DefaultMaxConns = 8

func init() {
	introspect.Register(core.DialectPostgreSQL, func(logger *zap.Logger) introspect.Describer {
		return New(WithLogger(logger))
	})
}

// Introspecter describes PostgreSQL databases.
type Introspecter struct {
	open   Opener
	logger *zap.Logger
}

// Option configures an Introspecter.
type Option func(*Introspecter)

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Introspecter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithOpener replaces the function used to open the client.
func WithOpener(open Opener) Option {
	return func(i *Introspecter) {
		if open != nil {
			i.open = open
		}
	}
}

type introspectCtx struct {
	ctx      context.Context
	client   Client
	maxConns int
	logger   *zap.Logger
}

// New returns an Introspecter that connects through database/sql.
func New(opts ...Option) *Introspecter {
	i := &Introspecter{
		open:   Open,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// DescribeDatabase connects with the given options and returns the full schema
// description. The client is closed on every path before the result or the error is
// returned; no partial description is ever returned.
func (i *Introspecter) DescribeDatabase(ctx context.Context, opts introspect.ConnectionOptions) (*core.SchemaDescription, error) {
	dsn, err := opts.ConnectionString()
	if err != nil {
		return nil, &introspect.ConnectionError{Err: err}
	}

	driver := opts.Driver
	if driver == "" {
		driver = DriverPgx
	}
	maxConns := opts.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}

	log := i.logger.With(
		zap.String("dialect", string(core.DialectPostgreSQL)),
		zap.String("driver", driver),
		zap.String("dsn", opts.Redacted()),
	)

	client, err := i.open(ctx, driver, dsn, maxConns)
	if err != nil {
		log.Warn("connection failed", zap.Error(err))
		return nil, &introspect.ConnectionError{Err: err}
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Warn("failed to close connection", zap.Error(closeErr))
		}
	}()

	ic := &introspectCtx{
		ctx:      ctx,
		client:   client,
		maxConns: maxConns,
		logger:   log,
	}

	d, err := describe(ic)
	if err != nil {
		log.Warn("describe failed", zap.Error(err))
		return nil, err
	}
	return d, nil
}

func describe(ic *introspectCtx) (*core.SchemaDescription, error) {
	tables, err := introspectTables(ic)
	if err != nil {
		return nil, err
	}
	ic.logger.Debug("listed tables", zap.Int("tables", len(tables)))

	if err := introspectColumns(ic, tables); err != nil {
		return nil, err
	}

	indexes, err := introspectIndexes(ic)
	if err != nil {
		return nil, err
	}
	ic.logger.Debug("listed indexes", zap.Int("indexes", len(indexes)))

	if err := attachIndexes(tables, indexes); err != nil {
		return nil, err
	}

	sequences, err := introspectSequences(ic)
	if err != nil {
		return nil, err
	}
	ic.logger.Debug("listed sequences", zap.Int("sequences", len(sequences)))

	return &core.SchemaDescription{
		Dialect:   core.DialectPostgreSQL,
		Tables:    tables,
		Sequences: sequences,
	}, nil
}
