package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dbdiff/internal/core"
	"dbdiff/internal/introspect"
)

type columnRow struct {
	name       string
	dataType   string
	udtName    string
	maxLength  sql.NullInt64
	nullable   string
	defaultVal sql.NullString
}

func (r columnRow) toColumn() *core.Column {
	col := &core.Column{
		Name:     r.name,
		Nullable: r.nullable == "YES",
		Type:     formatDataType(r.dataType, r.udtName, r.maxLength),
	}
	if r.defaultVal.Valid {
		col.DefaultValue = &r.defaultVal.String
	}
	return col
}

// introspectColumns fetches the columns of every table on a pool of at most
// ic.maxConns goroutines. Each result is written back into its own table, so the
// table order is untouched. The first failure cancels the remaining queries.
func introspectColumns(ic *introspectCtx, tables []*core.Table) error {
	g, ctx := errgroup.WithContext(ic.ctx)
	g.SetLimit(ic.maxConns)

	for _, t := range tables {
		t := t
		g.Go(func() error {
			cols, err := fetchColumns(ctx, ic.client, t)
			if err != nil {
				return &introspect.QueryError{Query: "list columns of " + t.QualifiedName(), Err: err}
			}
			t.Columns = cols
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	ic.logger.Debug("fetched columns", zap.Int("tables", len(tables)))
	return nil
}

func fetchColumns(ctx context.Context, client Client, t *core.Table) ([]*core.Column, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := client.Query(ctx, queryColumns, t.Name, t.Schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make([]*core.Column, 0)
	for rows.Next() {
		var r columnRow
		if err := rows.Scan(&r.name, &r.dataType, &r.udtName, &r.maxLength, &r.nullable, &r.defaultVal); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		cols = append(cols, r.toColumn())
	}
	return cols, rows.Err()
}
