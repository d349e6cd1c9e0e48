package postgresql

import (
	"dbdiff/internal/core"
	"dbdiff/internal/introspect"
)

type tableRow struct {
	schema string
	name   string
}

// introspectTables returns table skeletons in listing order with empty index lists.
func introspectTables(ic *introspectCtx) ([]*core.Table, error) {
	rows, err := ic.client.Query(ic.ctx, queryTables, excludedSchemas...)
	if err != nil {
		return nil, &introspect.QueryError{Query: "list tables", Err: err}
	}
	defer rows.Close()

	tables := make([]*core.Table, 0)
	for rows.Next() {
		var r tableRow
		if err := rows.Scan(&r.schema, &r.name); err != nil {
			return nil, &introspect.QueryError{Query: "list tables", Err: err}
		}

		tables = append(tables, &core.Table{
			Name:    r.name,
			Schema:  r.schema,
			Columns: []*core.Column{},
			Indexes: []*core.Index{},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, &introspect.QueryError{Query: "list tables", Err: err}
	}
	return tables, nil
}
