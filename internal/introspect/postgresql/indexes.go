package postgresql

import (
	"github.com/lib/pq"
	"go.uber.org/zap"

	"dbdiff/internal/core"
	"dbdiff/internal/introspect"
)

type indexRow struct {
	name       string
	owner      int64
	relation   string
	primary    bool
	unique     bool
	method     string
	keys       []string
	expression bool
	partial    bool
	namespace  string
}

func (r indexRow) toIndex(schema string) *core.Index {
	keys := r.keys
	if keys == nil {
		keys = []string{}
	}
	return &core.Index{
		Name:       r.name,
		Schema:     schema,
		Primary:    r.primary,
		Unique:     r.unique,
		Type:       r.method,
		Keys:       keys,
		Expression: r.expression,
		Partial:    r.partial,
	}
}

// introspectIndexes lists every index outside the system namespaces in one query.
func introspectIndexes(ic *introspectCtx) ([]indexRow, error) {
	rows, err := ic.client.Query(ic.ctx, queryIndexes)
	if err != nil {
		return nil, &introspect.QueryError{Query: "list indexes", Err: err}
	}
	defer rows.Close()

	var out []indexRow
	for rows.Next() {
		var r indexRow
		if err := rows.Scan(
			&r.name,
			&r.owner,
			&r.relation,
			&r.primary,
			&r.unique,
			&r.method,
			pq.Array(&r.keys),
			&r.expression,
			&r.partial,
			&r.namespace,
		); err != nil {
			return nil, &introspect.QueryError{Query: "list indexes", Err: err}
		}
		ic.logger.Debug("listed index",
			zap.String("index", r.name),
			zap.String("table", r.namespace+"."+r.relation),
			zap.Int64("owner", r.owner),
		)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, &introspect.QueryError{Query: "list indexes", Err: err}
	}
	return out, nil
}

// attachIndexes joins index rows to their owning tables by (relation, namespace).
// An index without an owning table fails the whole pass.
func attachIndexes(tables []*core.Table, indexes []indexRow) error {
	byKey := make(map[core.TableKey]*core.Table, len(tables))
	for _, t := range tables {
		byKey[t.Key()] = t
	}

	for _, r := range indexes {
		t, ok := byKey[core.TableKey{Name: r.relation, Schema: r.namespace}]
		if !ok {
			return &introspect.IntegrityError{Index: r.name, Relation: r.relation, Schema: r.namespace}
		}
		t.Indexes = append(t.Indexes, r.toIndex(t.Schema))
	}
	return nil
}
