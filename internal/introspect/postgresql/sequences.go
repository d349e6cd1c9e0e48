package postgresql

import (
	"database/sql"

	"dbdiff/internal/core"
	"dbdiff/internal/introspect"
)

type sequenceRow struct {
	catalog        string
	schema         string
	name           string
	dataType       sql.NullString
	precision      sql.NullInt64
	precisionRadix sql.NullInt64
	scale          sql.NullInt64
	startValue     sql.NullString
	minimumValue   sql.NullString
	maximumValue   sql.NullString
	increment      sql.NullString
	cycleOption    string
}

// toSequence renames the catalog identity columns and converts cycle_option to a bool.
// The catalog name is dropped; every other attribute is carried through unchanged.
func (r sequenceRow) toSequence() *core.Sequence {
	return &core.Sequence{
		Schema:                r.schema,
		Name:                  r.name,
		Cycle:                 r.cycleOption == "YES",
		DataType:              r.dataType.String,
		NumericPrecision:      nullInt(r.precision),
		NumericPrecisionRadix: nullInt(r.precisionRadix),
		NumericScale:          nullInt(r.scale),
		StartValue:            r.startValue.String,
		MinimumValue:          r.minimumValue.String,
		MaximumValue:          r.maximumValue.String,
		Increment:             r.increment.String,
	}
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func introspectSequences(ic *introspectCtx) ([]*core.Sequence, error) {
	rows, err := ic.client.Query(ic.ctx, querySequences)
	if err != nil {
		return nil, &introspect.QueryError{Query: "list sequences", Err: err}
	}
	defer rows.Close()

	sequences := make([]*core.Sequence, 0)
	for rows.Next() {
		var r sequenceRow
		if err := rows.Scan(
			&r.catalog,
			&r.schema,
			&r.name,
			&r.dataType,
			&r.precision,
			&r.precisionRadix,
			&r.scale,
			&r.startValue,
			&r.minimumValue,
			&r.maximumValue,
			&r.increment,
			&r.cycleOption,
		); err != nil {
			return nil, &introspect.QueryError{Query: "list sequences", Err: err}
		}
		sequences = append(sequences, r.toSequence())
	}

	if err := rows.Err(); err != nil {
		return nil, &introspect.QueryError{Query: "list sequences", Err: err}
	}
	return sequences, nil
}
