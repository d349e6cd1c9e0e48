package postgresql

// $1..$3 are the excluded schema names.
const queryTables = `
	SELECT schemaname, tablename
	FROM pg_tables
	WHERE schemaname NOT IN ($1, $2, $3)
	ORDER BY schemaname, tablename`

// $1 is table_name, $2 is table_schema.
const queryColumns = `
	SELECT
		column_name,
		data_type,
		udt_name,
		character_maximum_length,
		is_nullable,
		column_default
	FROM INFORMATION_SCHEMA.COLUMNS
	WHERE table_name = $1 AND table_schema = $2
	ORDER BY ordinal_position`

// The owning relation is joined by oid so its plain relname is returned regardless of
// search_path; indrelid::regclass would schema-qualify names outside of it. Only
// ordinary and partitioned tables own indexes here, matching what pg_tables lists.
const queryIndexes = `
	SELECT
		i.relname AS indname,
		i.relowner::int8 AS indowner,
		tbl.relname AS indrelid,
		idx.indisprimary,
		idx.indisunique,
		am.amname AS indam,
		ARRAY(
			SELECT pg_get_indexdef(idx.indexrelid, k + 1, true)
			FROM generate_subscripts(idx.indkey, 1) AS k
			ORDER BY k
		) AS indkey_names,
		idx.indexprs IS NOT NULL AS indexprs,
		idx.indpred IS NOT NULL AS indpred,
		ns.nspname
	FROM pg_index AS idx
	JOIN pg_class AS i
		ON i.oid = idx.indexrelid
	JOIN pg_class AS tbl
		ON tbl.oid = idx.indrelid
		AND tbl.relkind IN ('r', 'p')
	JOIN pg_am AS am
		ON i.relam = am.oid
	JOIN pg_namespace AS ns
		ON ns.oid = i.relnamespace
		AND ns.nspname NOT IN ('pg_catalog', 'information_schema')
		AND ns.nspname NOT LIKE 'pg\_toast%'
	ORDER BY ns.nspname, tbl.relname, i.relname`

const querySequences = `
	SELECT
		sequence_catalog,
		sequence_schema,
		sequence_name,
		data_type,
		numeric_precision,
		numeric_precision_radix,
		numeric_scale,
		start_value,
		minimum_value,
		maximum_value,
		increment,
		cycle_option
	FROM information_schema.sequences
	ORDER BY sequence_schema, sequence_name`

// excludedSchemas are skipped when listing tables.
var excludedSchemas = []any{"temp", "pg_catalog", "information_schema"}
