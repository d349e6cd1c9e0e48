package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDialect(t *testing.T) {
	assert.True(t, IsValidDialect("postgres"))
	assert.True(t, IsValidDialect("POSTGRES"))
	assert.False(t, IsValidDialect("mysql"))
	assert.False(t, IsValidDialect(""))
}

func TestSchemaDescriptionFindTable(t *testing.T) {
	d := &SchemaDescription{
		Tables: []*Table{
			{Name: "users", Schema: "public"},
			{Name: "users", Schema: "audit"},
			{Name: "orders", Schema: "public"},
		},
	}

	t.Run("find by name and schema", func(t *testing.T) {
		table := d.FindTable("users", "audit")
		require.NotNil(t, table)
		assert.Equal(t, "audit", table.Schema)
	})

	t.Run("schema is part of identity", func(t *testing.T) {
		assert.Nil(t, d.FindTable("orders", "audit"))
	})

	t.Run("match is exact", func(t *testing.T) {
		assert.Nil(t, d.FindTable("USERS", "public"))
	})
}

func TestTableFindColumnAndIndex(t *testing.T) {
	table := &Table{
		Name:   "users",
		Schema: "public",
		Columns: []*Column{
			{Name: "id", Type: "int4"},
			{Name: "email", Type: "varchar(255)", Nullable: true},
		},
		Indexes: []*Index{
			{Name: "users_pkey", Primary: true, Unique: true, Keys: []string{"id"}},
			{Name: "users_email_idx", Unique: true, Keys: []string{"email"}},
		},
	}

	require.NotNil(t, table.FindColumn("email"))
	assert.Nil(t, table.FindColumn("missing"))
	require.NotNil(t, table.FindIndex("users_email_idx"))
	assert.Nil(t, table.FindIndex("missing"))
	require.NotNil(t, table.PrimaryKey())
	assert.Equal(t, "users_pkey", table.PrimaryKey().Name)
	assert.Equal(t, "Table: public.users (2 cols, 2 indexes)", table.String())
}

func TestSchemaDescriptionCounts(t *testing.T) {
	var nilDesc *SchemaDescription
	tables, columns, indexes, sequences := nilDesc.Counts()
	assert.Zero(t, tables+columns+indexes+sequences)

	d := &SchemaDescription{
		Tables: []*Table{
			{Name: "a", Schema: "public", Columns: []*Column{{Name: "x"}, {Name: "y"}}, Indexes: []*Index{{Name: "a_x"}}},
			{Name: "b", Schema: "public", Columns: []*Column{{Name: "z"}}},
		},
		Sequences: []*Sequence{{Name: "a_seq", Schema: "public"}},
	}
	tables, columns, indexes, sequences = d.Counts()
	assert.Equal(t, 2, tables)
	assert.Equal(t, 3, columns)
	assert.Equal(t, 1, indexes)
	assert.Equal(t, 1, sequences)
}

func TestSchemaDescriptionJSONShape(t *testing.T) {
	d := &SchemaDescription{
		Tables: []*Table{
			{
				Name:   "users",
				Schema: "public",
				Columns: []*Column{
					{Name: "id", Nullable: false, Type: "int4"},
					{Name: "email", Nullable: true, Type: "varchar(255)"},
				},
				Indexes: []*Index{
					{Name: "users_email_idx", Schema: "public", Unique: true, Type: "btree", Keys: []string{"email"}},
				},
			},
		},
		Sequences: []*Sequence{{Schema: "public", Name: "users_id_seq"}},
	}

	b, err := json.Marshal(d)
	require.NoError(t, err)

	expected := `{
		"tables": [{
			"name": "users",
			"schema": "public",
			"columns": [
				{"name": "id", "nullable": false, "defaultValue": null, "type": "int4"},
				{"name": "email", "nullable": true, "defaultValue": null, "type": "varchar(255)"}
			],
			"indexes": [
				{"name": "users_email_idx", "schema": "public", "primary": false, "unique": true, "type": "btree", "keys": ["email"]}
			]
		}],
		"sequences": [{"schema": "public", "name": "users_id_seq", "cycle": false}]
	}`
	assert.JSONEq(t, expected, string(b))
}

func TestSequenceJSONOmitsCatalogKeys(t *testing.T) {
	precision := int64(64)
	seq := &Sequence{
		Schema:           "public",
		Name:             "orders_id_seq",
		Cycle:            true,
		DataType:         "bigint",
		NumericPrecision: &precision,
		StartValue:       "1",
		Increment:        "1",
	}

	b, err := json.Marshal(seq)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.Equal(t, true, fields["cycle"])
	assert.Equal(t, "bigint", fields["data_type"])
	assert.InDelta(t, 64, fields["numeric_precision"], 0)
	for _, key := range []string{"sequence_schema", "sequence_name", "sequence_catalog", "cycle_option"} {
		assert.NotContains(t, fields, key)
	}
}
