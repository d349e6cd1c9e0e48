// Package core contains the single source of truth for an introspected database schema.
// It provides a dialect-agnostic representation of tables, columns, indexes and sequences
// that two snapshots can be compared on.
package core

import (
	"fmt"
	"strings"
)

// Dialect identifies a supported SQL dialect.
type Dialect string

const (
	DialectPostgreSQL Dialect = "postgres"
)

// SupportedDialects returns a slice of all supported dialect values.
func SupportedDialects() []Dialect {
	return []Dialect{
		DialectPostgreSQL,
	}
}

// IsValidDialect reports whether d is a recognized dialect string.
func IsValidDialect(d string) bool {
	for _, supported := range SupportedDialects() {
		if strings.EqualFold(string(supported), d) {
			return true
		}
	}
	return false
}

// SchemaDescription is the root value produced by a describer. Once returned it is
// owned by the caller and holds no reference to the originating connection.
type SchemaDescription struct {
	Dialect   Dialect     `json:"dialect,omitempty" toml:"dialect,omitempty"`
	Tables    []*Table    `json:"tables" toml:"tables"`
	Sequences []*Sequence `json:"sequences" toml:"sequences"`
}

// Table represents a table in the schema. Name and Schema together form its identity.
type Table struct {
	Name    string    `json:"name" toml:"name"`
	Schema  string    `json:"schema" toml:"schema"`
	Columns []*Column `json:"columns" toml:"columns"`
	Indexes []*Index  `json:"indexes" toml:"indexes"`
}

// Column represents a single column inside a table.
type Column struct {
	Name         string  `json:"name" toml:"name"`
	Nullable     bool    `json:"nullable" toml:"nullable"`
	DefaultValue *string `json:"defaultValue" toml:"defaultValue,omitempty"`
	// Type is the formatted type, e.g. "varchar(255)" or "int4[]".
	Type string `json:"type" toml:"type"`
}

// Index represents an index owned by a table.
type Index struct {
	Name    string `json:"name" toml:"name"`
	Schema  string `json:"schema" toml:"schema"`
	Primary bool   `json:"primary" toml:"primary"`
	Unique  bool   `json:"unique" toml:"unique"`
	// Type is the access method name (btree, hash, gin, ...).
	Type string `json:"type" toml:"type"`
	// Keys holds one definition per key position, in key order.
	Keys       []string `json:"keys" toml:"keys"`
	Expression bool     `json:"expression,omitempty" toml:"expression,omitempty"`
	Partial    bool     `json:"partial,omitempty" toml:"partial,omitempty"`
}

// Sequence represents a sequence. Attributes other than schema, name and cycle are
// kept under their catalog names.
type Sequence struct {
	Schema string `json:"schema" toml:"schema"`
	Name   string `json:"name" toml:"name"`
	Cycle  bool   `json:"cycle" toml:"cycle"`

	DataType              string `json:"data_type,omitempty" toml:"data_type,omitempty"`
	NumericPrecision      *int64 `json:"numeric_precision,omitempty" toml:"numeric_precision,omitempty"`
	NumericPrecisionRadix *int64 `json:"numeric_precision_radix,omitempty" toml:"numeric_precision_radix,omitempty"`
	NumericScale          *int64 `json:"numeric_scale,omitempty" toml:"numeric_scale,omitempty"`
	StartValue            string `json:"start_value,omitempty" toml:"start_value,omitempty"`
	MinimumValue          string `json:"minimum_value,omitempty" toml:"minimum_value,omitempty"`
	MaximumValue          string `json:"maximum_value,omitempty" toml:"maximum_value,omitempty"`
	Increment             string `json:"increment,omitempty" toml:"increment,omitempty"`
}

// TableKey is the (name, schema) identity of a table.
type TableKey struct {
	Name   string
	Schema string
}

// Key returns the identity of the table.
func (t *Table) Key() TableKey { return TableKey{Name: t.Name, Schema: t.Schema} }

// QualifiedName returns "schema.name".
func (t *Table) QualifiedName() string { return t.Schema + "." + t.Name }

// QualifiedName returns "schema.name".
func (s *Sequence) QualifiedName() string { return s.Schema + "." + s.Name }

// FindTable looks for a table by its exact name and schema.
func (d *SchemaDescription) FindTable(name, schema string) *Table {
	for _, t := range d.Tables {
		if t.Name == name && t.Schema == schema {
			return t
		}
	}
	return nil
}

// FindSequence looks for a sequence by its exact name and schema.
func (d *SchemaDescription) FindSequence(name, schema string) *Sequence {
	for _, s := range d.Sequences {
		if s.Name == name && s.Schema == schema {
			return s
		}
	}
	return nil
}

// FindColumn looks for a column by name inside a table.
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindIndex looks for an index by name inside a table.
func (t *Table) FindIndex(name string) *Index {
	for _, i := range t.Indexes {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// PrimaryKey returns the primary index of the table.
func (t *Table) PrimaryKey() *Index {
	for _, i := range t.Indexes {
		if i.Primary {
			return i
		}
	}
	return nil
}

// String returns a string representation of a table with its column and index counts.
func (t *Table) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d indexes)", t.QualifiedName(), len(t.Columns), len(t.Indexes))
}

// Counts returns the number of tables, columns, indexes and sequences.
func (d *SchemaDescription) Counts() (tables, columns, indexes, sequences int) {
	if d == nil {
		return 0, 0, 0, 0
	}
	for _, t := range d.Tables {
		columns += len(t.Columns)
		indexes += len(t.Indexes)
	}
	return len(d.Tables), columns, indexes, len(d.Sequences)
}
