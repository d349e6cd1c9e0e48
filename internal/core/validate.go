package core

import (
	"errors"
	"fmt"
	"strings"
)

// Validate runs structural validation on a fully built SchemaDescription.
// It returns the first error encountered.
func (d *SchemaDescription) Validate() error {
	if d == nil {
		return errors.New("schema description is nil")
	}
	if d.Dialect != "" && !IsValidDialect(string(d.Dialect)) {
		return fmt.Errorf("unsupported dialect %q; supported dialects: %v", d.Dialect, SupportedDialects())
	}

	if err := validateTableIdentities(d.Tables); err != nil {
		return err
	}

	if err := validateAllTables(d.Tables); err != nil {
		return err
	}

	if err := validateIndexNames(d.Tables); err != nil {
		return err
	}

	return validateSequenceIdentities(d.Sequences)
}

func validateTableIdentities(tables []*Table) error {
	seen := make(map[TableKey]bool, len(tables))
	for _, table := range tables {
		if table == nil {
			return errors.New("nil table")
		}
		if seen[table.Key()] {
			return fmt.Errorf("duplicate table %q", table.QualifiedName())
		}
		seen[table.Key()] = true
	}
	return nil
}

func validateAllTables(tables []*Table) error {
	for _, table := range tables {
		if err := validateTable(table); err != nil {
			return fmt.Errorf("table %q: %w", table.QualifiedName(), err)
		}
	}
	return nil
}

// validateTable checks a single table for structural correctness.
func validateTable(table *Table) error {
	if strings.TrimSpace(table.Name) == "" {
		return errors.New("name is empty")
	}
	if strings.TrimSpace(table.Schema) == "" {
		return errors.New("schema is empty")
	}

	seenCols := make(map[string]bool, len(table.Columns))
	for _, col := range table.Columns {
		if seenCols[col.Name] {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seenCols[col.Name] = true
		if strings.TrimSpace(col.Type) == "" {
			return fmt.Errorf("column %q has no type", col.Name)
		}
	}

	primaries := 0
	for _, idx := range table.Indexes {
		if idx.Schema != table.Schema {
			return fmt.Errorf("index %q belongs to schema %q", idx.Name, idx.Schema)
		}
		if len(idx.Keys) == 0 {
			return fmt.Errorf("index %q has no keys", idx.Name)
		}
		if idx.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return fmt.Errorf("table has %d primary indexes", primaries)
	}
	return nil
}

// Index names share the relation namespace of their schema.
func validateIndexNames(tables []*Table) error {
	seen := make(map[string]string)
	for _, table := range tables {
		for _, idx := range table.Indexes {
			key := idx.Schema + "." + idx.Name
			if owner, ok := seen[key]; ok {
				return fmt.Errorf("duplicate index %q on tables %q and %q", key, owner, table.QualifiedName())
			}
			seen[key] = table.QualifiedName()
		}
	}
	return nil
}

func validateSequenceIdentities(sequences []*Sequence) error {
	seen := make(map[string]bool, len(sequences))
	for _, seq := range sequences {
		if seq == nil {
			return errors.New("nil sequence")
		}
		if seen[seq.QualifiedName()] {
			return fmt.Errorf("duplicate sequence %q", seq.QualifiedName())
		}
		seen[seq.QualifiedName()] = true
	}
	return nil
}
