package output

import (
	"fmt"
	"strings"

	"dbdiff/internal/core"
)

type summaryFormatter struct{}

// FormatSchema formats a schema description as a compact summary.
// Example output:
//
//	Schema Summary
//	==============
//
//	Tables:    2
//	Columns:   5
//	Indexes:   3
//	Sequences: 1
func (summaryFormatter) FormatSchema(d *core.SchemaDescription) (string, error) {
	if d == nil || (len(d.Tables) == 0 && len(d.Sequences) == 0) {
		return "No tables or sequences found.\n", nil
	}

	tables, columns, indexes, sequences := d.Counts()

	var sb strings.Builder
	sb.WriteString("Schema Summary\n")
	sb.WriteString("==============\n\n")

	fmt.Fprintf(&sb, "Tables:    %d\n", tables)
	fmt.Fprintf(&sb, "Columns:   %d\n", columns)
	fmt.Fprintf(&sb, "Indexes:   %d\n", indexes)
	fmt.Fprintf(&sb, "Sequences: %d\n", sequences)

	writeTableDetails(&sb, d.Tables)
	writeSequenceDetails(&sb, d.Sequences)

	return sb.String(), nil
}

func writeTableDetails(sb *strings.Builder, tables []*core.Table) {
	if len(tables) == 0 {
		return
	}

	sb.WriteString("\nTables:\n")
	for _, t := range tables {
		fmt.Fprintf(sb, "  %s (%s)\n", t.QualifiedName(), describeTable(t))
		for _, idx := range t.Indexes {
			fmt.Fprintf(sb, "    %s %s (%s)\n", indexKind(idx), idx.Name, strings.Join(idx.Keys, ", "))
		}
	}
}

func writeSequenceDetails(sb *strings.Builder, sequences []*core.Sequence) {
	if len(sequences) == 0 {
		return
	}

	sb.WriteString("\nSequences:\n")
	for _, s := range sequences {
		if s.Cycle {
			fmt.Fprintf(sb, "  %s (cycle)\n", s.QualifiedName())
			continue
		}
		fmt.Fprintf(sb, "  %s\n", s.QualifiedName())
	}
}

// describeTable returns a human-readable summary of a table's contents.
func describeTable(t *core.Table) string {
	parts := []string{plural(len(t.Columns), "col", "cols")}
	if n := len(t.Indexes); n > 0 {
		parts = append(parts, plural(n, "idx", "idx"))
	}
	if pk := t.PrimaryKey(); pk != nil {
		parts = append(parts, "pk "+strings.Join(pk.Keys, ", "))
	}
	return strings.Join(parts, ", ")
}

func indexKind(idx *core.Index) string {
	switch {
	case idx.Primary:
		return "primary"
	case idx.Unique:
		return "unique"
	default:
		return idx.Type
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
