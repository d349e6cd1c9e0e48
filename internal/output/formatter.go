// Package output renders schema descriptions for the terminal or for storage.
// It provides three formats: JSON, TOML and a human summary.
package output

import (
	"fmt"
	"strings"

	"dbdiff/internal/core"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatJSON    Format = "json"
	FormatTOML    Format = "toml"
	FormatSummary Format = "summary"
)

// Formatter renders a schema description.
type Formatter interface {
	FormatSchema(*core.SchemaDescription) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to JSON format.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatJSON:
		return jsonFormatter{}, nil
	case FormatTOML:
		return tomlFormatter{}, nil
	case FormatSummary:
		return summaryFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'json', 'toml', or 'summary'", name)
	}
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatTOML), string(FormatSummary)}
}

// normalize returns a description that never encodes tables or sequences as null.
func normalize(d *core.SchemaDescription) *core.SchemaDescription {
	if d == nil {
		return &core.SchemaDescription{Tables: []*core.Table{}, Sequences: []*core.Sequence{}}
	}
	if d.Tables != nil && d.Sequences != nil {
		return d
	}
	out := *d
	if out.Tables == nil {
		out.Tables = []*core.Table{}
	}
	if out.Sequences == nil {
		out.Sequences = []*core.Sequence{}
	}
	return &out
}
