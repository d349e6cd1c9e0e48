package postgresql

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDataType(t *testing.T) {
	tests := []struct {
		name      string
		dataType  string
		udtName   string
		maxLength sql.NullInt64
		want      string
	}{
		{name: "array strips leading underscore", dataType: "ARRAY", udtName: "_varchar", want: "varchar[]"},
		{name: "array of int4", dataType: "ARRAY", udtName: "_int4", want: "int4[]"},
		{name: "array strips only one underscore", dataType: "ARRAY", udtName: "__custom", want: "_custom[]"},
		{name: "array without underscore", dataType: "ARRAY", udtName: "text", want: "text[]"},
		{name: "user defined uses udt name", dataType: "USER-DEFINED", udtName: "hstore", want: "hstore"},
		{name: "enum type", dataType: "USER-DEFINED", udtName: "mood", want: "mood"},
		{name: "plain type is verbatim", dataType: "integer", udtName: "int4", want: "integer"},
		{
			name:      "character length suffix",
			dataType:  "character varying",
			udtName:   "varchar",
			maxLength: sql.NullInt64{Int64: 255, Valid: true},
			want:      "character varying(255)",
		},
		{
			name:      "zero length is ignored",
			dataType:  "character varying",
			udtName:   "varchar",
			maxLength: sql.NullInt64{Int64: 0, Valid: true},
			want:      "character varying",
		},
		{
			name:      "array with length",
			dataType:  "ARRAY",
			udtName:   "_bpchar",
			maxLength: sql.NullInt64{Int64: 2, Valid: true},
			want:      "bpchar[](2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDataType(tt.dataType, tt.udtName, tt.maxLength))
		})
	}
}
