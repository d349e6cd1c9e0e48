package postgresql

import (
	"database/sql"
	"strconv"
	"strings"
)

const (
	dataTypeArray       = "ARRAY"
	dataTypeUserDefined = "USER-DEFINED"
)

// formatDataType combines the reported data_type and udt_name into one type string:
// arrays become "<element>[]" (udt_name without its leading underscore), user-defined
// types (enums, hstore, ...) use udt_name, and a character length is appended as "(n)".
func formatDataType(dataType, udtName string, maxLength sql.NullInt64) string {
	var typ string
	switch dataType {
	case dataTypeArray:
		typ = strings.TrimPrefix(udtName, "_") + "[]"
	case dataTypeUserDefined:
		typ = udtName
	default:
		typ = dataType
	}

	if maxLength.Valid && maxLength.Int64 != 0 {
		typ += "(" + strconv.FormatInt(maxLength.Int64, 10) + ")"
	}
	return typ
}
