package output

import (
	"encoding/json"

	"dbdiff/internal/core"
)

type jsonFormatter struct{}

// FormatSchema renders the description as indented JSON followed by a newline.
func (jsonFormatter) FormatSchema(d *core.SchemaDescription) (string, error) {
	b, err := json.MarshalIndent(normalize(d), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
