package output

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"dbdiff/internal/core"
)

type tomlFormatter struct{}

// FormatSchema renders the description as a TOML document with [[tables]] and
// [[sequences]] arrays. TOML has no null, so a column without a default omits the
// defaultValue key where the JSON format writes "defaultValue": null.
func (tomlFormatter) FormatSchema(d *core.SchemaDescription) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = "  "
	if err := enc.Encode(normalize(d)); err != nil {
		return "", fmt.Errorf("toml encode: %w", err)
	}
	return buf.String(), nil
}
