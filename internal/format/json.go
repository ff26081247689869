package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ToJSON formats a value as indented JSON. Angle brackets are kept as-is so
// display lines like "<nick> text" stay readable.
func ToJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
