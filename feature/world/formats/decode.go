package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a world document into a generic map. Numbers are kept as
// json.Number so decimal literals survive untouched.
func Decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}
