// Package output renders query results as JSON, TOON, markdown, HTML
// tables and Arrow IPC streams.
package output

import "encoding/json"

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
