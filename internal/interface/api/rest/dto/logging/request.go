package logging

import "encoding/json"

type Request struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	// Timestamp is either an RFC 3339 string or epoch milliseconds.
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Context   map[string]any  `json:"context,omitempty"`
}
