package display

import (
	"encoding/json"
)

// MarshalJSON marshals v with two-space indentation and a trailing newline.
func MarshalJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
