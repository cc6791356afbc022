package json

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"
)

// Marshal is a drop-in for encoding/json.Marshal.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal is a drop-in for encoding/json.Unmarshal.
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// MarshalPretty renders v as human-readable JSON for reports and logs.
func MarshalPretty(v interface{}) ([]byte, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(bytes), nil
}

// TrimFence strips a surrounding Markdown code fence from LLM output so
// the payload can be unmarshalled directly.
func TrimFence(text string) string {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
