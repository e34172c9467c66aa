// Package jsonutil provides shared helpers for loosely typed provider JSON:
// context-wrapped unmarshalling, string extraction from decoded maps,
// sparse numbered fields, and boolean-like flags.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// GetString safely extracts a string value from a map[string]interface{}.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// ToString converts an interface{} value to a string representation.
// Handles string, float64 (formatted as integer), bool, and other types.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// NumberedStrings collects m[prefix+"1"] .. m[prefix+n] in order, skipping
// keys that are absent, null, non-string, or blank.
func NumberedStrings(m map[string]interface{}, prefix string, n int) []string {
	var out []string
	for i := 1; i <= n; i++ {
		s := strings.TrimSpace(GetString(m, prefix+strconv.Itoa(i)))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Truthy interprets a decoded JSON value as a boolean.
// Booleans pass through; numbers are true when non-zero; strings accept
// true/yes/y/1 (any case) as true and everything else as false; nil is false.
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "y", "1":
			return true
		}
		return false
	default:
		return false
	}
}
