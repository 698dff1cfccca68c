package model

// Defensive coercion helpers for untyped input. Raw events arrive as
// arbitrary JSON-decoded values; every read tolerates a missing key or a
// wrong type and falls back to the zero value.

// AsMap coerces a raw value to a string-keyed mapping.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Str reads a string field, returning "" when absent or non-string.
func Str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// Num reads a numeric field, accepting the types json.Unmarshal and YAML
// decoding produce. Absent or non-numeric fields read as 0.
func Num(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	switch n := m[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

// Has reports whether the key is present, regardless of value type.
func Has(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

// CopyMap returns a shallow copy of m. Nil input yields an empty map.
func CopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
