// Package casing translates map keys between the camelCase used at the HTTP
// boundary and the snake_case used internally and in the document store.
// The translation is pure and invertible for well-formed keys, so it can live
// entirely at the serialization edge.
package casing

import (
	"strings"
	"unicode"
)

// ToSnake converts a camelCase key to snake_case.
// "startDate" -> "start_date", "directionFromNewYork" -> "direction_from_new_york".
func ToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts a snake_case key to camelCase.
// "start_date" -> "startDate". Leading and trailing underscores are preserved
// so sentinel keys like "_id" survive the round trip.
func ToCamel(key string) string {
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))
	wrote := false
	for i, p := range parts {
		if p == "" {
			// Consecutive or edge underscores carry no word; keep them literal.
			if i == 0 || i == len(parts)-1 {
				b.WriteByte('_')
			}
			continue
		}
		if !wrote {
			b.WriteString(p)
			wrote = true
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// SnakeCaseKeys returns a copy of m with every key converted to snake_case.
// Nested maps and slices of maps are converted recursively, matching the
// shape of decoded JSON bodies.
func SnakeCaseKeys(m map[string]any) map[string]any {
	return convertKeys(m, ToSnake)
}

// CamelCaseKeys returns a copy of m with every key converted to camelCase.
func CamelCaseKeys(m map[string]any) map[string]any {
	return convertKeys(m, ToCamel)
}

func convertKeys(m map[string]any, convert func(string) string) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[convert(k)] = convertValue(v, convert)
	}
	return out
}

func convertValue(v any, convert func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		return convertKeys(val, convert)
	case []any:
		converted := make([]any, len(val))
		for i, elem := range val {
			converted[i] = convertValue(elem, convert)
		}
		return converted
	default:
		return v
	}
}
