// Package normalize reconciles the several historical and localized
// schemas the model emits into one canonical record shape per entity.
//
// Each canonical field resolves through a priority-ordered list of
// source keys (localized legacy names first, English equivalents after),
// so adding a newly observed alias is a one-line change.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// firstValue walks keys in priority order and returns the first value
// present on the object.
func firstValue(obj map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstString resolves a field expected to be plain text. Non-string
// scalars are formatted; anything unresolvable yields "".
func firstString(obj map[string]any, keys ...string) string {
	v, ok := firstValue(obj, keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64, bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

// firstJoined resolves a field that may arrive as a string or an array;
// arrays are newline-joined.
func firstJoined(obj map[string]any, keys ...string) string {
	v, ok := firstValue(obj, keys...)
	if !ok {
		return ""
	}
	return joinLines(v)
}

// joinLines flattens a string-or-array value to newline-separated text.
func joinLines(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			} else {
				parts = append(parts, fmt.Sprintf("%v", e))
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// dig follows a path of nested object keys, returning nil the moment a
// hop is missing or not an object.
func dig(obj map[string]any, path ...string) any {
	var cur any = obj
	for _, k := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[k]
		if !ok {
			return nil
		}
	}
	return cur
}

// asNumber coerces a JSON number or numeric string; anything else is 0.
func asNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return n
		}
	}
	return 0
}
