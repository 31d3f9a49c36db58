// Package extract locates JSON payloads embedded in assistant prose and
// classifies them into the record kinds the save workflow understands.
//
// Everything here is best-effort: model output is unpredictable free
// text, so parse failures are swallowed and "nothing found" is a normal
// outcome, never an error.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")
	// A brace-delimited block with at least one quoted key.
	bareObject = regexp.MustCompile(`(?s)\{.*"[^"]+"\s*:.*\}`)
	// A bracket-delimited array holding at least one object element.
	bareArray = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)
)

// ExtractJSON scans text for an embedded JSON value. Fenced code blocks
// are tried first, in appearance order; if none parses, two broad bare
// patterns are tried over the whole text. The first candidate that
// parses to a non-null object or array wins.
//
// The second return is false when nothing usable was found.
func ExtractJSON(text string) (any, bool) {
	for _, m := range fencedBlock.FindAllStringSubmatch(text, -1) {
		if v, ok := tryParse(m[1]); ok {
			return v, true
		}
	}

	if m := bareObject.FindString(text); m != "" {
		if v, ok := tryParse(m); ok {
			return v, true
		}
	}
	if m := bareArray.FindString(text); m != "" {
		if v, ok := tryParse(m); ok {
			return v, true
		}
	}

	return nil, false
}

// tryParse accepts only objects and arrays; scalars and nulls embedded in
// prose are almost never payloads we want.
func tryParse(candidate string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}
