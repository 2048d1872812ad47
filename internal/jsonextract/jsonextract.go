// Package jsonextract pulls the first well-formed JSON array or object out
// of free-form model output, such as prose with a fenced ```json block.
package jsonextract

import (
	"encoding/json"
	"strings"

	"fjacquet/spend-insights/internal/parsererror"
)

const snippetLength = 80

// Extract returns the first balanced, valid JSON array or object in text.
func Extract(text string) (json.RawMessage, error) {
	return extract(text, "[{")
}

// ExtractArray is Extract restricted to arrays.
func ExtractArray(text string) (json.RawMessage, error) {
	return extract(text, "[")
}

// ExtractObject is Extract restricted to objects.
func ExtractObject(text string) (json.RawMessage, error) {
	return extract(text, "{")
}

func extract(text, openers string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &parsererror.ExtractionError{Reason: "empty response"}
	}
	if strings.ContainsRune(openers, rune(trimmed[0])) && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	for i := 0; i < len(text); i++ {
		if !strings.ContainsRune(openers, rune(text[i])) {
			continue
		}
		end := balancedEnd(text, i)
		if end < 0 {
			continue
		}
		if candidate := text[i:end]; json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, &parsererror.ExtractionError{
		Snippet: parsererror.Snip(trimmed, snippetLength),
		Reason:  "no JSON " + kind(openers) + " found",
	}
}

// balancedEnd returns the index just past the bracket that closes the one
// at start, or -1 when brackets are mismatched or never closed. Brackets
// inside string literals are ignored.
func balancedEnd(text string, start int) int {
	var stack []byte
	inString, escaped := false, false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func kind(openers string) string {
	switch openers {
	case "[":
		return "array"
	case "{":
		return "object"
	default:
		return "array or object"
	}
}
