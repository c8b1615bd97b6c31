package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded reply. A non-nil error rejects it.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object of a model reply into T.
// Prose or markdown fences around the object are ignored, and // or /* */
// comments and trailing commas inside it are dropped before decoding.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	obj := firstObject(clean(raw[start:]))
	if obj == "" {
		return zero, fmt.Errorf("%w: unbalanced JSON object in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// literal follows JSON string literals one byte at a time.
type literal struct{ in, escaped bool }

// step consumes c and reports whether c belongs to a string literal,
// quotes included.
func (l *literal) step(c byte) bool {
	switch {
	case l.escaped:
		l.escaped = false
		return true
	case l.in && c == '\\':
		l.escaped = true
		return true
	case c == '"':
		l.in = !l.in
		return true
	}
	return l.in
}

// clean drops comments and trailing commas outside string literals.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var lit literal
	for i := 0; i < len(s); i++ {
		c := s[i]
		if lit.step(c) {
			b.WriteByte(c)
			continue
		}
		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 3
		case c == ',' && closes(s[i+1:]):
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closes reports whether rest starts, after whitespace, with ] or }.
func closes(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return rest != "" && (rest[0] == ']' || rest[0] == '}')
}

// firstObject returns the balanced object starting at s[0], or "".
func firstObject(s string) string {
	var lit literal
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if lit.step(c) {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
