// Package extract parses wiki biography markup into typed character records.
// All extraction is field-local and best-effort: a field that cannot be
// recovered resolves to its zero value, never to an error for the record.
package extract

import "strings"

// maxTemplateScan bounds the lookahead when searching for a template's
// closing braces. Unbalanced markup beyond this point is treated as a
// malformed template and the invocation is skipped.
const maxTemplateScan = 20000

// findTemplate locates the named template invocation and returns its body,
// the text between the opening {{Name and the matching }}, tracking nested
// brace depth. Returns ok=false when the template is absent or malformed.
func findTemplate(text, name string) (string, bool) {
	needle := "{{" + strings.ToLower(name)
	lower := strings.ToLower(text)

	start := strings.Index(lower, needle)
	if start == -1 {
		return "", false
	}

	depth := 0
	limit := start + maxTemplateScan
	if limit > len(text) {
		limit = len(text)
	}
	for i := start; i+1 < limit; i++ {
		switch {
		case text[i] == '{' && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}' && text[i+1] == '}':
			depth--
			i++
			if depth == 0 {
				return text[start+2 : i-1], true
			}
		}
	}
	return "", false
}

// splitTop splits s on any byte in seps, but only at zero brace/bracket
// depth, so a separator inside a nested template or link never splits a
// value prematurely.
func splitTop(s string, seps string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && ((s[i] == '{' && s[i+1] == '{') || (s[i] == '[' && s[i+1] == '[')):
			depth++
			i++
		case i+1 < len(s) && ((s[i] == '}' && s[i+1] == '}') || (s[i] == ']' && s[i+1] == ']')):
			if depth > 0 {
				depth--
			}
			i++
		case depth == 0 && strings.IndexByte(seps, s[i]) != -1:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// cutTop splits s at the first top-level occurrence of sep.
func cutTop(s string, sep byte) (string, string, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && ((s[i] == '{' && s[i+1] == '{') || (s[i] == '[' && s[i+1] == '[')):
			depth++
			i++
		case i+1 < len(s) && ((s[i] == '}' && s[i+1] == '}') || (s[i] == ']' && s[i+1] == ']')):
			if depth > 0 {
				depth--
			}
			i++
		case depth == 0 && s[i] == sep:
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
