// Package markup strips wiki templating syntax from page text while
// preserving link display text and emphasis content. Normalization is
// best-effort: malformed markup is stripped as far as possible, never
// rejected.
package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// Normalize reduces wiki markup to plain text. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Line breaks inside list-valued fields act as separators. Convert them
	// before tag stripping so the boundary survives.
	text = replaceBreaks(text)

	text = stripRefs(text)
	text = resolveTemplates(text)
	text = resolveLinks(text)
	text = stripHTML(text)
	text = stripEmphasis(text)
	text = stripStray(text)

	return collapseWhitespace(text)
}

var breakForms = []string{"<br/>", "<br />", "<br>", "<BR>", "<Br>"}

func replaceBreaks(s string) string {
	for _, form := range breakForms {
		s = strings.ReplaceAll(s, form, "; ")
	}
	return s
}

// stripRefs removes <ref ...>...</ref> blocks and self-closing <ref/> tags
// including their contents, which are citations, not prose.
func stripRefs(s string) string {
	var b strings.Builder
	for {
		lower := strings.ToLower(s)
		start := strings.Index(lower, "<ref")
		if start == -1 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		rest := s[start:]
		restLower := lower[start:]

		// Self-closing form ends at the first "/>" before any ">".
		gt := strings.Index(restLower, ">")
		if gt == -1 {
			// Unterminated tag: drop the remainder of the tag text only.
			break
		}
		if gt > 0 && restLower[gt-1] == '/' {
			s = rest[gt+1:]
			continue
		}
		end := strings.Index(restLower, "</ref>")
		if end == -1 {
			// Unclosed ref swallows nothing further; drop the open tag only.
			s = rest[gt+1:]
			continue
		}
		s = rest[end+len("</ref>"):]
	}
	return b.String()
}

// resolveTemplates replaces {{...}} invocations with their useful content:
// episode templates yield the episode name, USS templates yield the ship
// name, anything else is dropped. Innermost templates are resolved first so
// nesting unwinds naturally.
func resolveTemplates(s string) string {
	for i := 0; i < 32; i++ { // depth bound; malformed nesting gives up
		start, end := innermostBraces(s)
		if start == -1 {
			break
		}
		inner := s[start+2 : end]
		s = s[:start] + templateContent(inner) + s[end+2:]
	}
	return s
}

// innermostBraces finds a {{...}} span containing no nested {{.
func innermostBraces(s string) (int, int) {
	end := strings.Index(s, "}}")
	if end == -1 {
		return -1, -1
	}
	start := strings.LastIndex(s[:end], "{{")
	if start == -1 {
		return -1, -1
	}
	return start, end
}

// templateContent extracts display text from a template invocation body.
func templateContent(inner string) string {
	parts := strings.Split(inner, "|")
	name := strings.TrimSpace(parts[0])

	if strings.EqualFold(name, "USS") && len(parts) > 1 {
		ship := "USS " + strings.TrimSpace(parts[1])
		if last := strings.TrimSpace(parts[len(parts)-1]); len(parts) > 2 && strings.HasPrefix(last, "-") {
			ship += last
		}
		return ship
	}

	for _, code := range model.SeriesCodes {
		if strings.EqualFold(name, code) && len(parts) > 1 {
			return strings.TrimSpace(parts[1])
		}
	}

	return ""
}

// resolveLinks replaces [[target|display]] with display and [[target]] with
// target. File and image links are dropped entirely, caption and all.
func resolveLinks(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "[[")
		if start == -1 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		rest := s[start+2:]

		end := matchingClose(rest)
		if end == -1 {
			// Unmatched open bracket: drop it and keep going.
			s = rest
			continue
		}
		inner := rest[:end]
		s = rest[end+2:]

		lower := strings.ToLower(inner)
		if strings.HasPrefix(lower, "file:") || strings.HasPrefix(lower, "image:") {
			continue
		}
		b.WriteString(LinkDisplay(inner))
	}
	return b.String()
}

// matchingClose returns the index of the ]] closing the link opened just
// before s, accounting for nested [[...]] inside captions.
func matchingClose(s string) int {
	depth := 1
	for i := 0; i+1 < len(s); i++ {
		switch {
		case s[i] == '[' && s[i+1] == '[':
			depth++
			i++
		case s[i] == ']' && s[i+1] == ']':
			depth--
			if depth == 0 {
				return i
			}
			i++
		}
	}
	return -1
}

// LinkDisplay extracts the display segment of a wikilink body:
// "target|display" yields display, plain "target" yields target.
func LinkDisplay(inner string) string {
	if idx := strings.IndexByte(inner, '|'); idx != -1 {
		return strings.TrimSpace(inner[idx+1:])
	}
	return strings.TrimSpace(inner)
}

// stripHTML drops remaining HTML tags, keeping text content. Script and
// style bodies are discarded.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder
	tz := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		tt := tz.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tz.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(tz.Text())
			}
		}
	}
}

// stripEmphasis removes bold/italic quote runs, keeping the content.
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "'''", "")
	s = strings.ReplaceAll(s, "''", "")
	return s
}

// stripStray removes unpaired brace/bracket leftovers from malformed markup.
func stripStray(s string) string {
	for _, tok := range []string{"{{", "}}", "[[", "]]"} {
		s = strings.ReplaceAll(s, tok, "")
	}
	return s
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
