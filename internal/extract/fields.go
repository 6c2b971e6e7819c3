package extract

import (
	"strings"

	"github.com/lorefoundry/triviaforge/internal/markup"
)

// sidebarTemplates are the keyed metadata blocks a biography page may carry,
// tried in order.
var sidebarTemplates = []string{"sidebar individual", "sidebar character", "infobox person"}

// Fields parses the named template invocation into a field-name -> value
// mapping. Values are normalized to plain text. An absent or malformed
// template yields an empty mapping, not an error: every field is optional
// downstream.
func Fields(text, templateName string) map[string]string {
	fields := make(map[string]string)

	body, ok := findTemplate(text, templateName)
	if !ok {
		return fields
	}

	segments := splitTop(body, "|")
	// segments[0] is the template name itself.
	for _, seg := range segments[1:] {
		key, value, found := cutTop(seg, '=')
		if !found {
			continue // positional parameter, not a keyed field
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		fields[key] = markup.Normalize(value)
	}
	return fields
}

// SidebarFields returns the field mapping of the first sidebar/infobox
// template present on the page.
func SidebarFields(text string) map[string]string {
	for _, name := range sidebarTemplates {
		if fields := Fields(text, name); len(fields) > 0 {
			return fields
		}
	}
	return map[string]string{}
}

// RawField returns the unnormalized value of a field in the named template,
// for callers that need to inspect markup structure before stripping.
func RawField(text, templateName, fieldName string) string {
	body, ok := findTemplate(text, templateName)
	if !ok {
		return ""
	}
	for _, seg := range splitTop(body, "|")[1:] {
		key, value, found := cutTop(seg, '=')
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), fieldName) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
