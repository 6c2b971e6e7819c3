package extract

import (
	"regexp"
	"strings"
)

// ItemPattern pairs a trait phrasing with the regexp capturing the specific
// item it names. The same patterns drive object/characteristic extraction
// here and contextual-item recovery when a correction introduces a detail the
// original question lacked.
type ItemPattern struct {
	Name string
	Re   *regexp.Regexp
}

// itemExpr captures a short noun phrase: up to four capitalized-or-plain
// words, stopping before punctuation.
const itemExpr = `([\p{L}][\p{L}'\x60-]*(?:\s[\p{L}][\p{L}'\x60-]*){0,3})`

// ItemPatterns lists the trait phrasings recognized in narrative prose, in
// match-priority order.
var ItemPatterns = []ItemPattern{
	{"fondness", regexp.MustCompile(`(?i)\bfondness for ` + itemExpr)},
	{"preference", regexp.MustCompile(`(?i)\bpreference for ` + itemExpr)},
	{"interest", regexp.MustCompile(`(?i)\binterest in ` + itemExpr)},
	{"liking", regexp.MustCompile(`(?i)\bliking for ` + itemExpr)},
	{"named", regexp.MustCompile(`(?i)\bnamed "?` + itemExpr + `"?`)},
	{"nicknamed", regexp.MustCompile(`(?i)\bnicknamed "?` + itemExpr + `"?`)},
}

// FindItem applies the item patterns to a sentence and returns the first
// captured item plus the pattern that matched. Trailing function words left
// by the capture window are trimmed.
func FindItem(sentence string) (item string, pattern *ItemPattern) {
	for i := range ItemPatterns {
		m := ItemPatterns[i].Re.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}
		item = trimItemTail(m[1])
		if item != "" {
			return item, &ItemPatterns[i]
		}
	}
	return "", nil
}

// trimItemTail drops trailing words that the capture window grabbed past the
// noun phrase, like a conjunction opening the next clause.
func trimItemTail(item string) string {
	words := strings.Fields(item)
	for len(words) > 0 {
		last := strings.ToLower(words[len(words)-1])
		if clauseBoundaries[last] || danglingTokens[last] {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	return strings.Join(words, " ")
}
