package generate

import (
	"regexp"
	"strings"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// Placeholders recognized in question templates. Learned templates use the
// same vocabulary, so a generalized correction slots straight into the
// synthesis path.
const (
	PlaceholderCharacter = "{character}"
	PlaceholderSeries    = "{series}"
	PlaceholderEpisode   = "{episode}"
	PlaceholderItem      = "{item}"
)

var placeholderRe = regexp.MustCompile(`\{[a-z_]+\}`)

// Fill substitutes every placeholder in the template text. It reports
// ok=false when a placeholder has no value, or when any placeholder remains
// unresolved - a partially filled question must never be emitted.
func Fill(template string, vars map[string]string) (string, bool) {
	out := template
	for key, val := range vars {
		if val == "" {
			continue
		}
		out = strings.ReplaceAll(out, key, val)
	}
	if placeholderRe.MatchString(out) {
		return "", false
	}
	return out, true
}

// builtinEventTemplates are the default phrasings for event-derived
// questions, used when no learned template applies.
var builtinEventTemplates = map[model.QuestionType]string{
	model.QuestionWhich: `In which episode did {character} {item}?`,
	model.QuestionWhat:  `What did {character} do in "{episode}"?`,
}

// objectContexts are the trait contexts that phrase naturally as an object
// question. Objects found via naming patterns are covered by nickname
// questions instead.
var objectContexts = map[string]bool{
	"fondness":   true,
	"preference": true,
	"liking":     true,
	"interest":   true,
}
