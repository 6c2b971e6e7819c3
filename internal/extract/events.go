package extract

import (
	"regexp"
	"strings"

	"github.com/lorefoundry/triviaforge/internal/markup"
	"github.com/lorefoundry/triviaforge/internal/model"
)

// episodeMarkerRe matches inline episode templates like {{DS9|Time's Orphan}}.
var episodeMarkerRe = regexp.MustCompile(`(?i)\{\{(` + strings.Join(model.SeriesCodes, "|") + `)\|([^|}]+)[^}]*\}\}`)

// eventLabels maps keywords in an event sentence to a coarse label. First
// match wins; order matters for overlapping vocabularies.
var eventLabels = []struct {
	keyword string
	label   string
}{
	{"promot", "promotion"},
	{"married", "marriage"},
	{"wedding", "marriage"},
	{"died", "death"},
	{"killed", "death"},
	{"born", "birth"},
	{"birth", "birth"},
	{"assigned", "assignment"},
	{"transferred", "assignment"},
	{"joined", "assignment"},
	{"commanded", "command"},
	{"captured", "capture"},
	{"rescued", "rescue"},
	{"awarded", "award"},
}

// Events scans the narrative text for sentences mentioning the character and
// turns each into an event record. The full sentence is kept as the summary;
// the nearest preceding episode marker supplies episode and series, and an
// event with no resolvable marker is still emitted - the event itself is a
// fact. At most limit events are returned (0 means unlimited).
func Events(text, characterName string, limit int) []model.Event {
	events := []model.Event{}
	seen := make(map[string]bool)

	nameParts := mentionTokens(characterName)

	var curEpisode, curSeries string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "=") {
			continue
		}
		line = strings.TrimLeft(line, "*# ")

		// A sentence opening with a pronoun continues the subject of the
		// previous sentence in the same paragraph.
		prevMentioned := false
		for _, sentence := range splitSentences(line) {
			// Markers inside the sentence update the running context
			// before the sentence is judged, so an in-sentence citation
			// attaches to its own event.
			if m := episodeMarkerRe.FindStringSubmatch(sentence); m != nil {
				curSeries = strings.ToUpper(m[1])
				curEpisode = strings.TrimSpace(m[2])
			}

			mentioned := mentionsAny(sentence, nameParts) ||
				(prevMentioned && startsWithPronoun(sentence))
			prevMentioned = mentioned
			if !mentioned {
				continue
			}
			summary := markup.Normalize(sentence)
			if summary == "" || seen[summary] {
				continue
			}
			seen[summary] = true

			ev := model.Event{
				Label:   labelFor(summary),
				Summary: summary,
			}
			if curEpisode != "" {
				ep, sr := curEpisode, curSeries
				ev.Episode = &ep
				ev.Series = &sr
			}
			events = append(events, ev)
			if limit > 0 && len(events) >= limit {
				return events
			}
		}
	}
	return events
}

// splitSentences splits prose on sentence-final periods at zero markup
// depth. Periods inside templates and links (episode titles, registry
// numbers) do not terminate a sentence.
func splitSentences(line string) []string {
	var sentences []string
	depth := 0
	last := 0
	for i := 0; i < len(line); i++ {
		switch {
		case i+1 < len(line) && ((line[i] == '{' && line[i+1] == '{') || (line[i] == '[' && line[i+1] == '[')):
			depth++
			i++
		case i+1 < len(line) && ((line[i] == '}' && line[i+1] == '}') || (line[i] == ']' && line[i+1] == ']')):
			if depth > 0 {
				depth--
			}
			i++
		case depth == 0 && line[i] == '.' && (i+1 == len(line) || line[i+1] == ' '):
			sentences = append(sentences, strings.TrimSpace(line[last:i+1]))
			last = i + 1
		}
	}
	if tail := strings.TrimSpace(line[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// mentionTokens returns the name fragments that count as a mention of the
// subject: the full name plus any component long enough to be unambiguous.
func mentionTokens(name string) []string {
	tokens := []string{name}
	for _, part := range strings.Fields(name) {
		part = strings.Trim(part, "\"'")
		if len(part) >= 3 && part != name {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

func mentionsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

func startsWithPronoun(sentence string) bool {
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return false
	}
	switch strings.ToLower(words[0]) {
	case "he", "she", "they":
		return true
	}
	return false
}

func labelFor(summary string) string {
	lower := strings.ToLower(summary)
	for _, e := range eventLabels {
		if strings.Contains(lower, e.keyword) {
			return e.label
		}
	}
	return "event"
}
