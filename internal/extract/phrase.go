package extract

import "strings"

// clauseBoundaries are conjunctions and relative markers that open a new
// clause. A phrase is cut before the boundary token.
var clauseBoundaries = map[string]bool{
	"and": true, "but": true, "or": true, "so": true, "yet": true,
	"which": true, "who": true, "whom": true, "whose": true,
	"where": true, "when": true, "while": true, "because": true,
	"although": true, "though": true, "after": true, "before": true,
	"until": true, "unless": true, "since": true,
}

// danglingTokens may never end a phrase: a phrase whose final token is one of
// these is an incomplete fragment.
var danglingTokens = map[string]bool{
	"a": true, "an": true, "the": true,
	"of": true, "for": true, "to": true, "in": true, "on": true,
	"at": true, "by": true, "with": true, "from": true, "into": true,
	"about": true, "over": true, "under": true, "as": true,
	"his": true, "her": true, "their": true, "its": true,
	"and": true, "but": true, "or": true,
}

// pastToBase maps the irregular past-tense verbs seen in event summaries to
// their base form, for "what did X do" phrasing.
var pastToBase = map[string]string{
	"had": "have", "was": "be", "were": "be", "became": "become",
	"went": "go", "left": "leave", "took": "take", "gave": "give",
	"got": "get", "met": "meet", "held": "hold", "kept": "keep",
	"made": "make", "won": "win", "lost": "lose", "began": "begin",
	"fought": "fight", "led": "lead", "grew": "grow", "wore": "wear",
	"came": "come", "saw": "see", "spent": "spend", "taught": "teach",
	"brought": "bring", "sent": "send", "built": "build", "found": "find",
	"fell": "fall", "rose": "rise", "wrote": "write", "flew": "fly",
}

// softPhraseCap is the preferred maximum phrase length in tokens. It is a
// soft cap: when the first clause runs longer, the phrase extends to the
// clause boundary anyway rather than cutting mid-phrase.
const softPhraseCap = 14

// ActionPhrase reduces an event summary to a short verb phrase answering
// "what did <character> do". The cut point is always a clause boundary: the
// end of the sentence, a comma or semicolon, or a conjunction. The phrase is
// complete only if its final token is not a preposition, article, or
// conjunction. When no complete phrase of at least two tokens can be derived,
// the empty string is returned and the caller must use a different template.
func ActionPhrase(summary, characterName string) string {
	words := phraseTokens(summary, characterName)
	if len(words) < 2 {
		return ""
	}
	words[0] = baseVerb(words[0])

	// Candidate cut points: every clause boundary, then sentence end. Take
	// the first one yielding a complete phrase.
	for _, end := range cutPoints(words) {
		phrase := words[:end]
		last := strings.ToLower(strings.Trim(phrase[len(phrase)-1], ",;:."))
		if len(phrase) >= 2 && !danglingTokens[last] {
			return strings.Trim(strings.Join(phrase, " "), ",;:. ")
		}
	}
	return ""
}

// phraseTokens tokenizes the summary, dropping the leading subject (the
// character's name or a pronoun) so the phrase starts at the verb.
func phraseTokens(summary, characterName string) []string {
	s := strings.TrimSpace(summary)

	for _, tok := range mentionTokens(characterName) {
		if tok != "" && strings.HasPrefix(s, tok) {
			s = strings.TrimSpace(s[len(tok):])
			break
		}
	}
	words := strings.Fields(s)

	for len(words) > 0 {
		switch strings.ToLower(words[0]) {
		case "he", "she", "they", "it", "then", "later", "eventually", "also":
			words = words[1:]
		default:
			return words
		}
	}
	return words
}

// cutPoints lists candidate phrase-end indexes in preference order: each
// clause boundary in turn, then the full token run. The soft length cap only
// reorders preferences past the cap; it never truncates inside a clause.
func cutPoints(words []string) []int {
	var within, beyond []int
	add := func(end int) {
		if end <= softPhraseCap {
			within = append(within, end)
		} else {
			beyond = append(beyond, end)
		}
	}
	for i, w := range words {
		bare := strings.ToLower(strings.Trim(w, ",;:."))
		if i > 0 && clauseBoundaries[bare] {
			add(i)
			continue
		}
		if strings.ContainsAny(w, ",;:") && i+1 < len(words) {
			add(i + 1)
		}
	}
	add(len(words))
	return append(within, beyond...)
}

// baseVerb converts a past-tense verb to its base form.
func baseVerb(word string) string {
	lower := strings.ToLower(word)
	if base, ok := pastToBase[lower]; ok {
		return base
	}
	switch {
	case strings.HasSuffix(lower, "ied"):
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "ed"):
		base := lower[:len(lower)-2]
		// Doubled final consonant (planned -> plan).
		if n := len(base); n >= 2 && base[n-1] == base[n-2] && !isVowel(base[n-1]) {
			return base[:n-1]
		}
		// Dropped silent e (served -> serve, received -> receive).
		if endsInSilentE(base) {
			return base + "e"
		}
		return base
	}
	return word
}

// endsInSilentE guesses whether the base form restores a silent e. The
// heuristic covers the verbs that actually occur in event prose.
func endsInSilentE(base string) bool {
	for _, suffix := range []string{"rv", "eiv", "uc", "nc", "rc", "ag", "dg", "rg", "at", "iz", "is", "os", "ut", "ir"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
