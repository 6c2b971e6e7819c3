package generate

import "strings"

// Issue tags returned by the unnatural-question detector.
const (
	IssueIncompleteAction = "incomplete_action"
	IssueAwkwardVerbForm  = "awkward_verb_form"
	IssueTooShort         = "too_short"
	IssueRedundantWord    = "redundant_word"
	IssueRejectedPattern  = "rejected_pattern"
)

// fragmentEndings may never precede the question mark: a question ending in
// one of these reads as a truncated phrase.
var fragmentEndings = map[string]bool{
	"a": true, "an": true, "the": true,
	"of": true, "for": true, "to": true, "in": true, "on": true,
	"at": true, "by": true, "with": true, "from": true, "into": true,
	"about": true, "and": true, "or": true, "his": true, "her": true,
	"their": true, "have": true, "had": true, "did": true,
}

// pastForms are verb forms that read wrong after the auxiliary "did".
var pastForms = map[string]bool{
	"was": true, "were": true, "had": true, "held": true,
	"became": true, "grew": true, "took": true, "went": true, "gave": true,
}

// Detector flags questions matching known bad patterns. It is stateless per
// call: flagging never mutates the question, and a clean question yields an
// empty list.
type Detector struct {
	rejected []string // substrings from previously corrected-and-rejected questions
}

func NewDetector(rejected []string) *Detector {
	return &Detector{rejected: rejected}
}

// Flag returns the issue tags for a question, empty when clean.
func (d *Detector) Flag(text string) []string {
	issues := []string{}

	words := strings.Fields(strings.TrimRight(strings.TrimSpace(text), "?"))
	if truncatedDidPhrase(words) {
		issues = append(issues, IssueTooShort)
	}
	if len(words) > 0 && fragmentEndings[strings.ToLower(words[len(words)-1])] {
		issues = append(issues, IssueIncompleteAction)
	}
	for i := 1; i < len(words); i++ {
		if strings.EqualFold(words[i], words[i-1]) {
			issues = append(issues, IssueRedundantWord)
			break
		}
	}
	if awkwardAfterDid(words) {
		issues = append(issues, IssueAwkwardVerbForm)
	}
	lower := strings.ToLower(text)
	for _, pat := range d.rejected {
		if pat != "" && strings.Contains(lower, strings.ToLower(pat)) {
			issues = append(issues, IssueRejectedPattern)
			break
		}
	}
	return issues
}

// truncatedVerbs pair with "did" in cut-off event questions ("What did X
// have?"). Brevity alone is fine: "Who played Odo?" is a complete question.
var truncatedVerbs = map[string]bool{"have": true, "show": true, "display": true}

// truncatedDidPhrase reports a short "did ... have/show/display" question,
// the shape left behind when an action phrase lost its object.
func truncatedDidPhrase(words []string) bool {
	if len(words) >= 8 {
		return false
	}
	hasDid, hasVerb := false, false
	for _, w := range words {
		lw := strings.ToLower(w)
		if lw == "did" {
			hasDid = true
		}
		if truncatedVerbs[lw] {
			hasVerb = true
		}
	}
	return hasDid && hasVerb
}

// awkwardAfterDid reports a past-tense verb trailing the auxiliary "did",
// as in "did Worf ordered". Names are capitalized, so only lowercase words
// in the few slots after "did" are candidates.
func awkwardAfterDid(words []string) bool {
	for i, w := range words {
		if !strings.EqualFold(w, "did") {
			continue
		}
		end := i + 5
		if end > len(words) {
			end = len(words)
		}
		for _, next := range words[i+1 : end] {
			if next != strings.ToLower(next) {
				continue
			}
			if pastForms[next] || (len(next) > 4 && strings.HasSuffix(next, "ed")) {
				return true
			}
			// The first lowercase word after the subject is the verb slot;
			// a clean base form there clears the question.
			return false
		}
	}
	return false
}
