package extract

import (
	"strings"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// placeholderTokens mark generic stand-in names the wiki uses for unnamed
// relatives. Segments reduced to a placeholder are dropped.
var placeholderTokens = []string{"001", "unknown", "placeholder", "unnamed"}

// ambiguityMarkers annotate alternate-universe duplicates. They are stripped
// from the primary name, not treated as nicknames.
var ambiguityMarkers = []string{"mirror", "alternate", "alternate reality", "hologram", "illusion"}

// relationKindWords are parenthesized annotations that refine the relation
// kind rather than carrying a nickname.
var relationKindWords = map[string]bool{
	"brother": true, "sister": true, "sibling": true,
	"husband": true, "wife": true, "spouse": true,
	"son": true, "daughter": true, "twin": true,
	"adoptive": true, "adopted": true, "half-brother": true, "half-sister": true,
}

// Relations parses a normalized relation-valued field into structured
// records. Segments are split at top level on semicolons and commas; each
// segment yields at most one relation. Source order is preserved, and
// duplicate names with different nicknames are kept distinct - they are two
// claims about the same person.
func Relations(value, kind string) []model.Relation {
	relations := []model.Relation{}

	for _, seg := range splitTop(value, ";,") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		rel, ok := parseRelationSegment(seg, kind)
		if !ok {
			continue
		}
		relations = append(relations, rel)
	}
	return relations
}

func parseRelationSegment(seg, kind string) (model.Relation, bool) {
	rel := model.Relation{Kind: kind}

	// A via/through qualifier records an indirect relation.
	for _, join := range []string{" via ", " through "} {
		if idx := indexFold(seg, join); idx != -1 {
			rel.Via = strings.TrimSpace(trimTrailingPunct(seg[idx+len(join):]))
			seg = strings.TrimSpace(seg[:idx])
			break
		}
	}

	name := seg

	// Parenthesized annotations: relation-kind refinements, ambiguity
	// markers, status notes, or a nickname.
	for {
		open := strings.IndexByte(name, '(')
		if open == -1 {
			break
		}
		closeIdx := strings.IndexByte(name[open:], ')')
		if closeIdx == -1 {
			// Unclosed parenthetical: drop the fragment.
			name = strings.TrimSpace(name[:open])
			break
		}
		annot := strings.TrimSpace(name[open+1 : open+closeIdx])
		name = strings.TrimSpace(name[:open] + name[open+closeIdx+1:])
		classifyAnnotation(annot, &rel)
	}

	// A trailing quoted token adjacent to the name is a nickname:
	// `Kirayoshi O'Brien "Yoshi"`.
	if rel.Nickname == "" {
		name, rel.Nickname = splitQuotedNickname(name)
	}

	name = strings.TrimSpace(trimTrailingPunct(name))
	if name == "" || len(name) < 2 || isPlaceholder(name) {
		return model.Relation{}, false
	}
	rel.Name = name
	return rel, true
}

func classifyAnnotation(annot string, rel *model.Relation) {
	lower := strings.ToLower(annot)
	for _, marker := range ambiguityMarkers {
		if lower == marker {
			return // stripped, not recorded
		}
	}
	if relationKindWords[lower] {
		rel.Kind = lower
		return
	}
	if kind := canonicalKind(lower); kind != "" {
		rel.Kind = kind
		return
	}
	// "paternal grandfather" style compounds also refine the kind.
	if fields := strings.Fields(lower); len(fields) == 2 &&
		(fields[0] == "paternal" || fields[0] == "maternal") {
		rel.Kind = fields[0] + "_" + fields[1]
		return
	}
	if strings.HasPrefix(lower, "deceased") || strings.HasPrefix(lower, "presumed") {
		return // status note, not a nickname
	}
	if quoted := extractQuoted(annot); quoted != "" {
		rel.Nickname = quoted
		return
	}
	if strings.HasPrefix(lower, "nicknamed ") {
		rel.Nickname = strings.TrimSpace(annot[len("nicknamed "):])
		return
	}
	if rel.Nickname == "" && annot != "" {
		rel.Nickname = annot
	}
}

// canonicalKind maps an annotation like "father-in-law" or "maternal
// grandmother" to its extended-relation key, or "" when unrecognized.
func canonicalKind(annot string) string {
	key := strings.ReplaceAll(strings.ReplaceAll(annot, " ", "_"), "-", "_")
	for _, kind := range model.ExtendedRelationKinds {
		if key == kind {
			return kind
		}
	}
	return ""
}

// splitQuotedNickname peels a trailing quoted token off a name.
func splitQuotedNickname(name string) (string, string) {
	trimmed := strings.TrimSpace(name)
	for _, q := range []byte{'"', '\''} {
		if len(trimmed) < 2 || trimmed[len(trimmed)-1] != q {
			continue
		}
		open := strings.LastIndexByte(trimmed[:len(trimmed)-1], q)
		if open <= 0 {
			continue
		}
		nick := trimmed[open+1 : len(trimmed)-1]
		rest := strings.TrimSpace(trimmed[:open])
		if nick != "" && rest != "" {
			return rest, nick
		}
	}
	return name, ""
}

func extractQuoted(s string) string {
	for _, q := range []byte{'"', '\''} {
		open := strings.IndexByte(s, q)
		if open == -1 {
			continue
		}
		closeIdx := strings.IndexByte(s[open+1:], q)
		if closeIdx == -1 {
			continue
		}
		return s[open+1 : open+1+closeIdx]
	}
	return ""
}

func isPlaceholder(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range placeholderTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	// Purely numeric stand-ins.
	digits := true
	for _, r := range lower {
		if r < '0' || r > '9' {
			digits = false
			break
		}
	}
	return digits
}

func trimTrailingPunct(s string) string {
	return strings.TrimRight(s, " .,;:")
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
