// Package learn generalizes human corrections of synthesized questions into
// reusable templates and persists them across runs.
package learn

import (
	"errors"
	"strings"

	"github.com/lorefoundry/triviaforge/internal/extract"
	"github.com/lorefoundry/triviaforge/internal/generate"
	"github.com/lorefoundry/triviaforge/internal/model"
)

// Context carries the facts the corrected question was built from. The
// learner masks these out of the corrected text to obtain the template.
type Context struct {
	Character    string
	Series       string // series code, e.g. TNG
	Episode      string
	QuestionType model.QuestionType
	Source       model.SourceCategory
}

var errEmptyCorrection = errors.New("original and corrected question required")

// Learn turns one correction into a pattern. Context fields are masked in
// sequence (character, series, episode), then the contextual item is located
// via the trait patterns and masked as {item}. The generalization is
// verified by refilling the template: if the item placeholder breaks the
// byte-for-byte round trip it is abandoned, and if even the context-only
// template fails verification the correction is stored without placeholders
// rather than with a template that cannot reproduce it.
func Learn(original, corrected string, ctx Context) (model.CorrectionPattern, error) {
	if strings.TrimSpace(original) == "" || strings.TrimSpace(corrected) == "" {
		return model.CorrectionPattern{}, errEmptyCorrection
	}

	pattern := model.CorrectionPattern{
		Original:     generalizeContext(original, ctx),
		Corrected:    corrected,
		QuestionType: ctx.QuestionType,
		Source:       ctx.Source,
		Uses:         0,
	}

	base := generalizeContext(corrected, ctx)
	vars := map[string]string{
		generate.PlaceholderCharacter: ctx.Character,
		generate.PlaceholderSeries:    ctx.Series,
		generate.PlaceholderEpisode:   ctx.Episode,
	}

	// Try the richer template first: context plus contextual item.
	if item, ip := extract.FindItem(corrected); item != "" {
		withItem := strings.ReplaceAll(base, item, generate.PlaceholderItem)
		itemVars := map[string]string{generate.PlaceholderItem: item}
		for k, v := range vars {
			itemVars[k] = v
		}
		if refilled, ok := generate.Fill(withItem, itemVars); ok && refilled == corrected {
			pattern.Generalized = withItem
			pattern.ContextualItem = item
			pattern.ItemPattern = ip.Re.String()
			return pattern, nil
		}
	}

	if refilled, ok := generate.Fill(base, vars); ok && refilled == corrected {
		pattern.Generalized = base
		return pattern, nil
	}

	// No verifiable generalization: keep the literal correction.
	pattern.Generalized = corrected
	return pattern, nil
}

// generalizeContext masks the known context fields in the text. The
// character mask covers the possessive form by plain substring replacement;
// the series mask covers both the code and the full series name.
func generalizeContext(text string, ctx Context) string {
	if ctx.Character != "" {
		text = strings.ReplaceAll(text, ctx.Character, generate.PlaceholderCharacter)
	}
	if ctx.Series != "" {
		if full := model.SeriesNames[ctx.Series]; full != "" {
			text = strings.ReplaceAll(text, full, generate.PlaceholderSeries)
		}
		text = replaceWord(text, ctx.Series, generate.PlaceholderSeries)
	}
	if ctx.Episode != "" {
		text = strings.ReplaceAll(text, ctx.Episode, generate.PlaceholderEpisode)
	}
	return text
}

// replaceWord substitutes whole-word occurrences only, so a short series
// code never matches inside another word.
func replaceWord(text, word, repl string) string {
	if word == "" {
		return text
	}
	var b strings.Builder
	for {
		idx := strings.Index(text, word)
		if idx == -1 {
			b.WriteString(text)
			return b.String()
		}
		before := idx == 0 || !isWordByte(text[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(text) || !isWordByte(text[afterIdx])
		b.WriteString(text[:idx])
		if before && after {
			b.WriteString(repl)
		} else {
			b.WriteString(word)
		}
		text = text[afterIdx:]
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
