// Package generate synthesizes trivia questions from character records and
// scores their difficulty. Scoring is transparent and point-based: a base
// weight per fact category plus fixed specificity adjustments, never a model
// call.
package generate

import (
	"strings"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// baseWeights order the fact categories from common knowledge to obscure
// detail. Identity facts are near zero; nicknames and associated objects are
// the hardest to recall.
var baseWeights = map[model.SourceCategory]float64{
	model.SourceIdentity:       0.05,
	model.SourceSpecies:        0.10,
	model.SourcePortrayal:      0.15,
	model.SourceAppearance:     0.20,
	model.SourceBirth:          0.35,
	model.SourceFamily:         0.40,
	model.SourceLocation:       0.45,
	model.SourceCharacteristic: 0.55,
	model.SourceEvent:          0.60,
	model.SourceExtendedFamily: 0.70,
	model.SourceObject:         0.70,
	model.SourceNickname:       0.75,
}

// Specificity adjustments. Bonuses are additive and never negative, so a
// question can only get harder as it names more context.
const (
	episodeBonus       = 0.10
	seriesBonus        = 0.05
	shortAnswerPenalty = 0.10
)

// Score rates a question's difficulty in [0, 1].
func Score(q *model.Question) float64 {
	score := baseWeights[q.Source]

	if q.Episode != "" {
		score += episodeBonus
	}
	if q.Series != "" {
		score += seriesBonus
	}
	if len(strings.Fields(q.Answer)) == 1 {
		score -= shortAnswerPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// LevelOf buckets a score into the three difficulty levels.
func LevelOf(score float64) model.Difficulty {
	switch {
	case score < 0.34:
		return model.DifficultyEasy
	case score < 0.67:
		return model.DifficultyMedium
	default:
		return model.DifficultyHard
	}
}
