package generate

import (
	"testing"

	"github.com/lorefoundry/triviaforge/internal/model"
)

func TestScoreOrdering(t *testing.T) {
	// Identity facts must score below obscure ones at equal specificity.
	identity := Score(&model.Question{Source: model.SourceIdentity, Answer: "two words"})
	nickname := Score(&model.Question{Source: model.SourceNickname, Answer: "two words"})
	if identity >= nickname {
		t.Errorf("identity %f should score below nickname %f", identity, nickname)
	}
}

func TestScoreSpecificityMonotonic(t *testing.T) {
	for src := range baseWeights {
		base := model.Question{Source: src, Answer: "some longer answer"}
		plain := Score(&base)

		withSeries := base
		withSeries.Series = "TNG"
		if Score(&withSeries) < plain {
			t.Errorf("%s: naming a series lowered the score", src)
		}

		withEpisode := withSeries
		withEpisode.Episode = "The Chase"
		if Score(&withEpisode) < Score(&withSeries) {
			t.Errorf("%s: naming an episode lowered the score", src)
		}
	}
}

func TestScoreShortAnswerPenalty(t *testing.T) {
	long := Score(&model.Question{Source: model.SourceFamily, Answer: "Miles O'Brien"})
	short := Score(&model.Question{Source: model.SourceFamily, Answer: "Worf"})
	if short >= long {
		t.Errorf("single-word answer %f should score below multi-word %f", short, long)
	}
}

func TestScoreBounds(t *testing.T) {
	q := model.Question{Source: model.SourceNickname, Answer: "a long answer here", Series: "DS9", Episode: "Time's Orphan"}
	if s := Score(&q); s < 0 || s > 1 {
		t.Errorf("score %f out of [0,1]", s)
	}
	low := model.Question{Source: model.SourceIdentity, Answer: "Worf"}
	if s := Score(&low); s < 0 {
		t.Errorf("score %f below zero", s)
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Difficulty
	}{
		{0.0, model.DifficultyEasy},
		{0.33, model.DifficultyEasy},
		{0.34, model.DifficultyMedium},
		{0.5, model.DifficultyMedium},
		{0.66, model.DifficultyMedium},
		{0.67, model.DifficultyHard},
		{1.0, model.DifficultyHard},
	}
	for _, tt := range tests {
		if got := LevelOf(tt.score); got != tt.want {
			t.Errorf("LevelOf(%f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
