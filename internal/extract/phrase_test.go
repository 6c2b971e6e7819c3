package extract

import (
	"strings"
	"testing"
)

func TestActionPhrase(t *testing.T) {
	tests := []struct {
		name      string
		summary   string
		character string
		want      string
	}{
		{
			name:      "full prepositional complement kept",
			summary:   "had a particular fondness for Bularian canapés",
			character: "Alynna Nechayev",
			want:      "have a particular fondness for Bularian canapés",
		},
		{
			name:      "subject name stripped",
			summary:   "Nechayev ordered Picard on a covert mission.",
			character: "Alynna Nechayev",
			want:      "order Picard on a covert mission",
		},
		{
			name:      "pronoun subject stripped",
			summary:   "She held the rank of vice admiral.",
			character: "Alynna Nechayev",
			want:      "hold the rank of vice admiral",
		},
		{
			name:      "cut before conjunction clause",
			summary:   "commanded the task force and later retired to Earth",
			character: "Alynna Nechayev",
			want:      "command the task force",
		},
		{
			name:      "cut at comma",
			summary:   "served aboard the station, where the crew respected her",
			character: "Kira Nerys",
			want:      "serve aboard the station",
		},
		{
			name:      "single token too short",
			summary:   "retired.",
			character: "Alynna Nechayev",
			want:      "",
		},
		{
			name:      "no complete phrase",
			summary:   "was fond of",
			character: "Alynna Nechayev",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActionPhrase(tt.summary, tt.character)
			if got != tt.want {
				t.Errorf("ActionPhrase(%q) = %q, want %q", tt.summary, got, tt.want)
			}
		})
	}
}

// A derived phrase never ends in a preposition, article, or conjunction,
// whatever the input shape.
func TestActionPhraseNeverDangles(t *testing.T) {
	summaries := []string{
		"had a particular fondness for Bularian canapés",
		"had a particular fondness for",
		"moved to the planet of",
		"was promoted to the rank of admiral and",
		"gave the order to fire on the",
	}
	for _, s := range summaries {
		phrase := ActionPhrase(s, "Alynna Nechayev")
		if phrase == "" {
			continue
		}
		words := strings.Fields(phrase)
		last := strings.ToLower(words[len(words)-1])
		if danglingTokens[last] {
			t.Errorf("ActionPhrase(%q) = %q ends in dangling token %q", s, phrase, last)
		}
	}
}
