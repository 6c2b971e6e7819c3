package markup

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Alynna Nechayev was a Starfleet admiral.",
			want: "Alynna Nechayev was a Starfleet admiral.",
		},
		{
			name: "piped link keeps display",
			in:   "served aboard the [[USS Enterprise-D|Enterprise]]",
			want: "served aboard the Enterprise",
		},
		{
			name: "bare link keeps target",
			in:   "born on [[Earth]]",
			want: "born on Earth",
		},
		{
			name: "nested link in caption",
			in:   "[[File:Nechayev.jpg|Nechayev aboard the [[USS Enterprise-D]]]]portrait",
			want: "portrait",
		},
		{
			name: "uss template with registry suffix",
			in:   "assigned to the {{USS|Enterprise|NCC-1701-D|-D}}",
			want: "assigned to the USS Enterprise-D",
		},
		{
			name: "episode template yields title",
			in:   "promoted in {{TNG|Journey's End}}",
			want: "promoted in Journey's End",
		},
		{
			name: "unknown template dropped",
			in:   "{{cite web|url=x}}He retired.",
			want: "He retired.",
		},
		{
			name: "ref blocks removed",
			in:   "She commanded<ref>DS9 companion</ref> the task force.",
			want: "She commanded the task force.",
		},
		{
			name: "self closing ref removed",
			in:   "Admiral<ref name=a/> Nechayev",
			want: "Admiral Nechayev",
		},
		{
			name: "break becomes separator",
			in:   "Miles O'Brien<br>Kirayoshi O'Brien",
			want: "Miles O'Brien; Kirayoshi O'Brien",
		},
		{
			name: "emphasis stripped",
			in:   "'''Alynna Nechayev''' was an ''admiral''",
			want: "Alynna Nechayev was an admiral",
		},
		{
			name: "whitespace collapsed",
			in:   "two   words\n here",
			want: "two words here",
		},
		{
			name: "nickname parenthetical survives",
			in:   `[[Kirayoshi O'Brien]] ([[nickname]]d "Yoshi")`,
			want: `Kirayoshi O'Brien (nicknamed "Yoshi")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"served aboard the [[USS Enterprise-D|Enterprise]]",
		"assigned to the {{USS|Enterprise|NCC-1701-D|-D}} in {{TNG|Journey's End}}",
		"Miles O'Brien<br>Kirayoshi O'Brien ([[nickname]]d \"Yoshi\")",
		"'''Bold''' and<ref>cite</ref> plain",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
