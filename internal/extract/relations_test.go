package extract

import (
	"reflect"
	"testing"

	"github.com/lorefoundry/triviaforge/internal/model"
)

func TestRelations(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  string
		want  []model.Relation
	}{
		{
			name:  "single name",
			value: "Keiko O'Brien",
			kind:  "spouse",
			want:  []model.Relation{{Name: "Keiko O'Brien", Kind: "spouse"}},
		},
		{
			name:  "semicolon list preserves order",
			value: "Molly O'Brien; Kirayoshi O'Brien",
			kind:  "child",
			want: []model.Relation{
				{Name: "Molly O'Brien", Kind: "child"},
				{Name: "Kirayoshi O'Brien", Kind: "child"},
			},
		},
		{
			name:  "parenthesized nickname",
			value: `Kirayoshi O'Brien (nicknamed "Yoshi")`,
			kind:  "sibling",
			want:  []model.Relation{{Name: "Kirayoshi O'Brien", Kind: "sibling", Nickname: "Yoshi"}},
		},
		{
			name:  "trailing quoted nickname",
			value: `Kirayoshi O'Brien "Yoshi"`,
			kind:  "sibling",
			want:  []model.Relation{{Name: "Kirayoshi O'Brien", Kind: "sibling", Nickname: "Yoshi"}},
		},
		{
			name:  "relation kind refinement",
			value: "Sergey Rozhenko (adoptive)",
			kind:  "father",
			want:  []model.Relation{{Name: "Sergey Rozhenko", Kind: "adoptive"}},
		},
		{
			name:  "extended kind annotation",
			value: "Rodney (maternal grandfather)",
			kind:  "",
			want:  []model.Relation{{Name: "Rodney", Kind: "maternal_grandfather"}},
		},
		{
			name:  "ambiguity marker stripped",
			value: "Benjamin Sisko (mirror)",
			kind:  "spouse",
			want:  []model.Relation{{Name: "Benjamin Sisko", Kind: "spouse"}},
		},
		{
			name:  "via qualifier",
			value: "Rom through marriage",
			kind:  "brother_in_law",
			want:  []model.Relation{{Name: "Rom", Kind: "brother_in_law", Via: "marriage"}},
		},
		{
			name:  "placeholder dropped",
			value: "001; unknown; Worf",
			kind:  "sibling",
			want:  []model.Relation{{Name: "Worf", Kind: "sibling"}},
		},
		{
			name:  "duplicate names with distinct nicknames kept",
			value: `Kirayoshi O'Brien ("Yoshi"); Kirayoshi O'Brien ("Kiri")`,
			kind:  "child",
			want: []model.Relation{
				{Name: "Kirayoshi O'Brien", Kind: "child", Nickname: "Yoshi"},
				{Name: "Kirayoshi O'Brien", Kind: "child", Nickname: "Kiri"},
			},
		},
		{
			name:  "empty value",
			value: "",
			kind:  "child",
			want:  []model.Relation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relations(tt.value, tt.kind)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Relations(%q, %q) = %+v, want %+v", tt.value, tt.kind, got, tt.want)
			}
		})
	}
}
