package generate

import (
	"reflect"
	"testing"
)

func TestDetectorFlag(t *testing.T) {
	d := NewDetector([]string{"have a particular fondness?"})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "clean question",
			text: "Who was Miles O'Brien's spouse?",
			want: []string{},
		},
		{
			name: "dangling preposition",
			text: "What did Nechayev have a particular fondness for?",
			want: []string{IssueIncompleteAction},
		},
		{
			name: "truncated did phrase",
			text: "Did Odo have a fondness?",
			want: []string{IssueTooShort},
		},
		{
			name: "short but complete",
			text: "Who played Odo?",
			want: []string{},
		},
		{
			name: "short species question",
			text: "What species was Worf?",
			want: []string{},
		},
		{
			name: "duplicate word",
			text: "In which episode did did Nechayev appear?",
			want: []string{IssueRedundantWord},
		},
		{
			name: "past tense after did",
			text: "In which episode did Worf ordered the attack?",
			want: []string{IssueAwkwardVerbForm},
		},
		{
			name: "double auxiliary",
			text: "What did Molly O'Brien was known for doing?",
			want: []string{IssueAwkwardVerbForm},
		},
		{
			name: "rejected pattern",
			text: "In which episode did Alynna Nechayev have a particular fondness?",
			want: []string{IssueRejectedPattern},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Flag(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flag(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectorStateless(t *testing.T) {
	d := NewDetector(nil)
	text := "What did Nechayev have a fondness for?"
	first := d.Flag(text)
	second := d.Flag(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated flagging diverged: %v then %v", first, second)
	}
}
