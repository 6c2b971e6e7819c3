package extract

import (
	"testing"

	"github.com/lorefoundry/triviaforge/internal/model"
)

const biographyPage = `{{sidebar individual
|name = Molly O'Brien
|species = [[Human]]
|status = Active
|datestatus = 2375
|born = 2368, {{USS|Enterprise|NCC-1701-D|-D}}
|father = [[Miles O'Brien]]
|mother = [[Keiko O'Brien]]
|sibling = [[Kirayoshi O'Brien]] ([[nickname]]d "Yoshi")
|relative = [[Michael O'Brien]] (paternal grandfather)
|actor = [[Hana Hatae]]<br>[[Michelle Krusiec]] (adult)
}}
'''Molly O'Brien''' was the daughter of Miles and Keiko O'Brien.

In {{TNG|Disaster}}, Molly was born aboard the {{USS|Enterprise|NCC-1701-D|-D}}. She had a particular fondness for [[Lupi|wooden dolls]].

In {{DS9|Time's Orphan}}, Molly fell through a time portal. She lived on [[Golana]] in 2374.`

func TestExtract(t *testing.T) {
	ex := NewExtractor(model.ExtractConfig{MaxEventsPerRecord: 10, MaxEpisodesPerSeries: 20})
	rec, err := ex.Extract(&model.Page{Title: "Molly O'Brien", Text: biographyPage})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if rec.Species == nil || *rec.Species != "Human" {
		t.Errorf("species = %v, want Human", rec.Species)
	}
	if rec.Status == nil || *rec.Status != "Active (2375)" {
		t.Errorf("status = %v, want Active (2375)", rec.Status)
	}
	if rec.Born.Year == nil || *rec.Born.Year != 2368 {
		t.Errorf("birth year = %v, want 2368", rec.Born.Year)
	}
	if rec.Born.Location == nil || *rec.Born.Location != "USS Enterprise-D" {
		t.Errorf("birth location = %v, want USS Enterprise-D", rec.Born.Location)
	}

	if rec.Family.Father == nil || rec.Family.Father.Name != "Miles O'Brien" {
		t.Errorf("father = %+v", rec.Family.Father)
	}
	if rec.Family.Mother == nil || rec.Family.Mother.Name != "Keiko O'Brien" {
		t.Errorf("mother = %+v", rec.Family.Mother)
	}
	if len(rec.Family.Siblings) != 1 {
		t.Fatalf("siblings = %+v, want one", rec.Family.Siblings)
	}
	sib := rec.Family.Siblings[0]
	if sib.Name != "Kirayoshi O'Brien" || sib.Nickname != "Yoshi" {
		t.Errorf("sibling = %+v, want Kirayoshi O'Brien nicknamed Yoshi", sib)
	}

	gf := rec.Family.Extended["paternal_grandfather"]
	if len(gf) != 1 || gf[0].Name != "Michael O'Brien" {
		t.Errorf("paternal grandfather = %+v", gf)
	}

	if len(rec.PortrayedBy) != 2 {
		t.Fatalf("portrayals = %+v, want two", rec.PortrayedBy)
	}
	if rec.PortrayedBy[0] != (model.Portrayal{Actor: "Hana Hatae", Role: "primary"}) {
		t.Errorf("first portrayal = %+v", rec.PortrayedBy[0])
	}
	if rec.PortrayedBy[1] != (model.Portrayal{Actor: "Michelle Krusiec", Role: "adult"}) {
		t.Errorf("second portrayal = %+v", rec.PortrayedBy[1])
	}

	if got := rec.Appearances["TNG"]; len(got) != 1 || got[0] != "Disaster" {
		t.Errorf("TNG appearances = %v", got)
	}
	if got := rec.Appearances["DS9"]; len(got) != 1 || got[0] != "Time's Orphan" {
		t.Errorf("DS9 appearances = %v", got)
	}
	// Every series code is present even when empty.
	for _, code := range model.SeriesCodes {
		if _, ok := rec.Appearances[code]; !ok {
			t.Errorf("appearances missing series key %s", code)
		}
	}

	if len(rec.NotableEvents) == 0 {
		t.Fatal("no notable events extracted")
	}
	if len(rec.Characteristics) == 0 {
		t.Error("no characteristics extracted")
	}
	foundDolls := false
	for _, obj := range rec.Objects {
		if obj.Name == "wooden dolls" && obj.Context == "fondness" {
			foundDolls = true
		}
	}
	if !foundDolls {
		t.Errorf("objects = %+v, want wooden dolls via fondness", rec.Objects)
	}

	if len(rec.Locations) != 1 || rec.Locations[0].Name != "Golana" || rec.Locations[0].Period != "2374" {
		t.Errorf("locations = %+v, want Golana in 2374", rec.Locations)
	}

	if rec.IsStub() {
		t.Error("record with extracted facts reported as stub")
	}
}

func TestExtractEmptyPage(t *testing.T) {
	ex := NewExtractor(model.ExtractConfig{})
	if _, err := ex.Extract(&model.Page{Title: "Nobody", Text: "  "}); err != model.ErrPageNotFound {
		t.Errorf("err = %v, want ErrPageNotFound", err)
	}
}

func TestExtractStub(t *testing.T) {
	ex := NewExtractor(model.ExtractConfig{})
	rec, err := ex.Extract(&model.Page{Title: "Background Character", Text: "A crew member."})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !rec.IsStub() {
		t.Errorf("bare record not reported as stub: %+v", rec)
	}
}

func TestExtractSpeciesValidation(t *testing.T) {
	tests := []struct {
		value string
		want  string // "" means nil
	}{
		{"Human", "Human"},
		{"[[Human]]", ""}, // caller normalizes first; raw markup rejected
		{"half Human, half Betazoid", "Human"},
		{"Unlisted Species", "Unlisted Species"},
		{"a long description of uncertain heritage", ""},
	}
	for _, tt := range tests {
		got := extractSpecies(tt.value)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("extractSpecies(%q) = %q, want nil", tt.value, *got)
		case tt.want != "" && (got == nil || *got != tt.want):
			t.Errorf("extractSpecies(%q) = %v, want %q", tt.value, got, tt.want)
		}
	}
}
