package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lorefoundry/triviaforge/internal/model"
)

const mollyPage = `{{sidebar individual
|species = [[Human]]
|father = [[Miles O'Brien]]
|mother = [[Keiko O'Brien]]
}}
Molly O'Brien grew up aboard the {{USS|Enterprise|NCC-1701-D}}.`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func TestProcessPage(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	page := &model.Page{Title: "Molly O'Brien", Text: mollyPage}
	doc, err := p.ProcessPage(context.Background(), page)
	if err != nil {
		t.Fatalf("ProcessPage: %v", err)
	}
	if doc.Character.Name != "Molly O'Brien" {
		t.Errorf("name = %q", doc.Character.Name)
	}
	if doc.Character.Species == nil || *doc.Character.Species != "Human" {
		t.Errorf("species = %v", doc.Character.Species)
	}
	if len(doc.TriviaFacts) == 0 {
		t.Error("no questions synthesized")
	}
}

func TestProcessPage_SkipsStubs(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	page := &model.Page{Title: "Morn", Text: "Nothing of note happened here."}
	_, err := p.ProcessPage(context.Background(), page)
	if !errors.Is(err, ErrStubRecord) {
		t.Errorf("err = %v, want ErrStubRecord", err)
	}
}

func TestProcessPage_MissingPage(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	_, err := p.ProcessPage(context.Background(), &model.Page{Title: "Ghost"})
	if !errors.Is(err, model.ErrPageNotFound) {
		t.Errorf("err = %v, want ErrPageNotFound", err)
	}
}

func TestExtractRecord_CacheHit(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg, nil)
	page := &model.Page{Title: "Molly O'Brien", Text: mollyPage}

	first, err := p.ExtractRecord(context.Background(), page)
	if err != nil {
		t.Fatalf("first extract: %v", err)
	}

	// A second pipeline over the same cache directory serves the record
	// from disk.
	second := NewPipeline(cfg, nil)
	got, err := second.ExtractRecord(context.Background(), page)
	if err != nil {
		t.Fatalf("cached extract: %v", err)
	}
	if got.Name != first.Name || *got.Species != *first.Species {
		t.Errorf("cached record differs: %+v vs %+v", got, first)
	}
}

func TestExtractRecord_Cancelled(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ExtractRecord(ctx, &model.Page{Title: "Worf", Text: "x"}); err == nil {
		t.Error("expected context error")
	}
}

func TestRendererWriteDocument(t *testing.T) {
	doc := &model.CharacterDocument{
		Character:   model.NewCharacterRecord("Worf"),
		TriviaFacts: []model.Question{},
	}

	var buf bytes.Buffer
	if err := NewRenderer(true, false).WriteDocument(&buf, doc); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("pretty output not indented")
	}

	var decoded model.CharacterDocument
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Character.Name != "Worf" {
		t.Errorf("name = %q", decoded.Character.Name)
	}
}
