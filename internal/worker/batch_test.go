package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// MockProcessor implements the Processor interface
type MockProcessor struct {
	ShouldError bool
}

func (m *MockProcessor) ProcessPage(ctx context.Context, page *model.Page) (*model.CharacterDocument, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("process error")
	}
	return &model.CharacterDocument{
		Character:   model.NewCharacterRecord(page.Title),
		TriviaFacts: []model.Question{},
	}, nil
}

func TestBatchProcessor_ProcessPages(t *testing.T) {
	b := NewBatchProcessor(&MockProcessor{}, 3)

	pages := []*model.Page{
		{Title: "Worf", Text: "a"},
		{Title: "Molly O'Brien", Text: "b"},
		{Title: "Alynna Nechayev", Text: "c"},
	}
	results := b.ProcessPages(context.Background(), pages)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("page %s: %v", r.Title, r.GetError())
		}
		if r.Document == nil || r.Document.Character.Name != r.Title {
			t.Errorf("page %s: bad document %+v", r.Title, r.Document)
		}
	}
}

func TestBatchProcessor_Errors(t *testing.T) {
	b := NewBatchProcessor(&MockProcessor{ShouldError: true}, 2)
	results := b.ProcessPages(context.Background(), []*model.Page{{Title: "Worf"}})
	if len(results) != 1 || results[0].GetError() == nil {
		t.Errorf("expected one failed result, got %+v", results)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	b := NewBatchProcessor(&MockProcessor{}, 2)
	if results := b.ProcessPages(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPagesFromDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("Worf.txt", "klingon page")
	write("Molly O'Brien.wiki", "human page")
	write("notes.md", "ignored")
	write(".hidden.txt", "ignored")

	pages, err := ReadPagesFromDir(dir)
	if err != nil {
		t.Fatalf("ReadPagesFromDir: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2: %+v", len(pages), pages)
	}
	// Sorted by title.
	if pages[0].Title != "Molly O'Brien" || pages[1].Title != "Worf" {
		t.Errorf("titles = %q, %q", pages[0].Title, pages[1].Title)
	}
	if pages[1].Text != "klingon page" {
		t.Errorf("text = %q", pages[1].Text)
	}
}

func TestReadPagesFromDir_Missing(t *testing.T) {
	if _, err := ReadPagesFromDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}
}
