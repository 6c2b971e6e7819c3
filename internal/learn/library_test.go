package learn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lorefoundry/triviaforge/internal/model"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func testPattern(generalized string) model.CorrectionPattern {
	return model.CorrectionPattern{
		Original:     "In which episode did {character} have a particular fondness?",
		Corrected:    "Which episode of TNG showed Alynna Nechayev's particular fondness for Bularian canapés?",
		Generalized:  generalized,
		QuestionType: model.QuestionWhich,
		Source:       model.SourceEvent,
	}
}

func TestLibraryAddAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrections.json")

	lib, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := len(lib.Patterns()); got != 0 {
		t.Fatalf("fresh library has %d patterns", got)
	}

	added, err := lib.Add(testPattern("template one {item}?"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Error("first add reported as duplicate")
	}

	// A second library over the same file sees the persisted pattern.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	patterns := reopened.Patterns()
	if len(patterns) != 1 || patterns[0].Generalized != "template one {item}?" {
		t.Errorf("reloaded patterns = %+v", patterns)
	}
}

func TestLibraryDedupeByGeneralized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrections.json")
	lib, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := lib.Add(testPattern("same template?")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	added, err := lib.Add(testPattern("same template?"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added {
		t.Error("duplicate generalized template added as new entry")
	}

	patterns := lib.Patterns()
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(patterns))
	}
	if patterns[0].Uses != 1 {
		t.Errorf("uses = %d, want 1 after duplicate add", patterns[0].Uses)
	}
}

func TestLibraryRecordUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrections.json")
	lib, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := lib.Add(testPattern("used template?")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := lib.RecordUse("used template?"); err != nil {
		t.Fatalf("RecordUse: %v", err)
	}
	if got := lib.Patterns()[0].Uses; got != 1 {
		t.Errorf("uses = %d, want 1", got)
	}
}

func TestLibraryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrections.json")
	if err := writeFile(path, "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected error for corrupt library file")
	}
}
