package learn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// Library is the persistent correction-pattern store. Writes are serialized
// in-process by a mutex and across processes by a file lock; the library is
// append-only and deduplicated by generalized template.
type Library struct {
	path string
	lock *flock.Flock

	mu       sync.Mutex
	patterns []model.CorrectionPattern
}

// Open loads the library at path, creating an empty one when the file does
// not exist yet.
func Open(path string) (*Library, error) {
	lib := &Library{
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := lib.load(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) load() error {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		l.patterns = []model.CorrectionPattern{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading correction library: %w", err)
	}
	if err := json.Unmarshal(data, &l.patterns); err != nil {
		return fmt.Errorf("parsing correction library %s: %w", l.path, err)
	}
	return nil
}

// Patterns returns a snapshot of the stored patterns.
func (l *Library) Patterns() []model.CorrectionPattern {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.CorrectionPattern, len(l.patterns))
	copy(out, l.patterns)
	return out
}

// Add stores a pattern. A pattern whose generalized template is already
// present bumps that entry's use count instead of duplicating it. The file
// is re-read under the lock before writing, so concurrent processes never
// lose each other's entries.
func (l *Library) Add(p model.CorrectionPattern) (added bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.lock.Lock(); err != nil {
		return false, fmt.Errorf("locking correction library: %w", err)
	}
	defer l.lock.Unlock()

	if err := l.load(); err != nil {
		return false, err
	}

	added = true
	for i := range l.patterns {
		if l.patterns[i].Generalized == p.Generalized {
			l.patterns[i].Uses++
			added = false
			break
		}
	}
	if added {
		l.patterns = append(l.patterns, p)
	}

	if err := l.save(); err != nil {
		return false, err
	}
	return added, nil
}

// RecordUse bumps the use count of the pattern with the given generalized
// template, persisting the change.
func (l *Library) RecordUse(generalized string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.lock.Lock(); err != nil {
		return fmt.Errorf("locking correction library: %w", err)
	}
	defer l.lock.Unlock()

	if err := l.load(); err != nil {
		return err
	}
	for i := range l.patterns {
		if l.patterns[i].Generalized == generalized {
			l.patterns[i].Uses++
			return l.save()
		}
	}
	return nil
}

// save writes the library atomically: temp file in the same directory, then
// rename.
func (l *Library) save() error {
	data, err := json.MarshalIndent(l.patterns, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding correction library: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".corrections-*.json")
	if err != nil {
		return fmt.Errorf("writing correction library: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing correction library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing correction library: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing correction library: %w", err)
	}
	return nil
}
