package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// ErrStubRecord marks a page whose extraction recovered nothing beyond the
// name. Batch runs report and skip these instead of failing.
var ErrStubRecord = errors.New("stub record")

// Renderer writes documents and progress output. Progress goes to stderr so
// piped JSON stays clean.
type Renderer struct {
	pretty  bool
	verbose bool
}

// NewRenderer creates a renderer
func NewRenderer(pretty, verbose bool) *Renderer {
	return &Renderer{pretty: pretty, verbose: verbose}
}

// WriteDocument renders a document as JSON to the writer.
func (r *Renderer) WriteDocument(w io.Writer, doc *model.CharacterDocument) error {
	enc := json.NewEncoder(w)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// WriteRecord renders a bare character record as JSON to the writer.
func (r *Renderer) WriteRecord(w io.Writer, rec *model.CharacterRecord) error {
	enc := json.NewEncoder(w)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}

// WriteDocumentFile renders a document as JSON to a file.
func (r *Renderer) WriteDocumentFile(path string, doc *model.CharacterDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.WriteDocument(f, doc); err != nil {
		return err
	}
	if r.verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	return nil
}

// Summary prints the per-run totals to stderr.
func (r *Renderer) Summary(processed, skipped, failed int) {
	fmt.Fprintf(os.Stderr, "Processed %d pages (%d skipped, %d failed)\n", processed, skipped, failed)
}

// Progressf reports per-page progress when verbose output is on.
func (r *Renderer) Progressf(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Warnf reports a non-fatal problem.
func (r *Renderer) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
