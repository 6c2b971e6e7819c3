package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// Processor defines the interface for processing one page end to end.
type Processor interface {
	ProcessPage(ctx context.Context, page *model.Page) (*model.CharacterDocument, error)
}

// PageJob represents one page extraction job
type PageJob struct {
	Page      *model.Page
	Processor Processor
}

// Execute executes the page job
func (j *PageJob) Execute(ctx context.Context) Result {
	doc, err := j.Processor.ProcessPage(ctx, j.Page)
	return &PageResult{
		Title:    j.Page.Title,
		Document: doc,
		Error:    err,
	}
}

// PageResult represents the result of a page job
type PageResult struct {
	Title    string
	Document *model.CharacterDocument
	Error    error
}

// GetError returns the error from the page result
func (r *PageResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple pages concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPages processes pages concurrently and returns results in
// completion order.
func (b *BatchProcessor) ProcessPages(ctx context.Context, pages []*model.Page) []*PageResult {
	if len(pages) == 0 {
		return []*PageResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, page := range pages {
		pool.Submit(&PageJob{
			Page:      page,
			Processor: b.processor,
		})
	}

	results := pool.Wait()

	pageResults := make([]*PageResult, len(results))
	for i, result := range results {
		pageResults[i] = result.(*PageResult)
	}

	return pageResults
}

// ProcessDir reads page files from a directory and processes them
// concurrently.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*PageResult, error) {
	pages, err := ReadPagesFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}
	return b.ProcessPages(ctx, pages), nil
}

// pageExtensions are the file extensions treated as wiki page dumps.
var pageExtensions = map[string]bool{".txt": true, ".wiki": true, ".wikitext": true}

// ReadPagesFromDir loads every page file in a directory, non-recursively.
// The page title is the file name without its extension; titles are
// deduplicated and returned in sorted order for stable batch runs.
func ReadPagesFromDir(dir string) ([]*model.Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("open dir: %w", err)
	}

	seen := make(map[string]bool)
	var pages []*model.Page
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !pageExtensions[ext] {
			continue
		}
		title := strings.TrimSuffix(entry.Name(), ext)
		if title == "" || seen[title] {
			continue
		}

		text, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", entry.Name(), err)
		}
		seen[title] = true
		pages = append(pages, &model.Page{Title: title, Text: string(text)})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Title < pages[j].Title })
	return pages, nil
}
