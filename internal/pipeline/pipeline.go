// Package pipeline wires extraction, synthesis, and rendering into the
// page-to-document flow the CLI commands drive.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/lorefoundry/triviaforge/internal/cache"
	"github.com/lorefoundry/triviaforge/internal/extract"
	"github.com/lorefoundry/triviaforge/internal/generate"
	"github.com/lorefoundry/triviaforge/internal/model"
)

// Pipeline orchestrates the complete page-to-trivia process
type Pipeline struct {
	extractor   *extract.Extractor
	synthesizer *generate.Synthesizer
	renderer    *Renderer
	records     *cache.RecordCache // nil when caching disabled
	config      *model.Config
}

// NewPipeline creates a new pipeline with the given configuration and
// correction patterns.
func NewPipeline(cfg *model.Config, patterns []model.CorrectionPattern) *Pipeline {
	var records *cache.RecordCache
	if cfg.Cache.Enabled {
		backend := cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		records = cache.NewRecordCache(backend, cfg.Cache.TTL)
	}

	return &Pipeline{
		extractor:   extract.NewExtractor(cfg.Extract),
		synthesizer: generate.NewSynthesizer(cfg.Generate, patterns),
		renderer:    NewRenderer(cfg.Output.Pretty, cfg.Output.Verbose),
		records:     records,
		config:      cfg,
	}
}

// OnTemplateUse registers a callback fired when a learned correction
// template produces a question. The callback must be safe for concurrent
// use; batch runs synthesize records in parallel.
func (p *Pipeline) OnTemplateUse(fn func(generalized string)) {
	p.synthesizer.OnTemplateUse(fn)
}

// ExtractRecord produces the character record for a page, consulting the
// record cache first.
func (p *Pipeline) ExtractRecord(ctx context.Context, page *model.Page) (*model.CharacterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.records != nil {
		if rec := p.records.Get(page); rec != nil {
			return rec, nil
		}
	}

	rec, err := p.extractor.Extract(page)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", page.Title, err)
	}

	if p.records != nil {
		if err := p.records.Put(page, rec); err != nil {
			// Caching is advisory; the record is still good.
			p.renderer.Warnf("cache write for %s failed: %v", page.Title, err)
		}
	}
	return rec, nil
}

// ProcessPage runs the full flow for one page: extract the record, skip
// stubs when configured, then synthesize the question set.
func (p *Pipeline) ProcessPage(ctx context.Context, page *model.Page) (*model.CharacterDocument, error) {
	start := time.Now()

	rec, err := p.ExtractRecord(ctx, page)
	if err != nil {
		return nil, err
	}

	if p.config.Extract.SkipStubs && rec.IsStub() {
		return nil, fmt.Errorf("%s: %w", page.Title, ErrStubRecord)
	}

	doc := &model.CharacterDocument{
		Character:   rec,
		TriviaFacts: p.synthesizer.Synthesize(rec),
	}

	p.renderer.Progressf("%s: %d questions in %s", page.Title, len(doc.TriviaFacts), time.Since(start).Round(time.Millisecond))
	return doc, nil
}
