package cache

import (
	"encoding/json"
	"time"

	"github.com/lorefoundry/triviaforge/internal/model"
)

// RecordCache stores extracted character records keyed by page content, so
// batch runs skip re-extraction of unchanged pages.
type RecordCache struct {
	backend Cache
	ttl     time.Duration
}

// NewRecordCache wraps a backend cache with record encoding.
func NewRecordCache(backend Cache, ttl time.Duration) *RecordCache {
	return &RecordCache{backend: backend, ttl: ttl}
}

// Get returns the cached record for a page, or nil when absent or
// undecodable. A corrupt entry is dropped, not surfaced: re-extraction is
// always a safe fallback.
func (c *RecordCache) Get(page *model.Page) *model.CharacterRecord {
	key := PageKey(page.Title, page.Text)
	data, found := c.backend.Get(key)
	if !found {
		return nil
	}
	var rec model.CharacterRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = c.backend.Delete(key)
		return nil
	}
	return &rec
}

// Put stores the record extracted from a page.
func (c *RecordCache) Put(page *model.Page, rec *model.CharacterRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.backend.Set(PageKey(page.Title, page.Text), data, c.ttl)
}
