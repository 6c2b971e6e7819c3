package cache

import (
	"testing"
	"time"

	"github.com/lorefoundry/triviaforge/internal/model"
)

func TestPageKeyDependsOnText(t *testing.T) {
	a := PageKey("Worf", "version one")
	b := PageKey("Worf", "version two")
	if a == b {
		t.Error("key unchanged across page edits")
	}
	if a != PageKey("Worf", "version one") {
		t.Error("key not deterministic")
	}
}

func TestRecordCacheRoundTrip(t *testing.T) {
	rc := NewRecordCache(NewMemoryCache(time.Minute, time.Minute), time.Minute)
	page := &model.Page{Title: "Worf", Text: "{{sidebar individual|species=Klingon}}"}

	if got := rc.Get(page); got != nil {
		t.Fatalf("unexpected hit on empty cache: %+v", got)
	}

	rec := model.NewCharacterRecord("Worf")
	species := "Klingon"
	rec.Species = &species
	if err := rc.Put(page, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got := rc.Get(page)
	if got == nil {
		t.Fatal("no hit after Put")
	}
	if got.Name != "Worf" || got.Species == nil || *got.Species != "Klingon" {
		t.Errorf("cached record = %+v", got)
	}

	// A different revision of the same page misses.
	edited := &model.Page{Title: "Worf", Text: "edited"}
	if rc.Get(edited) != nil {
		t.Error("edited page served a stale record")
	}
}

func TestLayeredCachePromotes(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	key := PageKey("Worf", "text")
	if err := layered.Set(key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh layered cache over the same directory hits via disk.
	reopened := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := reopened.Get(key)
	if !found || string(val) != "payload" {
		t.Errorf("disk layer miss: found=%v val=%q", found, val)
	}
}
