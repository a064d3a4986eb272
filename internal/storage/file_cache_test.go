package storage

import (
	"path/filepath"
	"testing"
)

func TestArticleHashStableUnderNormalization(t *testing.T) {
	a := ArticleHash("Fed Raises  Rates", "http://a.com/1?utm_source=x")
	b := ArticleHash("fed raises rates", "http://a.com/1")
	if a != b {
		t.Errorf("hashes differ for equivalent articles: %q vs %q", a, b)
	}
	c := ArticleHash("Different headline entirely", "http://a.com/1")
	if a == c {
		t.Errorf("different titles must hash differently")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent.json")

	fc := NewFileCache(path, 72)
	if err := fc.Load(); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}

	hash := ArticleHash("Fed raises rates", "http://a.com/1")
	if fc.IsAlreadySent(hash) {
		t.Error("fresh cache should not contain the article")
	}
	if err := fc.MarkAsSent(hash, "Fed raises rates", "http://a.com/1", "BUSINESS", "Reuters"); err != nil {
		t.Fatal(err)
	}
	if !fc.IsAlreadySent(hash) {
		t.Error("article not found after MarkAsSent")
	}
	if err := fc.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded := NewFileCache(path, 72)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reloaded.IsAlreadySent(hash) {
		t.Error("article lost across save/load")
	}
}

func TestFileCacheTTLExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent.json")

	// ttl of 0 hours: everything is immediately expired
	fc := NewFileCache(path, 0)
	hash := ArticleHash("old story", "http://a.com/old")
	if err := fc.MarkAsSent(hash, "old story", "http://a.com/old", "US_NEWS", "Reuters"); err != nil {
		t.Fatal(err)
	}
	if fc.IsAlreadySent(hash) {
		t.Error("entry outside the TTL window should not count as sent")
	}
	fc.Cleanup()
	if len(fc.items) != 0 {
		t.Errorf("cleanup left %d expired items", len(fc.items))
	}
}
