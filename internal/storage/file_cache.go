package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/deusflow/newsdigest/internal/normalize"
)

// SentArticle records one article already delivered in a digest.
type SentArticle struct {
	Hash    string    `json:"hash"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Section string    `json:"section"`
	Source  string    `json:"source"`
	SentAt  time.Time `json:"sent_at"`
}

// FileCache keeps sent articles in a JSON file so consecutive runs do
// not email the same story twice.
type FileCache struct {
	filePath string
	ttlHours int
	items    map[string]SentArticle
	mu       sync.RWMutex
}

// NewFileCache creates a new file cache instance.
func NewFileCache(filePath string, ttlHours int) *FileCache {
	return &FileCache{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]SentArticle),
	}
}

// Load reads the existing cache from disk, dropping expired entries.
// A missing file starts an empty cache.
func (fc *FileCache) Load() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if _, err := os.Stat(fc.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []SentArticle
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(fc.ttlHours) * time.Hour)
	for _, item := range items {
		if item.SentAt.After(cutoff) {
			fc.items[item.Hash] = item
		}
	}
	return nil
}

// Save writes the cache back to disk.
func (fc *FileCache) Save() error {
	fc.mu.RLock()
	items := make([]SentArticle, 0, len(fc.items))
	for _, item := range fc.items {
		items = append(items, item)
	}
	fc.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(fc.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// ArticleHash builds the stable identity used across runs: normalized
// title plus normalized URL.
func ArticleHash(title, url string) string {
	h := sha256.New()
	h.Write([]byte(normalize.Text(title) + "|" + normalize.URL(url)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// IsAlreadySent reports whether an article hash is in the TTL window.
func (fc *FileCache) IsAlreadySent(hash string) bool {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	item, exists := fc.items[hash]
	if !exists {
		return false
	}
	cutoff := time.Now().Add(-time.Duration(fc.ttlHours) * time.Hour)
	return item.SentAt.After(cutoff)
}

// MarkAsSent records a delivered article.
func (fc *FileCache) MarkAsSent(hash, title, url, section, source string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.items[hash] = SentArticle{
		Hash:    hash,
		Title:   title,
		URL:     url,
		Section: section,
		Source:  source,
		SentAt:  time.Now(),
	}
	return nil
}

// Cleanup removes expired items from memory.
func (fc *FileCache) Cleanup() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	cutoff := time.Now().Add(-time.Duration(fc.ttlHours) * time.Hour)
	for hash, item := range fc.items {
		if item.SentAt.Before(cutoff) {
			delete(fc.items, hash)
		}
	}
}

// Close satisfies SentCache; the file cache persists on Save.
func (fc *FileCache) Close() error {
	return fc.Save()
}
