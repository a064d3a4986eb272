package app

import (
	"log"

	"github.com/deusflow/newsdigest/internal/config"
	"github.com/deusflow/newsdigest/internal/storage"
)

// SentCache abstracts the cross-run delivery record so the app can
// run on either the JSON file cache or Postgres.
type SentCache interface {
	IsAlreadySent(hash string) bool
	MarkAsSent(hash, title, url, section, source string) error
	Cleanup()
	Close() error
}

// openSentCache picks Postgres when DATABASE_URL is configured and
// falls back to the file cache otherwise (including on connection
// failure; a broken cache must not block the digest).
func openSentCache(cfg *config.Config) SentCache {
	if cfg.DatabaseURL != "" {
		pc, err := storage.NewPostgresCache(cfg.DatabaseURL, cfg.CacheTTLHours)
		if err == nil {
			return pc
		}
		log.Printf("⚠️ Postgres sent-cache unavailable, using file cache: %v", err)
	}

	fc := storage.NewFileCache(cfg.CacheFilePath, cfg.CacheTTLHours)
	if err := fc.Load(); err != nil {
		log.Printf("⚠️ Can't load sent-cache file: %v", err)
	}
	return fc
}
