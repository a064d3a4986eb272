package storage

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// PostgresCache keeps sent articles in PostgreSQL for deployments
// where the digest runs on ephemeral hosts.
type PostgresCache struct {
	db       *sql.DB
	ttlHours int
}

// NewPostgresCache connects and ensures the schema exists.
func NewPostgresCache(connectionString string, ttlHours int) (*PostgresCache, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pc := &PostgresCache{
		db:       db,
		ttlHours: ttlHours,
	}

	if err := pc.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Println("✅ PostgreSQL sent-cache connected")
	return pc, nil
}

func (pc *PostgresCache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sent_articles (
		id SERIAL PRIMARY KEY,
		hash VARCHAR(64) UNIQUE NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		section VARCHAR(50),
		source VARCHAR(100),
		sent_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_sent_articles_hash ON sent_articles(hash);
	CREATE INDEX IF NOT EXISTS idx_sent_articles_sent_at ON sent_articles(sent_at);
	`
	_, err := pc.db.Exec(schema)
	return err
}

// IsAlreadySent reports whether an article hash was delivered within
// the TTL window.
func (pc *PostgresCache) IsAlreadySent(hash string) bool {
	cutoff := time.Now().Add(-time.Duration(pc.ttlHours) * time.Hour)

	var exists bool
	err := pc.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM sent_articles WHERE hash = $1 AND sent_at > $2)`,
		hash, cutoff,
	).Scan(&exists)
	if err != nil {
		log.Printf("Warning: sent-cache lookup failed: %v", err)
		return false
	}
	return exists
}

// MarkAsSent records a delivered article.
func (pc *PostgresCache) MarkAsSent(hash, title, url, section, source string) error {
	_, err := pc.db.Exec(
		`INSERT INTO sent_articles (hash, title, url, section, source, sent_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (hash) DO UPDATE SET sent_at = NOW()`,
		hash, title, url, section, source,
	)
	if err != nil {
		return fmt.Errorf("failed to mark article as sent: %w", err)
	}
	return nil
}

// Cleanup deletes entries older than the TTL window.
func (pc *PostgresCache) Cleanup() {
	cutoff := time.Now().Add(-time.Duration(pc.ttlHours) * time.Hour)
	res, err := pc.db.Exec(`DELETE FROM sent_articles WHERE sent_at < $1`, cutoff)
	if err != nil {
		log.Printf("Warning: sent-cache cleanup failed: %v", err)
		return
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Printf("Cleaned up %d expired sent-cache entries", n)
	}
}

// Close closes the database connection.
func (pc *PostgresCache) Close() error {
	return pc.db.Close()
}
