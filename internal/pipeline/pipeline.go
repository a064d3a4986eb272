// Package pipeline runs the digest core for one article batch:
// dedup, categorize, balance, assemble. It is synchronous and keeps
// no state between runs; callers that generate digests concurrently
// each get their own dedup session.
package pipeline

import (
	"time"

	"github.com/deusflow/newsdigest/internal/article"
	"github.com/deusflow/newsdigest/internal/balance"
	"github.com/deusflow/newsdigest/internal/categorize"
	"github.com/deusflow/newsdigest/internal/dedup"
	"github.com/deusflow/newsdigest/internal/digest"
	"github.com/deusflow/newsdigest/internal/metrics"
)

// Config carries the tuning knobs for one pipeline. The zero value is
// usable: every field falls back to its documented default.
type Config struct {
	Dedup              dedup.Config
	Balance            balance.Config
	ArticlesPerSection int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Dedup: dedup.Config{
			TitleThreshold:       dedup.DefaultTitleThreshold,
			DescriptionThreshold: dedup.DefaultDescriptionThreshold,
		},
		Balance: balance.Config{
			MaxPerSource: balance.DefaultMaxPerSource,
			MaxTotal:     balance.DefaultMaxTotal,
		},
		ArticlesPerSection: 5,
	}
}

// Result is the pipeline output plus stage counts for logging.
type Result struct {
	Digest     digest.Digest
	Fetched    int
	Unique     int
	Balanced   int
	Duplicates int
}

// Run executes the core stages over a fresh article list.
func Run(cfg Config, articles []article.Article) Result {
	unique := dedup.NewSession(cfg.Dedup).Run(articles)
	metrics.Global.AddDuplicatesFiltered(int64(len(articles) - len(unique)))

	categorize.All(unique)

	balanced := balance.Apply(cfg.Balance, unique)

	now := time.Now()
	for i := range balanced {
		balanced[i].Age = article.AgeOf(balanced[i].Published, now)
	}

	return Result{
		Digest:     digest.Assemble(balanced, cfg.ArticlesPerSection),
		Fetched:    len(articles),
		Unique:     len(unique),
		Balanced:   len(balanced),
		Duplicates: len(articles) - len(unique),
	}
}
