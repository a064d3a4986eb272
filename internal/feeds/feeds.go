// Package feeds loads the configured source list and fetches their
// RSS/Atom feeds into the pipeline's article records.
package feeds

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/newsdigest/internal/article"
)

// Source is one configured feed.
type Source struct {
	Name        string  `yaml:"name"`
	FeedURL     string  `yaml:"feed"`
	Category    string  `yaml:"category"`    // optional leaning/topic hint
	Reliability float64 `yaml:"reliability"` // optional [0,1]
}

// SourcesConfig is the YAML config structure:
//
// sources:
//   - name: Reuters
//     feed: https://example.com/rss
//     category: center
//     reliability: 0.95
type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the source list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Sources, nil
}

// FetchAll downloads and parses every feed. Articles older than
// maxAge are dropped at ingest; a zero maxAge keeps everything.
// Individual feed failures are logged and skipped.
func FetchAll(ctx context.Context, sources []Source, maxAge time.Duration) []article.Article {
	parser := gofeed.NewParser()
	var all []article.Article
	successCount := 0

	for _, src := range sources {
		feed, err := parser.ParseURLWithContext(src.FeedURL, ctx)
		if err != nil {
			log.Printf("Error parsing feed %s (%s): %v", src.Name, src.FeedURL, err)
			continue // log error, but don't stop
		}
		count := 0
		for _, item := range feed.Items {
			a, ok := toArticle(item, src, maxAge)
			if !ok {
				continue
			}
			all = append(all, a)
			count++
		}
		successCount++
		log.Printf("Loaded %d articles from %s", count, src.Name)
	}

	log.Printf("Processed feeds: %d/%d ok, %d articles", successCount, len(sources), len(all))
	return all
}

// toArticle converts a feed item, tolerating missing fields. Items
// without both title and link are useless to the pipeline and dropped.
func toArticle(item *gofeed.Item, src Source, maxAge time.Duration) (article.Article, bool) {
	if item.Title == "" && item.Link == "" {
		return article.Article{}, false
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	if maxAge > 0 && !published.IsZero() && time.Since(published) > maxAge {
		return article.Article{}, false
	}

	return article.Article{
		Title:       item.Title,
		Description: item.Description,
		URL:         item.Link,
		Published:   published,
		Source: article.Source{
			Name:        src.Name,
			Category:    src.Category,
			Reliability: src.Reliability,
		},
	}, true
}
