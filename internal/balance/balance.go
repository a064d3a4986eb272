// Package balance enforces per-source, per-leaning and total caps on
// the deduplicated, categorized article set.
//
// Order of operations: per-source trim (newest first), then leaning
// caps, then a global newest-first cut at the total cap. The global
// cut is date-based regardless of section, so a section whose stories
// are all old can be starved entirely; that is accepted behavior.
package balance

import (
	"sort"

	"github.com/deusflow/newsdigest/internal/article"
)

// Default caps.
const (
	DefaultMaxPerSource  = 3
	DefaultMaxTotal      = 12
	DefaultMaxPerLeaning = 4
)

// unknownSource buckets articles whose feed gave no source name. The
// bucket gets no special treatment.
const unknownSource = "Unknown"

// Config tunes the balancer. Zero values fall back to defaults. A
// LeaningCaps entry of -1 disables the cap for that section.
type Config struct {
	MaxPerSource int
	MaxTotal     int
	// LeaningCaps constrains the leaning-style sections. When nil, the
	// default cap applies to LEFT_LEANING, CENTER, RIGHT_LEANING and
	// WORLD_NEWS (international).
	LeaningCaps map[article.Section]int
}

func (c Config) maxPerSource() int {
	if c.MaxPerSource > 0 {
		return c.MaxPerSource
	}
	return DefaultMaxPerSource
}

func (c Config) maxTotal() int {
	if c.MaxTotal > 0 {
		return c.MaxTotal
	}
	return DefaultMaxTotal
}

func (c Config) leaningCap(s article.Section) (int, bool) {
	if c.LeaningCaps != nil {
		limit, ok := c.LeaningCaps[s]
		if !ok || limit < 0 {
			return 0, false
		}
		return limit, true
	}
	switch s {
	case article.SectionLeftLeaning, article.SectionCenter,
		article.SectionRightLeaning, article.SectionWorldNews:
		return DefaultMaxPerLeaning, true
	}
	return 0, false
}

// Apply returns the capped article list, newest first. The input is
// not modified.
func Apply(cfg Config, articles []article.Article) []article.Article {
	bySource := make(map[string][]article.Article)
	var order []string
	for _, a := range articles {
		name := a.Source.Name
		if name == "" {
			name = unknownSource
		}
		if _, ok := bySource[name]; !ok {
			order = append(order, name)
		}
		bySource[name] = append(bySource[name], a)
	}

	perSource := cfg.maxPerSource()
	var trimmed []article.Article
	for _, name := range order {
		group := bySource[name]
		sortNewestFirst(group)
		if len(group) > perSource {
			group = group[:perSource]
		}
		trimmed = append(trimmed, group...)
	}

	sortNewestFirst(trimmed)
	trimmed = applyLeaningCaps(cfg, trimmed)

	if max := cfg.maxTotal(); len(trimmed) > max {
		trimmed = trimmed[:max]
	}
	return trimmed
}

// applyLeaningCaps walks the newest-first list and drops articles once
// their leaning section is at its cap.
func applyLeaningCaps(cfg Config, articles []article.Article) []article.Article {
	counts := make(map[article.Section]int)
	kept := articles[:0:0]
	for _, a := range articles {
		if limit, capped := cfg.leaningCap(a.Section); capped {
			if counts[a.Section] >= limit {
				continue
			}
			counts[a.Section]++
		}
		kept = append(kept, a)
	}
	return kept
}

// sortNewestFirst orders by publish date descending; articles without
// a date sort as oldest.
func sortNewestFirst(articles []article.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
}
