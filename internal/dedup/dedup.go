// Package dedup reduces a raw multi-source article list to a unique
// set. When two articles cover the same story, the one from the more
// reputable (and more recent) source is kept.
package dedup

import (
	"sort"
	"strings"

	"github.com/deusflow/newsdigest/internal/article"
	"github.com/deusflow/newsdigest/internal/normalize"
	"github.com/deusflow/newsdigest/internal/similarity"
)

// Default similarity thresholds. The title band below the hard
// threshold is a "maybe" zone that additionally consults descriptions.
const (
	DefaultTitleThreshold       = 0.8
	DefaultDescriptionThreshold = 0.6
)

// DefaultSourcePreferences ranks sources for duplicate tie-breaking
// only; it never filters content on its own.
var DefaultSourcePreferences = map[string]int{
	"associated press":    10,
	"reuters":             9,
	"npr":                 8,
	"pbs":                 8,
	"bbc news":            8,
	"wall street journal": 7,
	"new york times":      7,
	"washington post":     7,
	"bloomberg":           7,
}

const defaultPreference = 5

// Config tunes the deduplicator. Zero values fall back to defaults, so
// an empty Config is valid.
type Config struct {
	TitleThreshold       float64
	DescriptionThreshold float64
	SourcePreferences    map[string]int
}

func (c Config) titleThreshold() float64 {
	if c.TitleThreshold > 0 {
		return c.TitleThreshold
	}
	return DefaultTitleThreshold
}

func (c Config) descriptionThreshold() float64 {
	if c.DescriptionThreshold > 0 {
		return c.DescriptionThreshold
	}
	return DefaultDescriptionThreshold
}

func (c Config) preference(sourceName string) int {
	table := c.SourcePreferences
	if table == nil {
		table = DefaultSourcePreferences
	}
	if score, ok := table[strings.ToLower(strings.TrimSpace(sourceName))]; ok {
		return score
	}
	return defaultPreference
}

// Session holds the dedup state for a single digest run. Each run
// creates its own Session, so concurrent runs in one process never
// share seen-sets.
type Session struct {
	cfg      Config
	seenURLs map[string]struct{}
	kept     []article.Article
}

// NewSession starts a fresh dedup session.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:      cfg,
		seenURLs: make(map[string]struct{}),
	}
}

// Run deduplicates the given articles and returns the survivors in
// rank order (most preferred source first, newest first within equal
// preference). The input slice is not modified.
func (s *Session) Run(articles []article.Article) []article.Article {
	ranked := make([]article.Article, len(articles))
	copy(ranked, articles)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := s.cfg.preference(ranked[i].Source.Name), s.cfg.preference(ranked[j].Source.Name)
		if pi != pj {
			return pi > pj
		}
		return ranked[i].Published.After(ranked[j].Published)
	})

	for _, a := range ranked {
		s.consider(a)
	}
	return s.kept
}

// consider appends the article to the kept set unless it duplicates a
// prior survivor.
func (s *Session) consider(a article.Article) {
	key := normalize.URL(a.URL)
	if key != "" {
		if _, dup := s.seenURLs[key]; dup {
			return
		}
	}

	for i := range s.kept {
		if s.isDuplicate(&a, &s.kept[i]) {
			return
		}
	}

	s.kept = append(s.kept, a)
	if key != "" {
		s.seenURLs[key] = struct{}{}
	}
}

// isDuplicate applies the banded title check. Above the hard threshold
// the pair is a duplicate outright; in the maybe band descriptions
// break the tie, or a tighter title threshold when descriptions are
// missing. Empty titles never match via similarity.
func (s *Session) isDuplicate(candidate, kept *article.Article) bool {
	titleThr := s.cfg.titleThreshold()

	ts := similarity.Title(candidate.Title, kept.Title)
	if ts > titleThr {
		return true
	}
	if ts <= titleThr*0.75 {
		return false
	}

	candDesc := normalize.Text(candidate.Description)
	keptDesc := normalize.Text(kept.Description)
	if candDesc != "" && keptDesc != "" {
		return similarity.Description(candidate.Description, kept.Description) > s.cfg.descriptionThreshold()
	}
	return ts > titleThr*0.9
}
