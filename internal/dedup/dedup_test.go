package dedup

import (
	"testing"
	"time"

	"github.com/deusflow/newsdigest/internal/article"
)

func art(title, url, source string, published time.Time) article.Article {
	return article.Article{
		Title:     title,
		URL:       url,
		Source:    article.Source{Name: source},
		Published: published,
	}
}

func TestExactURLDuplicateKeepsPreferredSource(t *testing.T) {
	in := []article.Article{
		art("Fed raises rates", "http://a.com/1?utm_source=x", "Reuters", time.Time{}),
		art("Fed hikes benchmark rate", "http://a.com/1", "Unknown Blog", time.Time{}),
	}
	out := NewSession(Config{}).Run(in)
	if len(out) != 1 {
		t.Fatalf("got %d articles, want 1", len(out))
	}
	if out[0].Source.Name != "Reuters" {
		t.Errorf("kept %q, want Reuters", out[0].Source.Name)
	}
}

func TestFuzzyTitleDuplicateAcrossURLs(t *testing.T) {
	in := []article.Article{
		art("Senate passes major spending bill", "http://a.com/1", "Associated Press", time.Time{}),
		art("Senate passes major spending bill!", "http://b.com/2", "Some Blog", time.Time{}),
	}
	out := NewSession(Config{}).Run(in)
	if len(out) != 1 {
		t.Fatalf("got %d articles, want 1", len(out))
	}
	if out[0].Source.Name != "Associated Press" {
		t.Errorf("kept %q, want Associated Press", out[0].Source.Name)
	}
}

func TestEmptyTitlesNeverCollapseViaSimilarity(t *testing.T) {
	in := []article.Article{
		art("", "http://a.com/1", "Reuters", time.Time{}),
		art("", "http://b.com/2", "NPR", time.Time{}),
	}
	out := NewSession(Config{}).Run(in)
	if len(out) != 2 {
		t.Fatalf("got %d articles, want 2 (empty titles must not match)", len(out))
	}
}

func TestEmptyURLsDedupViaSimilarityOnly(t *testing.T) {
	in := []article.Article{
		art("Storm hits the gulf coast overnight", "", "Reuters", time.Time{}),
		art("Storm hits the gulf coast overnight", "", "Some Blog", time.Time{}),
		art("Completely different local story here", "", "Other Blog", time.Time{}),
	}
	out := NewSession(Config{}).Run(in)
	if len(out) != 2 {
		t.Fatalf("got %d articles, want 2", len(out))
	}
}

func TestMaybeBandUsesDescriptions(t *testing.T) {
	// Titles land in the maybe band; matching descriptions confirm the
	// duplicate, diverging descriptions keep both.
	a := art("Apple unveils new chip at event", "http://a.com/1", "Reuters", time.Time{})
	a.Description = "The company announced a new processor at its fall hardware event on Tuesday."
	b := art("Apple unveils new retail store plan", "http://b.com/2", "Some Blog", time.Time{})
	b.Description = "The company announced a new processor at its fall hardware event on Tuesday."

	out := NewSession(Config{}).Run([]article.Article{a, b})
	if len(out) != 1 {
		t.Fatalf("matching descriptions: got %d articles, want 1", len(out))
	}

	c := b
	c.Description = "Shares of the supplier fell sharply in after-hours trading across asian markets."
	out = NewSession(Config{}).Run([]article.Article{a, c})
	if len(out) != 2 {
		t.Fatalf("diverging descriptions: got %d articles, want 2", len(out))
	}
}

func TestRankOrderPreservedInOutput(t *testing.T) {
	now := time.Now()
	in := []article.Article{
		art("story one about the local zoo", "http://a.com/1", "Some Blog", now.Add(-3*time.Hour)),
		art("story two about the state fair", "http://b.com/2", "Associated Press", now.Add(-5*time.Hour)),
		art("story three about road repairs", "http://c.com/3", "Reuters", now.Add(-1*time.Hour)),
	}
	out := NewSession(Config{}).Run(in)
	if len(out) != 3 {
		t.Fatalf("got %d articles, want 3", len(out))
	}
	wantOrder := []string{"Associated Press", "Reuters", "Some Blog"}
	for i, w := range wantOrder {
		if out[i].Source.Name != w {
			t.Errorf("position %d: got %q, want %q", i, out[i].Source.Name, w)
		}
	}
}

func TestTieBreakByRecencyWithinSamePreference(t *testing.T) {
	now := time.Now()
	older := art("morning markets wrap for tuesday", "http://a.com/1", "Blog A", now.Add(-6*time.Hour))
	newer := art("evening markets wrap for tuesday", "http://b.com/2", "Blog B", now.Add(-1*time.Hour))
	out := NewSession(Config{}).Run([]article.Article{older, newer})
	if len(out) == 0 || out[0].Source.Name != "Blog B" {
		t.Errorf("newest article should sort first among equal preference, got %+v", out)
	}
}

func TestCustomPreferenceTable(t *testing.T) {
	cfg := Config{SourcePreferences: map[string]int{"my wire": 10}}
	in := []article.Article{
		art("Fed raises rates", "http://a.com/1", "Reuters", time.Time{}),
		art("Fed raises rates", "http://b.com/1", "My Wire", time.Time{}),
	}
	out := NewSession(cfg).Run(in)
	if len(out) != 1 || out[0].Source.Name != "My Wire" {
		t.Errorf("custom table not honored: %+v", out)
	}
}
