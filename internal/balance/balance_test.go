package balance

import (
	"testing"
	"time"

	"github.com/deusflow/newsdigest/internal/article"
)

func art(title, source string, section article.Section, published time.Time) article.Article {
	return article.Article{
		Title:     title,
		Source:    article.Source{Name: source},
		Section:   section,
		Published: published,
	}
}

func TestPerSourceCapKeepsMostRecent(t *testing.T) {
	now := time.Now()
	var in []article.Article
	for i := 0; i < 5; i++ {
		in = append(in, art("story", "Reuters", article.SectionUSNews, now.Add(-time.Duration(i)*time.Hour)))
	}
	in[0].Title = "newest"
	in[1].Title = "second newest"

	out := Apply(Config{MaxPerSource: 2}, in)
	if len(out) != 2 {
		t.Fatalf("got %d articles, want 2", len(out))
	}
	if out[0].Title != "newest" || out[1].Title != "second newest" {
		t.Errorf("wrong articles kept: %q, %q", out[0].Title, out[1].Title)
	}
}

func TestTotalCapIsHardSlice(t *testing.T) {
	now := time.Now()
	var in []article.Article
	for i := 0; i < 20; i++ {
		in = append(in, art("story", "Source"+string(rune('A'+i)), article.SectionUSNews, now.Add(-time.Duration(i)*time.Minute)))
	}
	out := Apply(Config{MaxTotal: 10}, in)
	if len(out) != 10 {
		t.Fatalf("got %d articles, want 10", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Published.After(out[i-1].Published) {
			t.Errorf("output not sorted newest first at %d", i)
		}
	}
}

func TestCapsHoldForAnyInput(t *testing.T) {
	now := time.Now()
	var in []article.Article
	sources := []string{"A", "B", "C", ""}
	for i := 0; i < 40; i++ {
		in = append(in, art("story", sources[i%len(sources)], article.SectionUSNews, now.Add(-time.Duration(i)*time.Minute)))
	}
	cfg := Config{MaxPerSource: 3, MaxTotal: 8}
	out := Apply(cfg, in)
	if len(out) > 8 {
		t.Errorf("total cap violated: %d", len(out))
	}
	perSource := make(map[string]int)
	for _, a := range out {
		perSource[a.Source.Name]++
	}
	for name, n := range perSource {
		if n > 3 {
			t.Errorf("per-source cap violated for %q: %d", name, n)
		}
	}
}

func TestMissingDatesSortAsOldest(t *testing.T) {
	now := time.Now()
	in := []article.Article{
		art("undated", "Reuters", article.SectionUSNews, time.Time{}),
		art("dated", "Reuters", article.SectionUSNews, now),
	}
	out := Apply(Config{MaxPerSource: 1}, in)
	if len(out) != 1 || out[0].Title != "dated" {
		t.Errorf("dated article should win, got %+v", out)
	}
}

func TestLeaningCapsEnforced(t *testing.T) {
	now := time.Now()
	var in []article.Article
	for i := 0; i < 6; i++ {
		in = append(in, art("left story", "Source"+string(rune('A'+i)), article.SectionLeftLeaning, now.Add(-time.Duration(i)*time.Minute)))
	}
	in = append(in, art("plain story", "SourceZ", article.SectionUSNews, now.Add(-90*time.Minute)))

	out := Apply(Config{LeaningCaps: map[article.Section]int{article.SectionLeftLeaning: 2}}, in)
	left := 0
	plain := 0
	for _, a := range out {
		switch a.Section {
		case article.SectionLeftLeaning:
			left++
		case article.SectionUSNews:
			plain++
		}
	}
	if left != 2 {
		t.Errorf("left-leaning articles = %d, want 2", left)
	}
	if plain != 1 {
		t.Errorf("uncapped section article dropped: plain = %d, want 1", plain)
	}
}

func TestDefaultLeaningCaps(t *testing.T) {
	now := time.Now()
	var in []article.Article
	for i := 0; i < 10; i++ {
		in = append(in, art("world story", "Source"+string(rune('A'+i)), article.SectionWorldNews, now.Add(-time.Duration(i)*time.Minute)))
	}
	out := Apply(Config{MaxTotal: 20}, in)
	if len(out) != DefaultMaxPerLeaning {
		t.Errorf("got %d world articles, want default leaning cap %d", len(out), DefaultMaxPerLeaning)
	}
}

func TestUnknownBucketNotPrivileged(t *testing.T) {
	now := time.Now()
	var in []article.Article
	for i := 0; i < 5; i++ {
		in = append(in, art("anon story", "", article.SectionUSNews, now.Add(-time.Duration(i)*time.Minute)))
	}
	out := Apply(Config{MaxPerSource: 2}, in)
	if len(out) != 2 {
		t.Errorf("unnamed-source articles not capped: got %d, want 2", len(out))
	}
}

func TestInputNotModified(t *testing.T) {
	now := time.Now()
	in := []article.Article{
		art("b", "X", article.SectionUSNews, now.Add(-2*time.Hour)),
		art("a", "X", article.SectionUSNews, now),
	}
	Apply(Config{}, in)
	if in[0].Title != "b" || in[1].Title != "a" {
		t.Errorf("input slice reordered: %q, %q", in[0].Title, in[1].Title)
	}
}
