package render

import (
	"strings"
	"testing"
	"time"

	"github.com/deusflow/newsdigest/internal/article"
	"github.com/deusflow/newsdigest/internal/digest"
)

func sampleDigest() digest.Digest {
	articles := []article.Article{
		{
			Title:   "Fed raises rates",
			URL:     "http://a.com/1",
			Source:  article.Source{Name: "Reuters"},
			Summary: "The central bank raised rates by a quarter point.",
			Tags:    []string{"Business & Economy"},
			Section: article.SectionBusiness,
			Age:     article.AgeToday,
		},
		{
			Title:       "New chip announced",
			URL:         "http://t.com/2",
			Source:      article.Source{Name: "TechCrunch"},
			Description: "A new processor was announced.",
			Tags:        []string{"Technology"},
			Section:     article.SectionTechnology,
			Age:         article.AgeBreaking,
		},
	}
	d := digest.Assemble(articles, 0)
	d.GeneratedAt = time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC)
	return d
}

func TestHTMLContainsSectionsAndArticles(t *testing.T) {
	html, err := HTML("Daily News Digest", sampleDigest())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{
		"Daily News Digest",
		"Business",
		"Technology",
		"Fed raises rates",
		"http://a.com/1",
		"The central bank raised rates by a quarter point.",
		"Reuters",
		"Today",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	d := digest.Assemble([]article.Article{{
		Title:   `<script>alert("x")</script>`,
		Section: article.SectionUSNews,
	}}, 0)
	html, err := HTML("Digest", d)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(html, `<script>alert`) {
		t.Error("article title not escaped")
	}
}

func TestHTMLFallsBackToDescription(t *testing.T) {
	html, err := HTML("Digest", sampleDigest())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, "A new processor was announced.") {
		t.Error("description fallback missing for article without summary")
	}
}

func TestTextAlternative(t *testing.T) {
	text := Text("Daily News Digest", sampleDigest())
	for _, want := range []string{
		"Daily News Digest",
		"2 stories",
		"== Business ==",
		"* Fed raises rates",
		"http://t.com/2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q", want)
		}
	}
	if strings.Contains(text, "<") {
		t.Error("text alternative contains markup")
	}
}
