// Package categorize assigns every article exactly one digest section
// and one or more interest tags.
//
// Section assignment is a strict ordered cascade: trusted source
// identity beats content keywords, and within content keywords the
// group order is world > politics > technology > business. The order
// matters: "tech startup government regulation" must land in POLITICS,
// not TECHNOLOGY. No rule is re-evaluated after a match.
package categorize

import (
	"regexp"
	"strings"

	"github.com/deusflow/newsdigest/internal/article"
)

// sourceRule maps source-name fragments to a section. Checked in
// declaration order, first hit wins.
type sourceRule struct {
	section  article.Section
	keywords []string
}

var sourceRules = []sourceRule{
	{article.SectionLeftLeaning, []string{"cnn", "msnbc", "nyt", "washington post"}},
	{article.SectionRightLeaning, []string{"fox", "national review", "newsmax", "washington examiner"}},
	{article.SectionCenter, []string{"npr", "reuters", "ap", "pbs", "abc", "cbs"}},
	{article.SectionWorldNews, []string{"bbc", "al jazeera", "france24", "dw"}},
	{article.SectionTechnology, []string{"techcrunch", "wired", "ars technica"}},
	{article.SectionLocal, []string{"tennessean", "nashville", "tennessee"}},
}

// contentRule maps body keywords to a section, checked after source
// rules in declaration order.
type contentRule struct {
	section  article.Section
	keywords []string
}

var contentRules = []contentRule{
	{article.SectionWorldNews, []string{"international", "global", "worldwide", "foreign", "abroad"}},
	{article.SectionPolitics, []string{"president", "congress", "senate", "governor", "election", "campaign", "government"}},
	{article.SectionTechnology, []string{"tech", "software", "app", "digital", "ai", "artificial intelligence"}},
	{article.SectionBusiness, []string{"business", "economy", "market", "stock", "company", "entrepreneur", "ceo"}},
}

// interestRule maps an interest tag to its keywords. Tags are
// independent of the section and multi-valued; rules are scanned in
// declaration order so tag output is deterministic.
type interestRule struct {
	tag      string
	keywords []string
}

var interestRules = []interestRule{
	{"AI", []string{"ai", "artificial intelligence", "machine learning", "neural network", "llm", "chatbot"}},
	{"Technology", []string{"tech", "software", "startup", "gadget", "smartphone", "cybersecurity", "internet", "ai", "artificial intelligence"}},
	{"Politics", []string{"president", "congress", "senate", "election", "legislation", "policy", "campaign"}},
	{"Business & Economy", []string{"economy", "market", "stock", "inflation", "jobs", "trade", "earnings"}},
	{"Health", []string{"health", "medical", "vaccine", "hospital", "disease", "fda", "treatment"}},
	{"Science", []string{"science", "research", "study", "nasa", "space", "discovery", "climate study"}},
	{"Climate & Environment", []string{"climate", "environment", "emissions", "wildfire", "hurricane", "drought"}},
	{"Sports", []string{"sports", "nfl", "nba", "mlb", "playoff", "championship", "olympics"}},
	{"Global Affairs", []string{"international", "diplomacy", "united nations", "treaty", "sanctions"}},
}

// Fallback tags by section, used when no interest keyword hits.
var fallbackTags = map[article.Section]string{
	article.SectionWorldNews:  "Global Affairs",
	article.SectionTechnology: "Technology",
}

const defaultFallbackTag = "General News"

// Categorize annotates the article with its section and tags. It is
// deterministic, never fails, and tolerates missing fields: an article
// with no usable signal ends up in US_NEWS with the generic tag.
func Categorize(a *article.Article) {
	a.Section = sectionFor(a)
	a.Tags = tagsFor(a)
}

// All categorizes every article in place and returns the same slice.
func All(articles []article.Article) []article.Article {
	for i := range articles {
		Categorize(&articles[i])
	}
	return articles
}

func sectionFor(a *article.Article) article.Section {
	sourceName := strings.ToLower(a.Source.Name)
	if sourceName != "" {
		for _, rule := range sourceRules {
			for _, kw := range rule.keywords {
				if strings.Contains(sourceName, kw) {
					return rule.section
				}
			}
		}
	}

	text := combinedText(a)
	for _, rule := range contentRules {
		if containsAny(text, rule.keywords) {
			return rule.section
		}
	}

	return article.SectionUSNews
}

func tagsFor(a *article.Article) []string {
	text := combinedText(a)

	var tags []string
	seen := make(map[string]struct{})
	for _, rule := range interestRules {
		if containsAny(text, rule.keywords) {
			if _, dup := seen[rule.tag]; !dup {
				seen[rule.tag] = struct{}{}
				tags = append(tags, rule.tag)
			}
		}
	}
	if len(tags) > 0 {
		return tags
	}

	if tag, ok := fallbackTags[a.Section]; ok {
		return []string{tag}
	}
	return []string{defaultFallbackTag}
}

func combinedText(a *article.Article) string {
	return strings.ToLower(a.Title + " " + a.Description + " " + a.Content)
}

// containsAny matches keywords against lowercased text. Phrases use
// plain substring match; short tokens (<=3 runes) require word
// boundaries so "ai" does not hit "said"; longer single words use
// substring match.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		if strings.Contains(k, " ") {
			if strings.Contains(text, k) {
				return true
			}
			continue
		}

		if len(k) <= 3 {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
			if re.MatchString(text) {
				return true
			}
			continue
		}

		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
