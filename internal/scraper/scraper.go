// Package scraper fetches full article bodies for the digest's top
// stories. Extraction runs as an explicit ordered strategy chain
// (readability first, then a selector scan); the first strategy that
// yields usable content wins. Callers fall back to the feed
// description when every strategy fails.
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// minContentLength is the shortest extraction considered usable.
const minContentLength = 200

// maxContentLength caps stored bodies; the cut keeps whole paragraphs.
const maxContentLength = 1800

// ArticleContent is one extracted article body.
type ArticleContent struct {
	Title    string
	Content  string
	URL      string
	Strategy string // which extraction strategy produced the content
}

// Strategy extracts article text from fetched HTML. A strategy
// returns an error when it cannot produce usable content; the chain
// then moves on to the next one.
type Strategy interface {
	Name() string
	Extract(pageURL string, html []byte) (title, content string, err error)
}

// DefaultStrategies is the production extraction order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		readabilityStrategy{},
		selectorStrategy{},
	}
}

// Scraper fetches pages and runs the strategy chain.
type Scraper struct {
	client     *http.Client
	strategies []Strategy
	delay      time.Duration
}

// New builds a scraper with the default strategy chain.
func New(timeout, delay time.Duration) *Scraper {
	return &Scraper{
		client:     &http.Client{Timeout: timeout},
		strategies: DefaultStrategies(),
		delay:      delay,
	}
}

// ExtractArticle fetches one URL and runs the strategies in order.
func (s *Scraper) ExtractArticle(pageURL string) (*ArticleContent, error) {
	resp, err := s.client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("error reading page: %w", err)
	}

	return runStrategies(s.strategies, pageURL, html)
}

// runStrategies walks the chain and stops at the first success.
func runStrategies(strategies []Strategy, pageURL string, html []byte) (*ArticleContent, error) {
	var lastErr error
	for _, strat := range strategies {
		title, content, err := strat.Extract(pageURL, html)
		if err != nil {
			lastErr = err
			continue
		}
		content = cleanContent(content)
		if len(content) < minContentLength {
			lastErr = fmt.Errorf("%s: content too short (%d chars)", strat.Name(), len(content))
			continue
		}
		return &ArticleContent{
			Title:    title,
			Content:  content,
			URL:      pageURL,
			Strategy: strat.Name(),
		}, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no extraction strategies configured")
	}
	return nil, lastErr
}

// ExtractArticles fetches full content for up to maxArticles URLs,
// pausing between requests. Failures are logged and skipped; the
// result map holds only successful extractions.
func (s *Scraper) ExtractArticles(urls []string, maxArticles int) map[string]*ArticleContent {
	result := make(map[string]*ArticleContent)

	for i, pageURL := range urls {
		if maxArticles > 0 && i >= maxArticles {
			break
		}

		log.Printf("Extracting article %d/%d: %s", i+1, len(urls), pageURL)

		content, err := s.ExtractArticle(pageURL)
		if err != nil {
			log.Printf("⚠️ Can't extract %s: %v", pageURL, err)
			continue
		}

		result[pageURL] = content
		log.Printf("✅ Got content (%d chars, %s)", len(content.Content), content.Strategy)

		if s.delay > 0 && i < len(urls)-1 {
			time.Sleep(s.delay)
		}
	}

	return result
}

// readabilityStrategy uses go-readability's article extraction.
type readabilityStrategy struct{}

func (readabilityStrategy) Name() string { return "readability" }

func (readabilityStrategy) Extract(pageURL string, html []byte) (string, string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = nil
	}
	art, err := readability.FromReader(strings.NewReader(string(html)), u)
	if err != nil {
		return "", "", fmt.Errorf("readability: %w", err)
	}
	if strings.TrimSpace(art.TextContent) == "" {
		return "", "", fmt.Errorf("readability: empty content")
	}
	return art.Title, art.TextContent, nil
}

// selectorStrategy scans common article body selectors with goquery.
type selectorStrategy struct{}

func (selectorStrategy) Name() string { return "selectors" }

var bodySelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	".content p",
	"main p",
	"#content p",
	"p",
}

var titleSelectors = []string{
	"h1",
	"title",
	".article-title",
	".headline",
	".entry-title",
}

func (selectorStrategy) Extract(pageURL string, html []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return "", "", fmt.Errorf("selectors: %w", err)
	}

	var paragraphs []string
	for _, selector := range bodySelectors {
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
	}
	if len(paragraphs) == 0 {
		return "", "", fmt.Errorf("selectors: no paragraphs found")
	}

	title := ""
	for _, selector := range titleSelectors {
		title = strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			break
		}
	}

	return title, strings.Join(paragraphs, "\n\n"), nil
}

// Junk line markers filtered out of extracted bodies.
var junkIndicators = []string{
	"cookie", "gdpr", "advertisement", "sponsored", "read more",
	"click here", "follow us", "share this", "sign up", "subscribe",
	"log in", "newsletter",
}

// cleanContent normalizes whitespace, drops boilerplate lines and
// trims overlong bodies at paragraph boundaries.
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	var cleanLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}

		lower := strings.ToLower(line)
		isJunk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				isJunk = true
				break
			}
		}
		if isJunk {
			continue
		}

		cleanLines = append(cleanLines, strings.Join(strings.Fields(line), " "))
	}

	result := strings.Join(cleanLines, "\n\n")

	if len(result) > maxContentLength {
		paragraphs := strings.Split(result, "\n\n")
		var selected []string
		total := 0
		for _, p := range paragraphs {
			if total+len(p) >= maxContentLength {
				break
			}
			selected = append(selected, p)
			total += len(p) + 2
		}
		if len(selected) > 0 {
			result = strings.Join(selected, "\n\n")
		} else {
			result = result[:maxContentLength]
		}
	}

	return strings.TrimSpace(result)
}
