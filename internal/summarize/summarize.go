// Package summarize produces short article summaries for the digest.
// Providers are tried in a fixed order: Gemini, then OpenAI, then a
// plain extractive fallback, so a missing API key or exhausted budget
// degrades the digest instead of failing it.
package summarize

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/deusflow/newsdigest/internal/cache"
	"github.com/deusflow/newsdigest/internal/metrics"
	"github.com/deusflow/newsdigest/internal/ratelimit"
	"github.com/deusflow/newsdigest/internal/retry"
)

const (
	geminiModel  = "gemini-1.5-flash"
	openaiModel  = openai.GPT4oMini
	maxInputSize = 6000 // runes of article body sent to a provider
)

// Client drives the provider chain.
type Client struct {
	gemini   *genai.Client
	openai   *openai.Client
	budget   *ratelimit.AIBudget
	cache    *cache.Cache
	cacheTTL time.Duration
	retryCfg retry.Config
}

// Config for the summarizer client. Empty API keys disable the
// corresponding provider.
type Config struct {
	GeminiAPIKey  string
	OpenAIAPIKey  string
	Budget        *ratelimit.AIBudget
	CacheTTL      time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// NewClient sets up whichever providers have keys configured.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		budget:   cfg.Budget,
		cache:    cache.New(),
		cacheTTL: cfg.CacheTTL,
		retryCfg: retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		},
	}
	if c.cacheTTL <= 0 {
		c.cacheTTL = 48 * time.Hour
	}

	if cfg.GeminiAPIKey != "" {
		gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		c.gemini = gc
	}
	if cfg.OpenAIAPIKey != "" {
		c.openai = openai.NewClient(cfg.OpenAIAPIKey)
	}
	return c, nil
}

// Close releases provider resources.
func (c *Client) Close() {
	if c.gemini != nil {
		c.gemini.Close()
	}
}

// Summarize returns a short summary for the article. The provider
// chain is Gemini, OpenAI, extractive; cached summaries are reused
// across scheduled runs.
func (c *Client) Summarize(ctx context.Context, title, content string) string {
	content = trimInput(content)
	if strings.TrimSpace(content) == "" {
		return ""
	}

	key := c.cache.Key(title, content)
	if cached, ok := c.cache.Get(key); ok {
		if c.budget != nil {
			c.budget.RecordCacheHit()
		}
		return cached
	}
	if c.budget != nil {
		c.budget.RecordCacheMiss()
	}

	if summary, err := c.summarizeGemini(ctx, title, content); err == nil {
		metrics.Global.IncrementSummariesGenerated()
		c.cache.Set(key, summary, c.cacheTTL)
		return summary
	} else if c.gemini != nil {
		log.Printf("⚠️ Gemini summary failed: %v", err)
	}

	if summary, err := c.summarizeOpenAI(ctx, title, content); err == nil {
		metrics.Global.IncrementSummariesGenerated()
		c.cache.Set(key, summary, c.cacheTTL)
		return summary
	} else if c.openai != nil {
		log.Printf("⚠️ OpenAI summary failed: %v", err)
	}

	metrics.Global.IncrementSummaryFailures()
	return ExtractiveSummary(content)
}

func (c *Client) summarizeGemini(ctx context.Context, title, content string) (string, error) {
	if c.gemini == nil {
		return "", fmt.Errorf("gemini not configured")
	}
	if c.budget != nil && !c.budget.CanUseGemini() {
		return "", fmt.Errorf("gemini budget exhausted")
	}

	model := c.gemini.GenerativeModel(geminiModel)
	prompt := buildPrompt(title, content)

	var summary string
	err := retry.Do(ctx, c.retryCfg, func() error {
		if c.budget != nil {
			c.budget.RecordGemini()
		}
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return err
		}
		text, err := geminiText(resp)
		if err != nil {
			return err
		}
		summary = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return Sanitize(summary), nil
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("no text in response")
	}
	return out, nil
}

func (c *Client) summarizeOpenAI(ctx context.Context, title, content string) (string, error) {
	if c.openai == nil {
		return "", fmt.Errorf("openai not configured")
	}
	if c.budget != nil && !c.budget.CanUseOpenAI() {
		return "", fmt.Errorf("openai budget exhausted")
	}

	var summary string
	err := retry.Do(ctx, c.retryCfg, func() error {
		if c.budget != nil {
			c.budget.RecordOpenAI()
		}
		resp, err := c.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: openaiModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: buildPrompt(title, content)},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return fmt.Errorf("empty response")
		}
		summary = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return Sanitize(summary), nil
}

func buildPrompt(title, content string) string {
	return fmt.Sprintf(`Summarize this news article in 2-3 sentences for an email digest.
Keep proper names as they are. Do not start with phrases like "This article is about".
Do not add notes or disclaimers.

Title: %s

Article:
%s`, title, content)
}

// trimInput collapses whitespace and cuts overlong bodies on a rune
// boundary, preferring to end at a sentence.
func trimInput(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(strings.TrimSpace(content)), " ")
	if utf8.RuneCountInString(content) <= maxInputSize {
		return content
	}
	runes := []rune(content)
	trimmed := string(runes[:maxInputSize])
	if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed
}

// ExtractiveSummary picks the first couple of substantial sentences
// when no AI provider is available.
func ExtractiveSummary(content string) string {
	c := strings.TrimSpace(content)
	if c == "" {
		return ""
	}
	sentences := strings.Split(c, ".")
	var picked []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) < 25 {
			continue
		}
		picked = append(picked, s)
		if len(picked) >= 2 {
			break
		}
	}
	if len(picked) == 0 {
		if len(c) > 160 {
			return c[:160] + "..."
		}
		return c
	}
	return strings.Join(picked, ". ") + "."
}
