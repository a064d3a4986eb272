// Package app wires the digest stages together for one run: fetch,
// filter already-sent, core pipeline, scrape, summarize, render,
// email, record.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/deusflow/newsdigest/internal/article"
	"github.com/deusflow/newsdigest/internal/balance"
	"github.com/deusflow/newsdigest/internal/config"
	"github.com/deusflow/newsdigest/internal/dedup"
	"github.com/deusflow/newsdigest/internal/feeds"
	"github.com/deusflow/newsdigest/internal/logger"
	"github.com/deusflow/newsdigest/internal/mailer"
	"github.com/deusflow/newsdigest/internal/metrics"
	"github.com/deusflow/newsdigest/internal/pipeline"
	"github.com/deusflow/newsdigest/internal/ratelimit"
	"github.com/deusflow/newsdigest/internal/render"
	"github.com/deusflow/newsdigest/internal/scraper"
	"github.com/deusflow/newsdigest/internal/storage"
	"github.com/deusflow/newsdigest/internal/summarize"
)

// App holds the long-lived collaborators shared across scheduled runs.
type App struct {
	cfg        *config.Config
	summarizer *summarize.Client
	scraper    *scraper.Scraper
	mailer     *mailer.Mailer
	sentCache  SentCache
}

// New builds the application from config.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	budget := ratelimit.NewAIBudget(cfg.MaxGeminiRequests, cfg.MaxOpenAIRequests, cfg.MaxAIRequests)

	summarizer, err := summarize.NewClient(ctx, summarize.Config{
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		Budget:        budget,
		CacheTTL:      cfg.SummaryCacheTTL,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    cfg.RetryDelay,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:        cfg,
		summarizer: summarizer,
		scraper:    scraper.New(cfg.RequestTimeout, cfg.ScrapeDelay),
		mailer: mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.FromAddress,
			To:       mailer.ParseRecipients(cfg.ToAddresses),
		}),
		sentCache: openSentCache(cfg),
	}, nil
}

// Close releases resources.
func (a *App) Close() {
	a.summarizer.Close()
	if err := a.sentCache.Close(); err != nil {
		log.Printf("Warning: closing sent-cache: %v", err)
	}
}

// RunOnce generates and delivers one digest.
func (a *App) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	slogger := logger.ForRun(runID)

	start := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
	}()

	sources, err := feeds.LoadSources(a.cfg.SourcesConfigPath)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("failed to load sources: %w", err)
	}

	raw := feeds.FetchAll(ctx, sources, a.cfg.MaxArticleAge)
	metrics.Global.AddArticlesFetched(int64(len(raw)))
	slogger.Info("fetched articles", "sources", len(sources), "articles", len(raw))

	fresh := a.filterAlreadySent(raw)
	slogger.Info("filtered already-sent", "remaining", len(fresh), "skipped", len(raw)-len(fresh))

	result := pipeline.Run(a.pipelineConfig(), fresh)
	slogger.Info("pipeline complete",
		"unique", result.Unique,
		"duplicates", result.Duplicates,
		"balanced", result.Balanced,
		"sections", len(result.Digest.Sections))

	if result.Digest.Total == 0 {
		slogger.Info("no articles for digest, skipping delivery")
		return nil
	}

	a.enrich(ctx, &result)

	html, err := render.HTML(a.cfg.DigestTitle, result.Digest)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	text := render.Text(a.cfg.DigestTitle, result.Digest)

	if a.cfg.DryRun {
		slogger.Info("dry run, digest not sent", "articles", result.Digest.Total, "html_bytes", len(html))
		fmt.Println(text)
		return nil
	}

	subject := fmt.Sprintf("%s — %s", a.cfg.DigestTitle, result.Digest.GeneratedAt.Format("Jan 2, 2006"))
	if err := a.mailer.Send(mailer.Message{Subject: subject, HTMLBody: html, TextBody: text}); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	metrics.Global.IncrementDigestsSent()
	metrics.Global.SetLastRun()

	a.recordSent(result)
	a.sentCache.Cleanup()
	slogger.Info("digest delivered", "articles", result.Digest.Total)
	return nil
}

// RunLoop runs immediately and then on the configured interval until
// the context is cancelled.
func (a *App) RunLoop(ctx context.Context) error {
	if err := a.RunOnce(ctx); err != nil {
		log.Printf("Digest run failed: %v", err)
	}

	ticker := time.NewTicker(a.cfg.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.RunOnce(ctx); err != nil {
				log.Printf("Digest run failed: %v", err)
			}
		}
	}
}

func (a *App) pipelineConfig() pipeline.Config {
	leaning := a.cfg.MaxPerLeaning
	return pipeline.Config{
		Dedup: dedup.Config{
			TitleThreshold:       a.cfg.TitleSimilarityThreshold,
			DescriptionThreshold: a.cfg.DescriptionSimilarityThreshold,
		},
		Balance: balance.Config{
			MaxPerSource: a.cfg.MaxArticlesPerSource,
			MaxTotal:     a.cfg.MaxArticlesTotal,
			LeaningCaps: map[article.Section]int{
				article.SectionLeftLeaning:  leaning,
				article.SectionCenter:       leaning,
				article.SectionRightLeaning: leaning,
				article.SectionWorldNews:    leaning,
			},
		},
		ArticlesPerSection: a.cfg.ArticlesPerSection,
	}
}

// filterAlreadySent drops articles delivered in a previous run.
func (a *App) filterAlreadySent(articles []article.Article) []article.Article {
	var fresh []article.Article
	for _, art := range articles {
		hash := storage.ArticleHash(art.Title, art.URL)
		if a.sentCache.IsAlreadySent(hash) {
			continue
		}
		fresh = append(fresh, art)
	}
	return fresh
}

// enrich scrapes full bodies for the digest's articles and fills
// their summaries.
func (a *App) enrich(ctx context.Context, result *pipeline.Result) {
	var urls []string
	for _, section := range result.Digest.Sections {
		for _, art := range section.Articles {
			if art.URL != "" {
				urls = append(urls, art.URL)
			}
		}
	}

	extracted := a.scraper.ExtractArticles(urls, a.cfg.ScrapeMaxArticles)

	for si := range result.Digest.Sections {
		articles := result.Digest.Sections[si].Articles
		for ai := range articles {
			art := &articles[ai]
			if content, ok := extracted[art.URL]; ok && len(content.Content) > 200 {
				art.Content = content.Content
			}
			body := art.Content
			if body == "" {
				body = art.Description
			}
			art.Summary = a.summarizer.Summarize(ctx, art.Title, body)
		}
	}
}

// recordSent marks every delivered article in the cross-run cache.
func (a *App) recordSent(result pipeline.Result) {
	for _, section := range result.Digest.Sections {
		for _, art := range section.Articles {
			hash := storage.ArticleHash(art.Title, art.URL)
			if err := a.sentCache.MarkAsSent(hash, art.Title, art.URL, string(art.Section), art.Source.Name); err != nil {
				log.Printf("Warning: can't record sent article: %v", err)
			}
		}
	}
}
