package workflow

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/pipeline"
	"github.com/draftforge/draftforge/pkg/collections"
)

// Engine owns the collaborators and runs workflows. All collaborators are
// injected; nothing reaches for ambient or global state, so one Engine can
// serve concurrent workflow invocations.
type Engine struct {
	logger    *slog.Logger
	generator ai.Generator
	searcher  Searcher
	scraper   Scraper
	media     MediaLibrary
	publisher Publisher

	maxScrapeURLs int
	maxVideos     int
}

// NewEngine wires an Engine from its collaborators.
func NewEngine(
	logger *slog.Logger,
	cfg *config.Config,
	generator ai.Generator,
	searcher Searcher,
	scraper Scraper,
	mediaLib MediaLibrary,
	publisher Publisher,
) *Engine {
	return &Engine{
		logger:        logger,
		generator:     generator,
		searcher:      searcher,
		scraper:       scraper,
		media:         mediaLib,
		publisher:     publisher,
		maxScrapeURLs: cfg.MaxScrapeURLs,
		maxVideos:     cfg.MaxVideos,
	}
}

// runRequired executes one fail-fast phase and records its timing.
func runRequired[T any](ctx context.Context, e *Engine, diag *pipeline.Diagnostics, phase string, meta map[string]any, fn pipeline.Handler[T]) (T, error) {
	res, err := pipeline.RunStep(ctx, e.logger, phase, meta, fn)
	if err != nil {
		var zero T
		return zero, err
	}
	diag.Record(phase, res.DurationMs)
	return res.Value, nil
}

// runOptional executes one best-effort phase. On failure the fallback
// value is returned and the phase is recorded with a zero duration; the
// workflow continues.
func runOptional[T any](ctx context.Context, e *Engine, diag *pipeline.Diagnostics, phase string, fallback T, fn pipeline.Handler[T]) T {
	res, err := pipeline.RunStep(ctx, e.logger, phase, nil, fn)
	if err != nil {
		e.logger.Warn("Best-effort step failed, continuing", "phase", phase, "error", err)
		diag.Record(phase, 0)
		return fallback
	}
	diag.Record(phase, res.DurationMs)
	return res.Value
}

// scrapeAll fetches up to limit URLs in parallel. Individual failures are
// logged and dropped; partial success is the norm for scraping.
func (e *Engine) scrapeAll(ctx context.Context, urls []string, limit int) []string {
	if limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}

	docs := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			md, err := e.scraper.ScrapeURL(gctx, u)
			if err != nil {
				e.logger.Warn("Scrape failed, dropping URL", "url", u, "error", err)
				return nil
			}
			docs[i] = md
			return nil
		})
	}
	// Goroutines never return errors; Wait only joins them.
	_ = g.Wait()

	return compactNonEmpty(docs)
}

// fetchTranscripts fetches transcripts for the given video URLs in
// parallel with the same partial-success policy as scrapeAll.
func (e *Engine) fetchTranscripts(ctx context.Context, videoURLs []string) []string {
	docs := make([]string, len(videoURLs))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range videoURLs {
		g.Go(func() error {
			text, err := e.scraper.FetchTranscript(gctx, u)
			if err != nil {
				e.logger.Warn("Transcript fetch failed, dropping video", "url", u, "error", err)
				return nil
			}
			docs[i] = text
			return nil
		})
	}
	_ = g.Wait()

	return compactNonEmpty(docs)
}

// compactNonEmpty drops empty strings while preserving order.
func compactNonEmpty(in []string) []string {
	return collections.Filter(in, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// parseURLLines extracts http(s) URLs from a line-oriented model answer.
func parseURLLines(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			urls = append(urls, line)
		}
	}
	return urls
}
