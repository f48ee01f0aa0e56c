package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpx"
)

// Scraper fetches pages as markdown through a reader-style proxy
// (the proxy renders the page and strips boilerplate).
type Scraper struct {
	client  *httpx.Client
	baseURL string
}

// NewScraper creates a Scraper from configuration.
func NewScraper(client *httpx.Client, cfg *config.Config) *Scraper {
	return &Scraper{
		client:  client,
		baseURL: strings.TrimRight(cfg.ScrapeBaseURL, "/"),
	}
}

// ScrapeURL returns the page at url rendered to markdown. An empty result
// with nil error means the proxy had nothing useful for the page.
func (s *Scraper) ScrapeURL(ctx context.Context, url string) (string, error) {
	data, err := s.client.GetJSON(ctx, s.baseURL+"/"+url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to scrape %s: %w", url, err)
	}
	return string(data), nil
}

// FetchTranscript returns the transcript text for a video URL via the same
// reader proxy.
func (s *Scraper) FetchTranscript(ctx context.Context, videoURL string) (string, error) {
	data, err := s.client.GetJSON(ctx, s.baseURL+"/"+videoURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript for %s: %w", videoURL, err)
	}
	return string(data), nil
}
