// Package research provides the web search, page scraping, and video
// research collaborators used by the workflow. All outbound calls go
// through the shared retryable httpx client.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpx"
)

// SearchResult is one organic web search hit.
type SearchResult struct {
	URL   string `json:"link"`
	Title string `json:"title"`
}

// Searcher queries a Serper-compatible search API.
type Searcher struct {
	client  *httpx.Client
	baseURL string
	apiKey  string
}

// NewSearcher creates a Searcher from configuration.
func NewSearcher(client *httpx.Client, cfg *config.Config) *Searcher {
	return &Searcher{
		client:  client,
		baseURL: cfg.SearchBaseURL,
		apiKey:  cfg.SearchAPIKey,
	}
}

type searchRequest struct {
	Query string `json:"q"`
}

type searchResponse struct {
	Organic []SearchResult `json:"organic"`
}

type videoSearchResponse struct {
	Videos []SearchResult `json:"videos"`
}

// SearchWeb returns organic results for the query.
func (s *Searcher) SearchWeb(ctx context.Context, query string) ([]SearchResult, error) {
	var resp searchResponse
	if err := s.post(ctx, "/search", query, &resp); err != nil {
		return nil, err
	}
	return resp.Organic, nil
}

// SearchVideos returns video results for the query.
func (s *Searcher) SearchVideos(ctx context.Context, query string) ([]SearchResult, error) {
	var resp videoSearchResponse
	if err := s.post(ctx, "/videos", query, &resp); err != nil {
		return nil, err
	}
	return resp.Videos, nil
}

func (s *Searcher) post(ctx context.Context, path, query string, out any) error {
	if s.apiKey == "" {
		return errors.New("search API key required: set SEARCH_API_KEY")
	}

	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return fmt.Errorf("failed to encode search request: %w", err)
	}

	header := http.Header{}
	header.Set("X-API-KEY", s.apiKey)

	data, err := s.client.PostJSON(ctx, s.baseURL+path, body, header)
	if err != nil {
		return fmt.Errorf("search request failed: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode search response: %w", err)
	}
	return nil
}
