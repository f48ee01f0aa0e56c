package research

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpx"
)

func newTestClient() *httpx.Client {
	return httpx.New(slog.New(slog.DiscardHandler))
}

func TestSearcher_SearchWeb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		_, _ = w.Write([]byte(`{"organic":[{"title":"Best CRMs","link":"https://example.com/crms"}]}`))
	}))
	defer srv.Close()

	s := NewSearcher(newTestClient(), &config.Config{
		SearchBaseURL: srv.URL,
		SearchAPIKey:  "test-key",
	})

	results, err := s.SearchWeb(context.Background(), "best crm")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Best CRMs", results[0].Title)
	assert.Equal(t, "https://example.com/crms", results[0].URL)
}

func TestSearcher_SearchVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		_, _ = w.Write([]byte(`{"videos":[{"title":"CRM demo","link":"https://video.example.com/1"}]}`))
	}))
	defer srv.Close()

	s := NewSearcher(newTestClient(), &config.Config{
		SearchBaseURL: srv.URL,
		SearchAPIKey:  "test-key",
	})

	results, err := s.SearchVideos(context.Background(), "crm demo")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://video.example.com/1", results[0].URL)
}

func TestSearcher_MissingAPIKey(t *testing.T) {
	s := NewSearcher(newTestClient(), &config.Config{SearchBaseURL: "http://unused"})

	_, err := s.SearchWeb(context.Background(), "anything")

	assert.ErrorContains(t, err, "SEARCH_API_KEY")
}

func TestScraper_ScrapeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/https://example.com/page", r.URL.Path)
		_, _ = w.Write([]byte("# Page\n\nmarkdown body"))
	}))
	defer srv.Close()

	s := NewScraper(newTestClient(), &config.Config{ScrapeBaseURL: srv.URL})

	md, err := s.ScrapeURL(context.Background(), "https://example.com/page")

	require.NoError(t, err)
	assert.Contains(t, md, "markdown body")
}
