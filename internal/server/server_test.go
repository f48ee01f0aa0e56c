package server_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/media"
	"github.com/draftforge/draftforge/internal/publish"
	"github.com/draftforge/draftforge/internal/research"
	"github.com/draftforge/draftforge/internal/server"
	"github.com/draftforge/draftforge/internal/workflow"
)

type stubGenerator struct{}

func (stubGenerator) GenerateText(context.Context, ai.ModelRole, string) (string, error) {
	return "generated text", nil
}

func (stubGenerator) GenerateStructured(_ context.Context, _ ai.ModelRole, _ string, tool ai.Tool, out any) error {
	var payload any
	switch tool.Name {
	case "save_metadata":
		payload = workflow.Metadata{Keyword: "stub keyword", Title: "Stub Title", Slug: "stub-title"}
	case "save_faqs":
		payload = map[string]any{"faqs": []workflow.FAQ{{Question: "Q", Answer: "A"}}}
	case "save_meta_split":
		payload = map[string]any{"title": "Stub Title"}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

type stubSearcher struct{}

func (stubSearcher) SearchWeb(context.Context, string) ([]research.SearchResult, error) {
	return []research.SearchResult{{URL: "https://example.com", Title: "Example"}}, nil
}

func (stubSearcher) SearchVideos(context.Context, string) ([]research.SearchResult, error) {
	return nil, nil
}

type stubScraper struct{}

func (stubScraper) ScrapeURL(_ context.Context, url string) (string, error)       { return "doc", nil }
func (stubScraper) FetchTranscript(_ context.Context, url string) (string, error) { return "", nil }

type stubMedia struct{}

func (stubMedia) CaptureScreenshot(context.Context, string, string, string) (*media.Asset, error) {
	return &media.Asset{URL: "https://cdn.example.com/shot.png"}, nil
}

func (stubMedia) GenerateVisual(context.Context, string) (*media.Asset, error) {
	return &media.Asset{URL: "https://cdn.example.com/visual.png"}, nil
}

func (stubMedia) PickBanner(context.Context, string) (int, error) { return 1, nil }

type stubPublisher struct{}

func (stubPublisher) Publish(context.Context, publish.Post) (*publish.Result, error) {
	return &publish.Result{PostID: 1, PostURL: "https://blog.example.com/p"}, nil
}

func (stubPublisher) CategoryForKeyword(string) int { return 1 }

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := &config.Config{
		Env:           "test",
		Port:          "8080",
		HSTSMaxAge:    31536000,
		CSPMode:       "relaxed",
		LogLevel:      "info",
		MaxScrapeURLs: 5,
		MaxVideos:     3,
	}
	logger := slog.New(slog.DiscardHandler)
	engine := workflow.NewEngine(logger, cfg, stubGenerator{}, stubSearcher{}, stubScraper{}, stubMedia{}, stubPublisher{})

	return server.New(cfg, logger, engine)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Health endpoint should return 200 OK")
	assert.Contains(t, w.Body.String(), "healthy", "Response should contain 'healthy'")
	assert.Contains(t, w.Body.String(), "draftforge", "Response should contain the service name")
}

func TestPreviewSynchronous(t *testing.T) {
	srv := newTestServer(t)

	body := `{"topic":"helpdesk software","waitForResult":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res workflow.PreviewResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "generated text", res.Content)
	assert.Equal(t, "stub keyword", res.KeywordUsed)
	assert.NotEmpty(t, res.Diagnostics)
}

func TestGenerateRejectsMissingTopic(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(`{"keyword":"k"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateAsyncFireAndPoll(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(`{"topic":"helpdesk software"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var accepted struct {
		RunID string `json:"runId"`
		State string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.RunID)
	assert.Equal(t, string(workflow.RunPending), accepted.State)

	require.Eventually(t, func() bool {
		pollW := httptest.NewRecorder()
		pollReq := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+accepted.RunID, nil)
		srv.Router().ServeHTTP(pollW, pollReq)
		if pollW.Code != http.StatusOK {
			return false
		}
		var run workflow.Run
		if err := json.Unmarshal(pollW.Body.Bytes(), &run); err != nil {
			return false
		}
		return run.State == workflow.RunCompleted
	}, 5*time.Second, 10*time.Millisecond, "run should complete")
}

func TestGetRunUnknownID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/does-not-exist", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
