// Package media provides the asset-producing collaborators: screenshot
// capture, visual generation, and banner selection.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpx"
)

// Asset is a resolved visual: a hosted URL plus its display title.
type Asset struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Library talks to the screenshot and image-generation services.
type Library struct {
	client            *httpx.Client
	screenshotBaseURL string
	screenshotAPIKey  string
	imageBaseURL      string
	imageAPIKey       string
}

// NewLibrary creates a Library from configuration.
func NewLibrary(client *httpx.Client, cfg *config.Config) *Library {
	return &Library{
		client:            client,
		screenshotBaseURL: cfg.ScreenshotBaseURL,
		screenshotAPIKey:  cfg.ScreenshotAPIKey,
		imageBaseURL:      cfg.ImageBaseURL,
		imageAPIKey:       cfg.ImageAPIKey,
	}
}

type captureRequest struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// CaptureScreenshot captures (or retrieves a cached) screenshot of url.
// A nil Asset with nil error means the service had nothing for the page.
func (l *Library) CaptureScreenshot(ctx context.Context, pageURL, title, companyName string) (*Asset, error) {
	if l.screenshotBaseURL == "" {
		return nil, errors.New("screenshot service not configured: set SCREENSHOT_BASE_URL")
	}

	body, err := json.Marshal(captureRequest{URL: pageURL, Title: title, Company: companyName})
	if err != nil {
		return nil, fmt.Errorf("failed to encode capture request: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+l.screenshotAPIKey)

	data, err := l.client.PostJSON(ctx, l.screenshotBaseURL+"/capture", body, header)
	if err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}

	return decodeAsset(data)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateVisual generates a visual asset from a text description.
func (l *Library) GenerateVisual(ctx context.Context, description string) (*Asset, error) {
	if l.imageBaseURL == "" {
		return nil, errors.New("image service not configured: set IMAGE_BASE_URL")
	}

	body, err := json.Marshal(generateRequest{Prompt: description})
	if err != nil {
		return nil, fmt.Errorf("failed to encode generate request: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+l.imageAPIKey)

	data, err := l.client.PostJSON(ctx, l.imageBaseURL+"/generate", body, header)
	if err != nil {
		return nil, fmt.Errorf("visual generation failed: %w", err)
	}

	return decodeAsset(data)
}

type bannerResponse struct {
	ID int `json:"id"`
}

// PickBanner selects a banner image ID for the keyword.
func (l *Library) PickBanner(ctx context.Context, keyword string) (int, error) {
	if l.imageBaseURL == "" {
		return 0, errors.New("image service not configured: set IMAGE_BASE_URL")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+l.imageAPIKey)

	data, err := l.client.GetJSON(ctx, l.imageBaseURL+"/banners/pick?keyword="+url.QueryEscape(keyword), header)
	if err != nil {
		return 0, fmt.Errorf("banner selection failed: %w", err)
	}

	var resp bannerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("failed to decode banner response: %w", err)
	}
	return resp.ID, nil
}

// decodeAsset parses a service response; an empty url means "no asset",
// reported as nil without error.
func decodeAsset(data []byte) (*Asset, error) {
	var a Asset
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode asset response: %w", err)
	}
	if a.URL == "" {
		return nil, nil
	}
	return &a, nil
}
