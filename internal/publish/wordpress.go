// Package publish uploads finished posts to WordPress over its REST API.
package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpx"
)

// Post is the content handed to WordPress.
type Post struct {
	Title           string
	Slug            string
	Content         string // markdown or pre-rendered HTML
	ContentIsHTML   bool
	Excerpt         string
	MetaDescription string
	CategoryID      int
	BannerID        int
	Tags            []string
}

// Result reports where the post landed.
type Result struct {
	PostID  int
	PostURL string
}

// Publisher talks to one WordPress site.
type Publisher struct {
	client          *httpx.Client
	baseURL         string
	user            string
	appPassword     string
	status          string
	defaultCategory int
}

// NewPublisher creates a Publisher from configuration.
func NewPublisher(client *httpx.Client, cfg *config.Config) *Publisher {
	return &Publisher{
		client:          client,
		baseURL:         strings.TrimRight(cfg.WordPressBaseURL, "/"),
		user:            cfg.WordPressUser,
		appPassword:     cfg.WordPressAppPass,
		status:          cfg.WordPressStatus,
		defaultCategory: cfg.WordPressCategory,
	}
}

type createPostRequest struct {
	Title         string `json:"title"`
	Slug          string `json:"slug,omitempty"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt,omitempty"`
	Status        string `json:"status"`
	Categories    []int  `json:"categories,omitempty"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

type createPostResponse struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

// Publish creates the post and returns its ID and public URL. Markdown
// content is converted to HTML first; WordPress stores rendered HTML.
func (p *Publisher) Publish(ctx context.Context, post Post) (*Result, error) {
	if p.baseURL == "" || p.user == "" || p.appPassword == "" {
		return nil, errors.New("wordpress not configured: set WORDPRESS_BASE_URL, WORDPRESS_USER, WORDPRESS_APP_PASSWORD")
	}

	content := post.Content
	if !post.ContentIsHTML {
		html, err := markdownToHTML(content)
		if err != nil {
			return nil, fmt.Errorf("failed to render markdown: %w", err)
		}
		content = html
	}

	category := post.CategoryID
	if category == 0 {
		category = p.defaultCategory
	}

	body, err := json.Marshal(createPostRequest{
		Title:         post.Title,
		Slug:          post.Slug,
		Content:       content,
		Excerpt:       post.Excerpt,
		Status:        p.status,
		Categories:    []int{category},
		FeaturedMedia: post.BannerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", basicAuth(p.user, p.appPassword))

	data, err := p.client.PostJSON(ctx, p.baseURL+"/wp-json/wp/v2/posts", body, header)
	if err != nil {
		return nil, fmt.Errorf("wordpress create post failed: %w", err)
	}

	var resp createPostResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode wordpress response: %w", err)
	}

	return &Result{PostID: resp.ID, PostURL: resp.Link}, nil
}

// CategoryForKeyword maps a keyword onto a coarse category ID. The mapping
// is a heuristic; unmatched keywords fall back to the configured default.
func (p *Publisher) CategoryForKeyword(keyword string) int {
	kw := strings.ToLower(keyword)
	switch {
	case strings.Contains(kw, "how to"), strings.Contains(kw, "guide"), strings.Contains(kw, "tutorial"):
		return p.defaultCategory + 1
	case strings.Contains(kw, "vs"), strings.Contains(kw, "alternative"), strings.Contains(kw, "comparison"):
		return p.defaultCategory + 2
	case strings.Contains(kw, "best"), strings.Contains(kw, "top"):
		return p.defaultCategory + 3
	default:
		return p.defaultCategory
	}
}

func markdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
