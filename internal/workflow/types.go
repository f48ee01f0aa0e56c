// Package workflow composes the content-generation pipeline: ordered,
// timed steps that turn a topic into a preview draft or a publish-ready
// post. Steps fail fast except for the explicitly best-effort tail
// (banner selection and publishing).
package workflow

import (
	"context"
	"errors"

	"github.com/draftforge/draftforge/internal/media"
	"github.com/draftforge/draftforge/internal/pipeline"
	"github.com/draftforge/draftforge/internal/publish"
	"github.com/draftforge/draftforge/internal/research"
)

// ErrNoKeyword is returned when neither the metadata step nor the raw
// input yields a keyword. There is nothing meaningful to research, so the
// workflow aborts.
var ErrNoKeyword = errors.New("no keyword could be resolved from metadata or input")

// Input is the request accepted by both workflow entry points.
type Input struct {
	Topic             string `json:"topic" binding:"required"`
	Keyword           string `json:"keyword,omitempty"`
	AdditionalContext string `json:"additional_context,omitempty"`
	CompanyURL        string `json:"company_url,omitempty"`
	InternalUsage     bool   `json:"internalUsage,omitempty"`
}

// Metadata is the SEO envelope extracted up front.
type Metadata struct {
	Keyword         string   `json:"keyword"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	MetaDescription string   `json:"metaDescription"`
	Excerpt         string   `json:"excerpt"`
	Tags            []string `json:"tags"`
}

// FAQ is one question/answer pair generated during polishing.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PreviewResult is the terminal record of the preview workflow: the raw
// first draft plus metadata, without polishing or asset resolution.
type PreviewResult struct {
	Content         string                 `json:"content"`
	Title           string                 `json:"title"`
	Slug            string                 `json:"slug"`
	MetaDescription string                 `json:"metaDescription"`
	Excerpt         string                 `json:"excerpt"`
	Tags            []string               `json:"tags"`
	Metadata        Metadata               `json:"metadata"`
	Diagnostics     []pipeline.PhaseTiming `json:"diagnostics"`
	KeywordUsed     string                 `json:"keywordUsed"`
	Outline         string                 `json:"outline"`
}

// PostResult is the terminal record of the full workflow.
type PostResult struct {
	PreviewResult

	CategoryID           int    `json:"categoryId"`
	BannerID             int    `json:"bannerId"`
	FAQs                 []FAQ  `json:"faqs"`
	LiveBlogURL          string `json:"liveBlogURL"`
	PublishedToWordPress bool   `json:"publishedToWordPress"`
	WordPressPostID      int    `json:"wordPressPostId"`
}

// Searcher is the web/video search collaborator.
type Searcher interface {
	SearchWeb(ctx context.Context, query string) ([]research.SearchResult, error)
	SearchVideos(ctx context.Context, query string) ([]research.SearchResult, error)
}

// Scraper is the page and transcript retrieval collaborator.
type Scraper interface {
	ScrapeURL(ctx context.Context, url string) (string, error)
	FetchTranscript(ctx context.Context, videoURL string) (string, error)
}

// MediaLibrary is the asset-producing collaborator.
type MediaLibrary interface {
	CaptureScreenshot(ctx context.Context, pageURL, title, companyName string) (*media.Asset, error)
	GenerateVisual(ctx context.Context, description string) (*media.Asset, error)
	PickBanner(ctx context.Context, keyword string) (int, error)
}

// Publisher is the CMS collaborator.
type Publisher interface {
	Publish(ctx context.Context, post publish.Post) (*publish.Result, error)
	CategoryForKeyword(keyword string) int
}
