package workflow

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/assets"
	"github.com/draftforge/draftforge/internal/pipeline"
	"github.com/draftforge/draftforge/internal/research"
	"github.com/draftforge/draftforge/pkg/collections"
)

// state carries the intermediate products threaded between phases of one
// workflow invocation. It is owned by a single goroutine.
type state struct {
	input Input

	metadata       Metadata
	companyProfile string
	keyword        string

	researchDocs []string
	videoURLs    []string
	transcripts  []string
	brief        string
	outline      string
	sourceURLs   []string
	officialDocs []string

	draft string
	faqs  []FAQ
}

var metadataTool = ai.Tool{
	Name:        "save_metadata",
	Description: "Save the publishing metadata for the blog post",
	Properties: map[string]any{
		"keyword":         map[string]any{"type": "string", "description": "Primary SEO keyword"},
		"title":           map[string]any{"type": "string", "description": "Post title"},
		"slug":            map[string]any{"type": "string", "description": "URL slug"},
		"metaDescription": map[string]any{"type": "string", "description": "Meta description under 160 characters"},
		"excerpt":         map[string]any{"type": "string", "description": "One-sentence excerpt"},
		"tags":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	Required: []string{"keyword", "title"},
}

var faqTool = ai.Tool{
	Name:        "save_faqs",
	Description: "Save the FAQ entries for the blog post",
	Properties: map[string]any{
		"faqs": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string"},
					"answer":   map[string]any{"type": "string"},
				},
				"required": []string{"question", "answer"},
			},
		},
	},
	Required: []string{"faqs"},
}

// runFrontHalf executes the phases shared by both workflows, from metadata
// extraction through the verified outline.
func (e *Engine) runFrontHalf(ctx context.Context, st *state, diag *pipeline.Diagnostics) error {
	// metadata and company-profile have no data dependency; run them
	// concurrently and join before research. Diagnostics are appended
	// here, after the join, never inside the branches.
	var (
		metaRes    pipeline.StepResult[Metadata]
		profileRes pipeline.StepResult[string]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metaRes, err = pipeline.RunStep(gctx, e.logger, "metadata", map[string]any{"topic": st.input.Topic},
			func(ctx context.Context) (Metadata, map[string]any, error) {
				return e.extractMetadata(ctx, st.input)
			})
		return err
	})
	g.Go(func() error {
		var err error
		profileRes, err = pipeline.RunStep(gctx, e.logger, "company-profile", nil,
			func(ctx context.Context) (string, map[string]any, error) {
				return e.companyProfile(ctx, st.input.CompanyURL)
			})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	diag.Record("metadata", metaRes.DurationMs)
	diag.Record("company-profile", profileRes.DurationMs)

	st.metadata = metaRes.Value
	st.companyProfile = profileRes.Value

	st.keyword = strings.TrimSpace(st.metadata.Keyword)
	if st.keyword == "" {
		st.keyword = strings.TrimSpace(st.input.Keyword)
	}
	if st.keyword == "" {
		return ErrNoKeyword
	}

	var err error

	st.researchDocs, err = runRequired(ctx, e, diag, "research", map[string]any{"keyword": st.keyword},
		func(ctx context.Context) ([]string, map[string]any, error) {
			results, err := e.searcher.SearchWeb(ctx, st.keyword)
			if err != nil {
				return nil, nil, fmt.Errorf("web search failed: %w", err)
			}
			urls := collections.Apply(results, func(r research.SearchResult) string { return r.URL })
			docs := e.scrapeAll(ctx, urls, e.maxScrapeURLs)
			return docs, map[string]any{"results": len(results), "scraped": len(docs)}, nil
		})
	if err != nil {
		return err
	}

	st.videoURLs, err = runRequired(ctx, e, diag, "youtube-search", nil,
		func(ctx context.Context) ([]string, map[string]any, error) {
			videos, err := e.searcher.SearchVideos(ctx, st.keyword)
			if err != nil {
				return nil, nil, fmt.Errorf("video search failed: %w", err)
			}
			if e.maxVideos > 0 && len(videos) > e.maxVideos {
				videos = videos[:e.maxVideos]
			}
			urls := collections.Apply(videos, func(v research.SearchResult) string { return v.URL })
			return urls, map[string]any{"videos": len(urls)}, nil
		})
	if err != nil {
		return err
	}

	// Transcripts only make sense when the search found videos; the
	// phase is skipped entirely otherwise, with no diagnostics entry.
	if len(st.videoURLs) > 0 {
		st.transcripts, err = runRequired(ctx, e, diag, "youtube-transcripts", nil,
			func(ctx context.Context) ([]string, map[string]any, error) {
				docs := e.fetchTranscripts(ctx, st.videoURLs)
				return docs, map[string]any{"transcripts": len(docs)}, nil
			})
		if err != nil {
			return err
		}
	}

	st.brief, err = runRequired(ctx, e, diag, "compile-context", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			material := append(append([]string{}, st.researchDocs...), st.transcripts...)
			brief, err := e.generator.GenerateText(ctx, ai.RoleResearch, ai.CompileContextPrompt(st.keyword, material))
			return brief, nil, err
		})
	if err != nil {
		return err
	}

	st.outline, err = runRequired(ctx, e, diag, "generate-outline", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			outline, err := e.generator.GenerateText(ctx, ai.RoleWriter, ai.OutlinePrompt(st.keyword, st.brief))
			return outline, nil, err
		})
	if err != nil {
		return err
	}

	st.sourceURLs, err = runRequired(ctx, e, diag, "gather-research-urls", nil,
		func(ctx context.Context) ([]string, map[string]any, error) {
			answer, err := e.generator.GenerateText(ctx, ai.RoleParser, ai.GatherResearchURLsPrompt(st.outline))
			if err != nil {
				return nil, nil, err
			}
			urls := parseURLLines(answer)
			return urls, map[string]any{"urls": len(urls)}, nil
		})
	if err != nil {
		return err
	}

	st.officialDocs, err = runRequired(ctx, e, diag, "scrape-official-pages", nil,
		func(ctx context.Context) ([]string, map[string]any, error) {
			docs := e.scrapeAll(ctx, st.sourceURLs, e.maxScrapeURLs)
			return docs, map[string]any{"scraped": len(docs)}, nil
		})
	if err != nil {
		return err
	}

	st.outline, err = runRequired(ctx, e, diag, "outline-verified", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			verified, err := e.generator.GenerateText(ctx, ai.RoleWriter, ai.VerifyOutlinePrompt(st.outline, st.officialDocs))
			return verified, nil, err
		})
	return err
}

// extractMetadata asks the writer model for the SEO envelope, filling the
// slug from the title when the model omits it.
func (e *Engine) extractMetadata(ctx context.Context, input Input) (Metadata, map[string]any, error) {
	var md Metadata
	err := e.generator.GenerateStructured(ctx, ai.RoleWriter,
		ai.MetadataPrompt(input.Topic, input.Keyword, input.AdditionalContext), metadataTool, &md)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("metadata extraction failed: %w", err)
	}

	if md.Slug == "" && md.Title != "" {
		md.Slug = ai.GenerateSlug(md.Title)
	}

	return md, map[string]any{"keyword": md.Keyword}, nil
}

// companyProfile builds a short voice profile. Without a company URL the
// phase still runs and yields an empty profile.
func (e *Engine) companyProfile(ctx context.Context, companyURL string) (string, map[string]any, error) {
	if companyURL == "" {
		return "", nil, nil
	}
	profile, err := e.generator.GenerateText(ctx, ai.RoleCompanySearch, ai.CompanyProfilePrompt(companyURL))
	if err != nil {
		return "", nil, fmt.Errorf("company profile failed: %w", err)
	}
	return profile, nil, nil
}

// writeDraft generates the full first draft from the verified outline.
func (e *Engine) writeDraft(ctx context.Context, st *state, diag *pipeline.Diagnostics) error {
	draft, err := runRequired(ctx, e, diag, "write-first-draft", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			draft, err := e.generator.GenerateText(ctx, ai.RoleWriter,
				ai.DraftPrompt(st.keyword, st.outline, st.brief, st.companyProfile))
			if err != nil {
				return "", nil, err
			}
			return draft, map[string]any{"chars": len(draft)}, nil
		})
	if err != nil {
		return err
	}
	st.draft = draft
	return nil
}

// resolveAssets turns parsed <assets> tags into placeholder tokens via the
// media collaborators. Individual resolution failures leave the tag in
// place; unresolved blocks are purged during rendering.
func (e *Engine) resolveAssets(ctx context.Context, st *state) (string, map[string]any, error) {
	tags := assets.ParseTags(st.draft)
	if len(tags) == 0 {
		return st.draft, map[string]any{"tags": 0}, nil
	}

	var replacements []assets.Replacement
	for _, tag := range tags {
		token, ok := e.resolveOneAsset(ctx, st, tag)
		if !ok {
			continue
		}
		replacements = append(replacements, assets.Replacement{
			OriginalBlock: tag.FullTag,
			Replacement:   token,
		})
	}

	resolved := assets.Reconstruct(st.draft, replacements)
	return resolved, map[string]any{"tags": len(tags), "resolved": len(replacements)}, nil
}

// resolveOneAsset maps one tag to a placeholder token. Internal asset
// kinds are only resolvable in internal usage mode.
func (e *Engine) resolveOneAsset(ctx context.Context, st *state, tag assets.Tag) (string, bool) {
	switch tag.Kind {
	case assets.KindScreenshot:
		target := st.input.CompanyURL
		if target == "" && len(st.sourceURLs) > 0 {
			target = st.sourceURLs[0]
		}
		if target == "" {
			return "", false
		}
		asset, err := e.media.CaptureScreenshot(ctx, target, tag.Description, st.input.CompanyURL)
		if err != nil || asset == nil {
			e.logger.Warn("Screenshot resolution failed, leaving tag", "error", err)
			return "", false
		}
		return assets.ScreenshotToken(asset.URL, asset.Title, tag.Description), true

	case assets.KindInternal, assets.KindEeselInternal:
		if !st.input.InternalUsage {
			return "", false
		}
		asset, err := e.media.GenerateVisual(ctx, tag.Description)
		if err != nil || asset == nil {
			e.logger.Warn("Internal asset resolution failed, leaving tag", "error", err)
			return "", false
		}
		return assets.ImageToken(asset.URL, asset.Title, tag.Description), true

	case assets.KindWorkflow, assets.KindWorkflowV2, assets.KindInfographic:
		asset, err := e.media.GenerateVisual(ctx, tag.Description)
		if err != nil || asset == nil {
			e.logger.Warn("Visual generation failed, leaving tag", "error", err)
			return "", false
		}
		return assets.ImageToken(asset.URL, asset.Title, tag.Description), true

	default:
		return "", false
	}
}
