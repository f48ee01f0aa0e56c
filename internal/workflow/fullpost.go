package workflow

import (
	"context"
	"fmt"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/assets"
	"github.com/draftforge/draftforge/internal/pipeline"
	"github.com/draftforge/draftforge/internal/publish"
)

// RunFull executes the full-publish workflow: the shared front half, the
// draft, polishing, linking, asset resolution, and (in internal usage
// mode) banner selection and WordPress publishing. The last two are
// best-effort; everything before them is fail-fast.
func (e *Engine) RunFull(ctx context.Context, input Input) (*PostResult, error) {
	e.logger.Info("Full workflow started", "topic", input.Topic, "internal_usage", input.InternalUsage)

	st := &state{input: input}
	var diag pipeline.Diagnostics

	if err := e.runFrontHalf(ctx, st, &diag); err != nil {
		return nil, err
	}
	if err := e.writeDraft(ctx, st, &diag); err != nil {
		return nil, err
	}
	if err := e.polish(ctx, st, &diag); err != nil {
		return nil, err
	}

	internalLinks, err := e.gatherInternalLinks(ctx, st, &diag)
	if err != nil {
		return nil, err
	}

	st.draft, err = runRequired(ctx, e, &diag, "linking-sources", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			linked, err := e.generator.GenerateText(ctx, ai.RoleWriter,
				ai.LinkingSourcesPrompt(st.draft, st.sourceURLs, internalLinks))
			return linked, nil, err
		})
	if err != nil {
		return nil, err
	}

	st.draft, err = runRequired(ctx, e, &diag, "review-flow", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			reviewed, err := e.generator.GenerateText(ctx, ai.RoleWriter, ai.ReviewFlowPrompt(st.draft))
			return reviewed, nil, err
		})
	if err != nil {
		return nil, err
	}

	st.draft, err = runRequired(ctx, e, &diag, "assets-definer", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			defined, err := e.generator.GenerateText(ctx, ai.RoleAssets, ai.AssetsDefinerPrompt(st.draft))
			return defined, nil, err
		})
	if err != nil {
		return nil, err
	}

	st.draft, err = runRequired(ctx, e, &diag, "assets-search", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			return e.resolveAssets(ctx, st)
		})
	if err != nil {
		return nil, err
	}

	content, err := runRequired(ctx, e, &diag, "assets-process-tags", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			if input.InternalUsage {
				return assets.RenderHTML(st.draft), map[string]any{"format": "html"}, nil
			}
			return assets.RenderMarkdown(st.draft), map[string]any{"format": "markdown"}, nil
		})
	if err != nil {
		return nil, err
	}

	result := &PostResult{
		PreviewResult: PreviewResult{
			Content:         content,
			Title:           st.metadata.Title,
			Slug:            st.metadata.Slug,
			MetaDescription: st.metadata.MetaDescription,
			Excerpt:         st.metadata.Excerpt,
			Tags:            st.metadata.Tags,
			Metadata:        st.metadata,
			KeywordUsed:     st.keyword,
			Outline:         st.outline,
		},
		FAQs:       st.faqs,
		CategoryID: e.publisher.CategoryForKeyword(st.keyword),
	}

	// Banner selection and publishing are best-effort final actions, the
	// one deliberate deviation from fail-fast. A failure is logged,
	// recorded with zero duration, and replaced by defaults.
	if input.InternalUsage {
		result.BannerID = runOptional(ctx, e, &diag, "banner-picker", 0,
			func(ctx context.Context) (int, map[string]any, error) {
				id, err := e.media.PickBanner(ctx, st.keyword)
				return id, nil, err
			})

		pub := runOptional(ctx, e, &diag, "publish-to-wordpress", (*publish.Result)(nil),
			func(ctx context.Context) (*publish.Result, map[string]any, error) {
				res, err := e.publisher.Publish(ctx, publish.Post{
					Title:           st.metadata.Title,
					Slug:            st.metadata.Slug,
					Content:         content,
					ContentIsHTML:   true,
					Excerpt:         st.metadata.Excerpt,
					MetaDescription: st.metadata.MetaDescription,
					CategoryID:      result.CategoryID,
					BannerID:        result.BannerID,
					Tags:            st.metadata.Tags,
				})
				if err != nil {
					return nil, nil, fmt.Errorf("publish failed: %w", err)
				}
				return res, map[string]any{"post_id": res.PostID}, nil
			})
		if pub != nil {
			result.PublishedToWordPress = true
			result.WordPressPostID = pub.PostID
			result.LiveBlogURL = pub.PostURL
		}
	}

	result.Diagnostics = diag.Entries()

	e.logger.Info("Full workflow completed",
		"keyword", st.keyword,
		"published", result.PublishedToWordPress,
	)

	return result, nil
}

// polish runs the stylistic pass and FAQ generation as one phase.
func (e *Engine) polish(ctx context.Context, st *state, diag *pipeline.Diagnostics) error {
	_, err := runRequired(ctx, e, diag, "final-polish", nil,
		func(ctx context.Context) (struct{}, map[string]any, error) {
			polished, err := e.generator.GenerateText(ctx, ai.RoleWriter, ai.PolishPrompt(st.draft))
			if err != nil {
				return struct{}{}, nil, err
			}
			st.draft = polished

			var faqs struct {
				FAQs []FAQ `json:"faqs"`
			}
			if err := e.generator.GenerateStructured(ctx, ai.RoleWriter, ai.FAQPrompt(st.keyword, st.draft), faqTool, &faqs); err != nil {
				return struct{}{}, nil, err
			}
			st.faqs = faqs.FAQs

			return struct{}{}, map[string]any{"faqs": len(st.faqs)}, nil
		})
	return err
}

// gatherInternalLinks runs only when a company URL was supplied; without
// one the workflow proceeds with an empty list and no diagnostics entry.
func (e *Engine) gatherInternalLinks(ctx context.Context, st *state, diag *pipeline.Diagnostics) ([]string, error) {
	if st.input.CompanyURL == "" {
		return nil, nil
	}

	return runRequired(ctx, e, diag, "gather-internal-links", nil,
		func(ctx context.Context) ([]string, map[string]any, error) {
			answer, err := e.generator.GenerateText(ctx, ai.RoleParser,
				ai.InternalLinksPrompt(st.input.CompanyURL, st.draft))
			if err != nil {
				return nil, nil, err
			}
			links := parseURLLines(answer)
			return links, map[string]any{"links": len(links)}, nil
		})
}
