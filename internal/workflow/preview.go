package workflow

import (
	"context"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/pipeline"
)

// RunPreview executes the preview workflow: the shared front half, a
// metadata split, and the first draft. No polishing, linking, or asset
// resolution happens; the caller gets the raw draft.
func (e *Engine) RunPreview(ctx context.Context, input Input) (*PreviewResult, error) {
	e.logger.Info("Preview workflow started", "topic", input.Topic)

	st := &state{input: input}
	var diag pipeline.Diagnostics

	if err := e.runFrontHalf(ctx, st, &diag); err != nil {
		return nil, err
	}

	if err := e.metaSplit(ctx, st, &diag); err != nil {
		return nil, err
	}

	if err := e.writeDraft(ctx, st, &diag); err != nil {
		return nil, err
	}

	e.logger.Info("Preview workflow completed", "keyword", st.keyword)

	return &PreviewResult{
		Content:         st.draft,
		Title:           st.metadata.Title,
		Slug:            st.metadata.Slug,
		MetaDescription: st.metadata.MetaDescription,
		Excerpt:         st.metadata.Excerpt,
		Tags:            st.metadata.Tags,
		Metadata:        st.metadata,
		Diagnostics:     diag.Entries(),
		KeywordUsed:     st.keyword,
		Outline:         st.outline,
	}, nil
}

type metaSplitResult struct {
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	Excerpt         string `json:"excerpt"`
}

// metaSplit re-derives title/description/excerpt from the verified outline
// and fills any fields the metadata step left empty.
func (e *Engine) metaSplit(ctx context.Context, st *state, diag *pipeline.Diagnostics) error {
	_, err := runRequired(ctx, e, diag, "meta-split", nil,
		func(ctx context.Context) (struct{}, map[string]any, error) {
			var split metaSplitResult
			err := e.generator.GenerateStructured(ctx, ai.RoleParser, ai.MetaSplitPrompt(st.outline), ai.Tool{
				Name:        "save_meta_split",
				Description: "Save the split title, meta description, and excerpt",
				Properties: map[string]any{
					"title":           map[string]any{"type": "string"},
					"metaDescription": map[string]any{"type": "string"},
					"excerpt":         map[string]any{"type": "string"},
				},
				Required: []string{"title"},
			}, &split)
			if err != nil {
				return struct{}{}, nil, err
			}

			if st.metadata.Title == "" {
				st.metadata.Title = split.Title
			}
			if st.metadata.MetaDescription == "" {
				st.metadata.MetaDescription = split.MetaDescription
			}
			if st.metadata.Excerpt == "" {
				st.metadata.Excerpt = split.Excerpt
			}
			if st.metadata.Slug == "" && st.metadata.Title != "" {
				st.metadata.Slug = ai.GenerateSlug(st.metadata.Title)
			}
			return struct{}{}, nil, nil
		})
	return err
}
