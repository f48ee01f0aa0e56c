// Package ai provides the language-model capability behind every
// generation step: plain text completion and structured (tool-backed)
// output, parameterized by a logical model role.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/draftforge/draftforge/internal/config"
)

// ModelRole names a logical model assignment. Roles decouple pipeline
// steps from concrete provider model IDs.
type ModelRole string

const (
	// RoleWriter produces the long-form article text.
	RoleWriter ModelRole = "writer"
	// RoleResearch compiles and summarizes research material.
	RoleResearch ModelRole = "research"
	// RoleParser handles extraction and reformatting tasks.
	RoleParser ModelRole = "parser"
	// RoleAssets resolves asset suggestions to placements.
	RoleAssets ModelRole = "assets"
	// RoleCompanySearch builds the company profile.
	RoleCompanySearch ModelRole = "company-search"
)

// Tool describes the structured-output schema for GenerateStructured.
type Tool struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// Generator is the text/object completion capability consumed by the
// workflow. Implementations must be safe for concurrent use.
type Generator interface {
	GenerateText(ctx context.Context, role ModelRole, prompt string) (string, error)
	GenerateStructured(ctx context.Context, role ModelRole, prompt string, tool Tool, out any) error
}

// Client routes roles to providers: the writer role goes to Anthropic,
// everything else to OpenAI.
type Client struct {
	openAIKey    string
	anthropicKey string

	writerModel   string
	researchModel string
	parserModel   string
}

// NewClient creates a Client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		openAIKey:     cfg.OpenAIAPIKey,
		anthropicKey:  cfg.AnthropicAPIKey,
		writerModel:   cfg.WriterModel,
		researchModel: cfg.ResearchModel,
		parserModel:   cfg.ParserModel,
	}
}

// GenerateText returns a plain-text completion for the prompt.
func (c *Client) GenerateText(ctx context.Context, role ModelRole, prompt string) (string, error) {
	if role == RoleWriter {
		return c.anthropicText(ctx, prompt)
	}
	return c.openAIText(ctx, c.openAIModel(role), prompt)
}

// GenerateStructured fills out with a structured completion. The writer
// role uses Anthropic tool-use; other roles use a JSON-only completion
// parsed defensively.
func (c *Client) GenerateStructured(ctx context.Context, role ModelRole, prompt string, tool Tool, out any) error {
	if role == RoleWriter {
		return c.anthropicStructured(ctx, prompt, tool, out)
	}

	raw, err := c.openAIText(ctx, c.openAIModel(role), prompt+"\n\nRespond with only a valid JSON object, no prose and no code fences.")
	if err != nil {
		return err
	}
	return parseJSONResponse(raw, out)
}

func (c *Client) openAIModel(role ModelRole) string {
	switch role {
	case RoleParser, RoleAssets:
		return c.parserModel
	default:
		return c.researchModel
	}
}

// parseJSONResponse strips an optional code fence before unmarshaling,
// since models fence JSON despite instructions.
func parseJSONResponse(raw string, out any) error {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}

	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), out); err != nil {
		return fmt.Errorf("failed to parse model JSON response: %w", err)
	}
	return nil
}
