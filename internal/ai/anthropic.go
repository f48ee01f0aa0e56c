package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxTokens = 8192

// anthropicText runs a single-turn message against Anthropic and returns
// the first text block.
func (c *Client) anthropicText(ctx context.Context, prompt string) (string, error) {
	if c.anthropicKey == "" {
		return "", errors.New("API key required: set ANTHROPIC_API_KEY")
	}

	client := anthropic.NewClient(option.WithAPIKey(c.anthropicKey))

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.writerModel),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate text via Anthropic API: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", errors.New("empty response from Anthropic API")
	}

	textBlock, ok := resp.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", errors.New("unexpected response type from Anthropic API")
	}

	return textBlock.Text, nil
}

// anthropicStructured forces a tool call matching the Tool schema and
// unmarshals the tool input into out.
func (c *Client) anthropicStructured(ctx context.Context, prompt string, tool Tool, out any) error {
	if c.anthropicKey == "" {
		return errors.New("API key required: set ANTHROPIC_API_KEY")
	}

	client := anthropic.NewClient(option.WithAPIKey(c.anthropicKey))

	toolDef := anthropic.ToolParam{
		Name:        tool.Name,
		Description: anthropic.String(tool.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type:       "object",
			Properties: tool.Properties,
			Required:   tool.Required,
		},
	}

	toolUnion := anthropic.ToolUnionParamOfTool(toolDef.InputSchema, toolDef.Name)
	toolUnion.OfTool.Description = toolDef.Description

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.writerModel),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools:      []anthropic.ToolUnionParam{toolUnion},
		ToolChoice: anthropic.ToolChoiceParamOfTool(tool.Name),
	})
	if err != nil {
		return fmt.Errorf("failed to generate structured output via Anthropic API: %w", err)
	}
	if len(resp.Content) == 0 {
		return errors.New("empty response from Anthropic API")
	}

	return parseToolUse(resp.Content, out)
}

// parseToolUse extracts the first tool-use block and unmarshals its input.
func parseToolUse(content []anthropic.ContentBlockUnion, out any) error {
	for _, block := range content {
		if toolUse, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			inputBytes, err := json.Marshal(toolUse.Input)
			if err != nil {
				return fmt.Errorf("failed to marshal tool input: %w", err)
			}
			if err := json.Unmarshal(inputBytes, out); err != nil {
				return fmt.Errorf("failed to parse tool input: %w", err)
			}
			return nil
		}
	}

	return errors.New("no tool use found in Anthropic API response")
}
