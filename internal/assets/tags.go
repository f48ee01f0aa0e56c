// Package assets implements the textual lifecycle of visual assets in a
// draft: <assets> suggestion blocks, inline placeholder tokens, and the
// final rendered markup. All parsing is tolerant of AI-generated noise;
// malformed input degrades to a skip, never an error.
package assets

import (
	"log/slog"
	"regexp"
	"strings"
)

// Kind classifies an <assets> block by its declared type.
type Kind int

const (
	// KindUnknown marks a type name outside the recognized set. Blocks of
	// this kind are always skippable.
	KindUnknown Kind = iota
	KindScreenshot
	KindInternal
	KindEeselInternal
	KindWorkflow
	KindWorkflowV2
	KindInfographic
)

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScreenshot:
		return "screenshot"
	case KindInternal:
		return "internal"
	case KindEeselInternal:
		return "eesel_internal_asset"
	case KindWorkflow:
		return "workflow"
	case KindWorkflowV2:
		return "workflowv2"
	case KindInfographic:
		return "infographic"
	default:
		return "unknown"
	}
}

// ParseKind maps a declared type name to a Kind. Matching is
// case-insensitive; anything outside the closed set maps to KindUnknown.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "screenshot":
		return KindScreenshot
	case "internal":
		return KindInternal
	case "eesel_internal_asset":
		return KindEeselInternal
	case "workflow":
		return KindWorkflow
	case "workflowv2":
		return KindWorkflowV2
	case "infographic":
		return KindInfographic
	default:
		return KindUnknown
	}
}

// Tag is one parsed <assets> block. Tags are transient: they exist between
// the definer pass that writes the block and the search pass that turns it
// into a placeholder or replacement.
type Tag struct {
	FullTag     string
	Kind        Kind
	Description string
}

var (
	assetBlockRe = regexp.MustCompile(`(?is)<assets>.*?</assets>`)
	assetLineRe  = regexp.MustCompile(`(?i)Asset\s*\d+\s*:\s*([A-Za-z0-9_]+)\s*[–—-]\s*`)
	altTitleRe   = regexp.MustCompile(`(?i)Alt title\s*:`)
	closeTagRe   = regexp.MustCompile(`(?i)</assets>`)
)

// ParseTags extracts every <assets> block from text in document order.
// Blocks with an unrecognized type are logged and skipped so that new asset
// kinds introduced upstream never crash the pipeline.
func ParseTags(text string) []Tag {
	blocks := assetBlockRe.FindAllString(text, -1)
	if len(blocks) == 0 {
		return nil
	}

	var tags []Tag
	for _, block := range blocks {
		loc := assetLineRe.FindStringSubmatchIndex(block)
		if loc == nil {
			slog.Warn("Asset block without an Asset line, skipping", "block", truncateForLog(block))
			continue
		}

		typeName := block[loc[2]:loc[3]]
		kind := ParseKind(typeName)
		if kind == KindUnknown {
			slog.Warn("Unrecognized asset type, skipping block", "type", typeName)
			continue
		}

		// Description runs from the end of the Asset line marker to the
		// Alt title label, or to the end of the block if absent.
		rest := block[loc[1]:]
		if alt := altTitleRe.FindStringIndex(rest); alt != nil {
			rest = rest[:alt[0]]
		} else if end := closeTagRe.FindStringIndex(rest); end != nil {
			rest = rest[:end[0]]
		}

		tags = append(tags, Tag{
			FullTag:     block,
			Kind:        kind,
			Description: strings.TrimSpace(rest),
		})
	}

	return tags
}

func truncateForLog(s string) string {
	if len(s) <= 80 {
		return s
	}
	return s[:80] + "..."
}
