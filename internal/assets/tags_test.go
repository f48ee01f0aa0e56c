package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags_SingleBlock(t *testing.T) {
	text := "Paragraph before.\n\n" +
		"<assets>\n" +
		"Asset 1: screenshot – The billing settings page with the upgrade button highlighted\n" +
		"Alt title: Billing settings\n" +
		"</assets>\n\n" +
		"Paragraph after."

	tags := ParseTags(text)

	require.Len(t, tags, 1)
	assert.Equal(t, KindScreenshot, tags[0].Kind)
	assert.Equal(t, "The billing settings page with the upgrade button highlighted", tags[0].Description)
	assert.Contains(t, tags[0].FullTag, "<assets>")
	assert.Contains(t, tags[0].FullTag, "</assets>")
}

func TestParseTags_DocumentOrderPreserved(t *testing.T) {
	text := "<assets>\nAsset 1: workflow – first diagram\n</assets>\n" +
		"middle text\n" +
		"<assets>\nAsset 2: infographic – second visual\n</assets>"

	tags := ParseTags(text)

	require.Len(t, tags, 2)
	assert.Equal(t, KindWorkflow, tags[0].Kind)
	assert.Equal(t, KindInfographic, tags[1].Kind)
}

func TestParseTags_UnknownTypeSkipped(t *testing.T) {
	text := "<assets>\nAsset 1: unknowntype – desc\n</assets>"

	tags := ParseTags(text)

	assert.Empty(t, tags)
}

func TestParseTags_HyphenSeparatorAccepted(t *testing.T) {
	text := "<assets>\nAsset 3: infographic - comparison of plans\n</assets>"

	tags := ParseTags(text)

	require.Len(t, tags, 1)
	assert.Equal(t, "comparison of plans", tags[0].Description)
}

func TestParseTags_CaseInsensitiveTypeAndTag(t *testing.T) {
	text := "<ASSETS>\nAsset 1: Screenshot – a thing\n</ASSETS>"

	tags := ParseTags(text)

	require.Len(t, tags, 1)
	assert.Equal(t, KindScreenshot, tags[0].Kind)
}

func TestParseTags_WorkflowV2(t *testing.T) {
	text := "<assets>\nAsset 1: workflowV2 – a multi step flow\n</assets>"

	tags := ParseTags(text)

	require.Len(t, tags, 1)
	assert.Equal(t, KindWorkflowV2, tags[0].Kind)
}

func TestParseTags_NoBlocks(t *testing.T) {
	assert.Empty(t, ParseTags("plain article text without any asset markers"))
}

func TestParseTags_BlockWithoutAssetLineSkipped(t *testing.T) {
	text := "<assets>\njust prose, no declaration\n</assets>"

	assert.Empty(t, ParseTags(text))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"screenshot", KindScreenshot},
		{"SCREENSHOT", KindScreenshot},
		{"internal", KindInternal},
		{"eesel_internal_asset", KindEeselInternal},
		{"workflow", KindWorkflow},
		{"workflowv2", KindWorkflowV2},
		{"workflowV2", KindWorkflowV2},
		{"infographic", KindInfographic},
		{"gif", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseKind(tt.input))
		})
	}
}
