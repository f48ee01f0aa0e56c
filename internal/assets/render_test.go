package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTML_ImageToken(t *testing.T) {
	in := "Intro paragraph.\n\n__IMAGE::https://cdn.example.com/shot.png::Dashboard::The main dashboard__\n\nOutro."

	out := RenderHTML(in)

	assert.NotContains(t, out, "__IMAGE::")
	assert.Contains(t, out, `src="https://cdn.example.com/shot.png"`)
	assert.Contains(t, out, `alt="The main dashboard"`)
	assert.Contains(t, out, "Intro paragraph.")
	assert.Contains(t, out, "Outro.")
}

func TestRenderHTML_ScreenshotToken(t *testing.T) {
	in := "__SCREENSHOTS::https://cdn.example.com/s.png::Settings page::Where to click__"

	out := RenderHTML(in)

	assert.NotContains(t, out, "__SCREENSHOTS::")
	assert.Contains(t, out, `<pre><img class="alignnone size-medium wp-image"`)
	assert.Contains(t, out, `alt="Where to click"`)
}

func TestRenderHTML_VideoToken(t *testing.T) {
	in := "__VIDEO::https://cdn.example.com/demo.mp4::Demo::Quick demo__"

	out := RenderHTML(in)

	assert.NotContains(t, out, "__VIDEO::")
	assert.Contains(t, out, `[video width="640" height="360" mp4="https://cdn.example.com/demo.mp4"][/video]`)
}

func TestRenderHTML_MarkdownEmphasisNoise(t *testing.T) {
	in := "**__IMAGE::https://cdn.example.com/a.png::T::C__**"

	out := RenderHTML(in)

	assert.NotContains(t, out, "__IMAGE::")
	assert.NotContains(t, out, "**<pre>")
	assert.Contains(t, out, `src="https://cdn.example.com/a.png"`)
}

func TestRenderHTML_NewlineTerminatedToken(t *testing.T) {
	in := "__IMAGE::https://cdn.example.com/a.png::T::caption without closing\nnext line"

	out := RenderHTML(in)

	assert.NotContains(t, out, "__IMAGE::")
	assert.Contains(t, out, `alt="caption without closing"`)
	assert.Contains(t, out, "next line")
}

func TestRenderHTML_NoisyCaptionCleaned(t *testing.T) {
	in := "__IMAGE::https://cdn.example.com/a.png::Title::real caption::stray tail__"

	out := RenderHTML(in)

	assert.Contains(t, out, `alt="real caption"`)
	assert.NotContains(t, out, "stray tail")
}

func TestRenderHTML_PurgesUnresolvedAssetBlocks(t *testing.T) {
	in := "Before.\n<assets>\nAsset 1: screenshot – settings page view\n</assets>\nAfter."

	out := RenderHTML(in)

	assert.NotContains(t, out, "<assets>")
	assert.NotContains(t, out, "settings page view")
	assert.Contains(t, out, "Before.")
	assert.Contains(t, out, "After.")
}

func TestRenderHTML_WrapsIframes(t *testing.T) {
	in := "Watch:\n<iframe src=\"https://www.youtube.com/embed/abc\"\n  width=\"560\"\n  height=\"315\">\n</iframe>\n\nDone."

	out := RenderHTML(in)

	assert.Contains(t, out, "<pre><iframe")
	assert.Contains(t, out, "</iframe></pre>")
	// Internal whitespace collapsed to single spaces.
	wrapped := out[strings.Index(out, "<pre><iframe"):strings.Index(out, "</pre>")]
	assert.NotContains(t, wrapped, "\n")
	assert.NotContains(t, wrapped, "  ")
}

func TestRenderHTML_StripsStrayColonsBeforeClosingPre(t *testing.T) {
	in := "<iframe src=\"https://example.com/embed\"></iframe>::"

	out := RenderHTML(in)

	assert.NotContains(t, out, "::</pre>")
}

func TestRenderHTML_Idempotent(t *testing.T) {
	inputs := []string{
		"no tokens at all",
		"__IMAGE::https://cdn.example.com/a.png::T::C__",
		"__VIDEO::https://cdn.example.com/v.mp4::T::C__ and\n<iframe src=\"x\"></iframe>",
		"<assets>\nAsset 1: screenshot – desc\n</assets>\n__SCREENSHOTS::u::t::c__",
	}

	for _, in := range inputs {
		once := RenderHTML(in)
		twice := RenderHTML(once)
		assert.Equal(t, once, twice, "RenderHTML not idempotent for %q", in)
	}
}

func TestRenderMarkdown_ImageToken(t *testing.T) {
	in := "__IMAGE::https://cdn.example.com/a.png::Title::A caption__"

	out := RenderMarkdown(in)

	assert.Equal(t, "![A caption](https://cdn.example.com/a.png)\n\n_A caption_", out)
}

func TestRenderMarkdown_VideoDefaults(t *testing.T) {
	in := "__VIDEO::https://cdn.example.com/v.mp4::::__"

	out := RenderMarkdown(in)

	assert.Contains(t, out, "[Video](https://cdn.example.com/v.mp4)")
	assert.Contains(t, out, defaultVideoCaption)
}

func TestRenderMarkdown_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"__IMAGE::u::t::c__ middle __VIDEO::v::vt::vc__",
	}

	for _, in := range inputs {
		once := RenderMarkdown(in)
		assert.Equal(t, once, RenderMarkdown(once))
	}
}
