package assets

import (
	"fmt"
	"regexp"
	"strings"
)

const defaultVideoTitle = "Video"
const defaultVideoCaption = "Watch the video above for a closer look."

var (
	iframeRe     = regexp.MustCompile(`(?is)(<pre>\s*)?<iframe.*?</iframe>(?:\s*:{1,2})?`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	strayColonRe = regexp.MustCompile(`:{1,2}\s*</pre>`)
)

// RenderHTML converts every placeholder token in text to CMS-ready HTML,
// deletes unresolved <assets> blocks, and wraps inline iframes in <pre>
// tags. Applying it to its own output is a no-op.
func RenderHTML(text string) string {
	out := replaceTokens(imageTokenRe, text, htmlImage)
	out = replaceTokens(screenshotTokenRe, out, htmlImage)
	out = replaceTokens(videoTokenRe, out, htmlVideo)
	out = StripAssetBlocks(out)
	out = wrapIframes(out)
	return strayColonRe.ReplaceAllString(out, "</pre>")
}

// RenderMarkdown converts every placeholder token in text to Markdown and
// deletes unresolved <assets> blocks. Applying it to its own output is a
// no-op.
func RenderMarkdown(text string) string {
	out := replaceTokens(imageTokenRe, text, markdownImage)
	out = replaceTokens(screenshotTokenRe, out, markdownImage)
	out = replaceTokens(videoTokenRe, out, markdownVideo)
	return StripAssetBlocks(out)
}

// StripAssetBlocks deletes every remaining <assets>...</assets> region.
// Unresolved blocks are designer-only suggestions and must never reach
// published content.
func StripAssetBlocks(text string) string {
	return assetBlockRe.ReplaceAllString(text, "")
}

func replaceTokens(re *regexp.Regexp, text string, render func(url, title, caption string) string) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		sub := re.FindStringSubmatch(match)
		url := strings.TrimSpace(sub[1])
		title := CleanField(sub[2])
		caption := CleanField(sub[3])
		return render(url, title, caption)
	})
}

func htmlImage(url, _, caption string) string {
	return fmt.Sprintf(
		`<pre><img class="alignnone size-medium wp-image" src="%s" alt="%s" width="300" height="169" />%s</pre>`,
		url, caption, caption)
}

func htmlVideo(url, _, _ string) string {
	return fmt.Sprintf(`[video width="640" height="360" mp4="%s"][/video]`, url)
}

func markdownImage(url, _, caption string) string {
	return fmt.Sprintf("![%s](%s)\n\n_%s_", caption, url, caption)
}

func markdownVideo(url, title, caption string) string {
	if title == "" {
		title = defaultVideoTitle
	}
	if caption == "" {
		caption = defaultVideoCaption
	}
	return fmt.Sprintf("[%s](%s)\n\n_%s_", title, url, caption)
}

// wrapIframes wraps bare <iframe> embeds in <pre> tags with internal
// whitespace collapsed to single spaces. Iframes already inside a <pre>
// are left untouched, which keeps the pass idempotent.
func wrapIframes(text string) string {
	return iframeRe.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(strings.ToLower(match), "<pre>") {
			return match
		}
		collapsed := whitespaceRe.ReplaceAllString(strings.TrimSpace(match), " ")
		collapsed = strings.TrimRight(collapsed, ": ")
		return "<pre>" + collapsed + "</pre>"
	})
}
