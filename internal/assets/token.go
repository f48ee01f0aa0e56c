package assets

import (
	"regexp"
	"strings"
)

// Placeholder tokens have the shape __KIND::url::title::caption__ with
// KIND one of IMAGE, SCREENSHOTS, VIDEO. The terminator is a literal __,
// end of line, or end of input. Upstream generation sometimes wraps tokens
// in markdown emphasis (*) or appends stray :: delimiters; both are
// tolerated and stripped rather than rejected.

// tokenPattern builds the matcher for one token kind.
//
// Group 1: url (non-greedy up to the first ::)
// Group 2: title (a run of non-colon characters)
// Group 3: caption (non-greedy up to the terminator)
func tokenPattern(kind string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)\*{0,2}__` + kind + `::(.*?)::([^:\r\n]*)::(.*?)(?:__\*{0,2}|$)`)
}

var (
	imageTokenRe      = tokenPattern("IMAGE")
	screenshotTokenRe = tokenPattern("SCREENSHOTS")
	videoTokenRe      = tokenPattern("VIDEO")
)

// ImageToken formats an IMAGE placeholder.
func ImageToken(url, title, caption string) string {
	return "__IMAGE::" + url + "::" + title + "::" + caption + "__"
}

// ScreenshotToken formats a SCREENSHOTS placeholder.
func ScreenshotToken(url, title, caption string) string {
	return "__SCREENSHOTS::" + url + "::" + title + "::" + caption + "__"
}

// VideoToken formats a VIDEO placeholder.
func VideoToken(url, title, caption string) string {
	return "__VIDEO::" + url + "::" + title + "::" + caption + "__"
}

// CleanField normalizes an extracted title or caption: trims whitespace,
// truncates at any stray :: the model appended, and strips leading or
// trailing runs of colons. Colon and whitespace trimming runs to a fixed
// point on both sides of the truncation, so a leading colon run never
// triggers truncation-to-empty and truncation never exposes a trailing
// colon behind whitespace.
func CleanField(s string) string {
	s = trimColonRuns(s)
	if idx := strings.Index(s, "::"); idx >= 0 {
		s = s[:idx]
	}
	return trimColonRuns(s)
}

func trimColonRuns(s string) string {
	for {
		t := strings.Trim(strings.TrimSpace(s), ":")
		if t == s {
			return s
		}
		s = t
	}
}
