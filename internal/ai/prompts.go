package ai

import (
	"fmt"
	"strings"
)

// Prompt templates are opaque strings assembled here so the workflow code
// stays free of prose. Wording changes are not behavior changes.

// MetadataPrompt asks for SEO metadata for a topic.
func MetadataPrompt(topic, keyword, additionalContext string) string {
	var b strings.Builder
	b.WriteString("Extract publishing metadata for a blog post.\n\n")
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	if keyword != "" {
		fmt.Fprintf(&b, "Preferred keyword: %s\n", keyword)
	}
	if additionalContext != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", additionalContext)
	}
	b.WriteString("\nProvide the primary keyword, a title, a URL slug, a meta description under 160 characters, a one-sentence excerpt, and 3-6 tags.")
	return b.String()
}

// CompanyProfilePrompt asks for a short profile of the company behind a URL.
func CompanyProfilePrompt(companyURL string) string {
	return fmt.Sprintf("Describe the company at %s in under 150 words: what it sells, who it serves, and its tone of voice. If the URL is unknown, answer with a generic profile for a B2B SaaS vendor.", companyURL)
}

// CompileContextPrompt merges research material into a working brief.
func CompileContextPrompt(keyword string, research []string) string {
	return fmt.Sprintf("Condense the following research into a factual brief for an article about %q. Keep concrete numbers and product names, drop marketing fluff.\n\n%s",
		keyword, strings.Join(research, "\n\n---\n\n"))
}

// OutlinePrompt asks for an article outline.
func OutlinePrompt(keyword, brief string) string {
	return fmt.Sprintf("Write a detailed H2/H3 outline for a blog post targeting the keyword %q. Base it strictly on this brief:\n\n%s", keyword, brief)
}

// GatherResearchURLsPrompt asks which official pages should be verified.
func GatherResearchURLsPrompt(outline string) string {
	return fmt.Sprintf("List the official product or documentation URLs that should be checked to verify the claims in this outline. One URL per line, no commentary.\n\n%s", outline)
}

// VerifyOutlinePrompt refines an outline against scraped source pages.
func VerifyOutlinePrompt(outline string, sources []string) string {
	return fmt.Sprintf("Correct any claims in this outline that conflict with the source pages below, and return the full corrected outline.\n\nOutline:\n%s\n\nSources:\n%s",
		outline, strings.Join(sources, "\n\n---\n\n"))
}

// DraftPrompt asks for the full first draft.
func DraftPrompt(keyword, outline, brief, companyProfile string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a complete blog post in markdown targeting the keyword %q. Follow this outline exactly:\n\n%s\n\n", keyword, outline)
	fmt.Fprintf(&b, "Ground every claim in this brief:\n\n%s\n", brief)
	if companyProfile != "" {
		fmt.Fprintf(&b, "\nWrite in the voice of this company:\n%s\n", companyProfile)
	}
	return b.String()
}

// PolishPrompt asks for a stylistic pass over the draft.
func PolishPrompt(draft string) string {
	return fmt.Sprintf("Polish this draft: tighten sentences, remove repetition, keep the markdown structure and all headings intact. Return the full revised markdown.\n\n%s", draft)
}

// FAQPrompt asks for FAQ entries derived from the draft.
func FAQPrompt(keyword, draft string) string {
	return fmt.Sprintf("Derive 3-5 frequently asked questions with concise answers about %q from this article.\n\n%s", keyword, draft)
}

// InternalLinksPrompt asks which internal pages are worth linking.
func InternalLinksPrompt(companyURL, draft string) string {
	return fmt.Sprintf("Given the site %s, list internal pages (absolute URLs) relevant to this article, one per line.\n\n%s", companyURL, draft)
}

// LinkingSourcesPrompt asks for source links woven into the draft.
func LinkingSourcesPrompt(draft string, sources, internal []string) string {
	return fmt.Sprintf("Add inline markdown links to this draft where claims reference the sources or internal pages below. Do not add link sections; weave them into existing sentences. Return the full markdown.\n\nDraft:\n%s\n\nSources:\n%s\n\nInternal pages:\n%s",
		draft, strings.Join(sources, "\n"), strings.Join(internal, "\n"))
}

// ReviewFlowPrompt asks for a final read-through pass.
func ReviewFlowPrompt(draft string) string {
	return fmt.Sprintf("Read this article start to finish and fix transitions that feel abrupt. Keep all headings, links, and markers exactly as they are. Return the full markdown.\n\n%s", draft)
}

// AssetsDefinerPrompt asks the model to insert <assets> suggestion blocks.
func AssetsDefinerPrompt(draft string) string {
	return "Insert <assets> blocks into this article where a visual would help. Each block must contain a line of the form " +
		"\"Asset N: <type> – <description>\" where type is one of screenshot, internal, eesel_internal_asset, workflow, workflowV2, infographic, " +
		"optionally followed by \"Alt title: <title>\". Do not move or rewrite any article text. Return the full markdown.\n\n" + draft
}

// MetaSplitPrompt asks for a title/description split for previews.
func MetaSplitPrompt(draft string) string {
	return fmt.Sprintf("Extract the title, a meta description under 160 characters, and a one-sentence excerpt from this draft.\n\n%s", draft)
}
