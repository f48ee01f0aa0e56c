package assets

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// Replacement is one pending literal substitution: the exact block of text
// to find and what to put in its place. Blocks that are not present in the
// text at application time are skipped silently.
type Replacement struct {
	OriginalBlock string `json:"original_block"`
	Replacement   string `json:"replacement"`
}

// replacementPayload is the decoded form of whatever shape the caller
// handed us: a proper list, a raw string needing parsing, or something
// unusable.
type replacementPayload struct {
	items  []Replacement
	usable bool
}

// Reconstruct applies replacements to original and returns the result.
// replacements may be a []Replacement, a JSON (or JSON-ish) string possibly
// wrapped in a markdown code fence, or anything else. Every failure mode is
// fail-soft: the worst outcome is the original text unchanged.
//
// Substitution is literal, never regex-based. Blocks originate from
// AI-authored text and routinely contain regex metacharacters.
func Reconstruct(original string, replacements any) string {
	payload := decodeReplacements(replacements)
	if !payload.usable {
		return original
	}

	result := original
	for i, rep := range payload.items {
		if rep.OriginalBlock == "" || rep.Replacement == "" {
			slog.Warn("Replacement entry missing a field, skipping", "index", i)
			continue
		}
		result = strings.ReplaceAll(result, rep.OriginalBlock, rep.Replacement)
	}

	return result
}

// decodeReplacements normalizes the dynamic payload into a tagged result
// instead of scattering type sniffing through the applier.
func decodeReplacements(v any) replacementPayload {
	switch val := v.(type) {
	case []Replacement:
		if len(val) == 0 {
			return replacementPayload{usable: false}
		}
		return replacementPayload{items: val, usable: true}
	case string:
		items, ok := parseReplacementString(val)
		if !ok || len(items) == 0 {
			return replacementPayload{usable: false}
		}
		return replacementPayload{items: items, usable: true}
	default:
		slog.Warn("Replacements have an unusable shape, returning text unchanged")
		return replacementPayload{usable: false}
	}
}

// parseReplacementString strips an optional markdown fence, then tries a
// direct JSON parse followed by a best-effort repair pass.
func parseReplacementString(raw string) ([]Replacement, bool) {
	stripped := stripCodeFence(raw)

	var items []Replacement
	if err := json.Unmarshal([]byte(stripped), &items); err == nil {
		return items, true
	}

	repaired := repairJSON(stripped)
	if err := json.Unmarshal([]byte(repaired), &items); err != nil {
		slog.Warn("Could not parse replacement payload, returning text unchanged", "error", err)
		return nil, false
	}
	return items, true
}

// stripCodeFence removes a surrounding ```json ... ``` (or plain ```)
// fence if present.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line including any language tag.
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "```")
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	pythonConstRe   = regexp.MustCompile(`\b(None|True|False)\b`)
)

// repairJSON fixes the malformations models actually produce: trailing
// commas, unquoted object keys, single-quoted strings, and Python-style
// constants. It is heuristic; the caller still validates with a real parse.
func repairJSON(s string) string {
	out := trailingCommaRe.ReplaceAllString(s, "$1")
	out = unquotedKeyRe.ReplaceAllString(out, `$1"$2":`)
	out = pythonConstRe.ReplaceAllStringFunc(out, func(m string) string {
		switch m {
		case "None":
			return "null"
		default:
			return strings.ToLower(m)
		}
	})
	out = requoteSingleQuotedStrings(out)
	return out
}

// requoteSingleQuotedStrings converts 'single quoted' JSON strings to
// double quotes, leaving apostrophes inside double-quoted strings alone.
func requoteSingleQuotedStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inDouble := false
	inSingle := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if escaped {
			b.WriteByte(ch)
			escaped = false
			continue
		}

		switch {
		case ch == '\\' && (inDouble || inSingle):
			b.WriteByte(ch)
			escaped = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
			b.WriteByte(ch)
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte('"')
		default:
			b.WriteByte(ch)
		}
	}

	return b.String()
}
