// Package parse interprets raw replies from the generative service.
//
// Replies arrive in wildly varying shapes: the requested JSON object, that
// object wrapped in markdown fences, a whole chat-completion envelope, or
// plain prose. Parsing is tiered — structured interpretations are attempted
// in order and the first that yields anything wins; a heuristic splitter is
// the final fallback. The package never returns an error: callers always get
// exactly five non-blank, deduplicated suggestions plus a provenance tag
// recording which tier produced them.
package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SuggestionCount is the fixed number of suggestions every parse yields.
const SuggestionCount = 5

// Provenance records which tier produced a suggestion list. It is never
// shown to users; it drives the retry decision.
type Provenance string

const (
	// ProvenanceDirectJSON: the reply was the requested suggestions object.
	ProvenanceDirectJSON Provenance = "direct_json"
	// ProvenanceNestedJSON: the suggestions object was nested inside a
	// chat-completion envelope's first choice.
	ProvenanceNestedJSON Provenance = "nested_json"
	// ProvenanceChoiceList: each envelope choice contributed one suggestion.
	ProvenanceChoiceList Provenance = "choice_list"
	// ProvenanceHeuristic: best-effort text splitting was required, or a
	// structured tier produced fewer than five entries.
	ProvenanceHeuristic Provenance = "heuristic"
)

// Result is a parsed suggestion list with its provenance.
type Result struct {
	Suggestions []string
	Provenance  Provenance
}

// paddingPhrases fill the list up to five entries when a tier under-produces.
var paddingPhrases = []string{"Ok.", "Alles klar.", "Danke!", "Super!", "Passt."}

var (
	codeFenceRe = regexp.MustCompile("```(?:json)?\\s*")
	arraySpanRe = regexp.MustCompile(`(?s)\[(.*)\]`)
	splitterRe  = regexp.MustCompile(`["\n]+`)
)

// Suggestions parses a generation reply into exactly five suggestions.
func Suggestions(responseText string) Result {
	if obj, ok := decodeObject(stripCodeFences(responseText)); ok {
		if list := stringList(obj["suggestions"]); len(list) > 0 {
			return Result{normalize(list), provenanceFor(list, ProvenanceDirectJSON)}
		}

		choices, _ := obj["choices"].([]any)

		if nested := choiceContent(choices, 0); nested != "" {
			if list := nestedSuggestions(nested); len(list) > 0 {
				return Result{normalize(list), provenanceFor(list, ProvenanceNestedJSON)}
			}
		}

		if list := allChoiceContents(choices); len(list) > 0 {
			return Result{normalize(list), provenanceFor(list, ProvenanceChoiceList)}
		}
	}

	return Result{heuristicSplit(responseText), ProvenanceHeuristic}
}

// provenanceFor downgrades a structured tier to Heuristic when it supplied
// fewer than the required five entries, so the retry controller treats the
// reply as untrustworthy.
func provenanceFor(raw []string, tier Provenance) Provenance {
	if len(raw) >= SuggestionCount {
		return tier
	}
	return ProvenanceHeuristic
}

// Rewrite parses a rewrite reply into a single non-blank string. It tries
// the text/suggestion/content fields, then one level of chat-completion
// nesting, then the heuristic splitter, and finally the trimmed raw text.
func Rewrite(responseText string) string {
	fallback := strings.TrimSpace(heuristicSplit(responseText)[0])
	trimmed := strings.TrimSpace(responseText)

	obj, ok := decodeObject(stripCodeFences(responseText))
	if !ok {
		if fallback != "" {
			return fallback
		}
		if trimmed != "" {
			return trimmed
		}
		return "Ok."
	}

	if direct := firstTextField(obj); direct != "" {
		return strings.TrimSpace(direct)
	}

	choices, _ := obj["choices"].([]any)
	if content := choiceContent(choices, 0); content != "" {
		if nestedObj, ok := decodeObject(stripCodeFences(content)); ok {
			if nested := firstTextField(nestedObj); nested != "" {
				return strings.TrimSpace(nested)
			}
		}
		return strings.TrimSpace(content)
	}

	if fallback != "" {
		return fallback
	}
	return trimmed
}

// heuristicSplit is the last-resort tier: fence-stripping, array-interior
// extraction, quote/newline splitting, then synthesis or padding up to five.
// It always returns exactly five entries.
func heuristicSplit(text string) []string {
	cleaned := stripCodeFences(text)

	if m := arraySpanRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}

	var candidates []string
	seen := make(map[string]bool)
	for _, part := range splitterRe.Split(cleaned, -1) {
		part = strings.TrimSpace(part)
		if part == "" || utf8.RuneCountInString(part) <= 3 || seen[part] {
			continue
		}
		seen[part] = true
		candidates = append(candidates, part)
	}

	var suggestions []string
	switch {
	case len(candidates) == 0:
		suggestions = []string{firstNonBlankLine(text), "Alles klar.", "Danke!", "Passt.", "Verstanden."}
	case len(candidates) == 1:
		base := candidates[0]
		suggestions = []string{base, truncate(base, 50), "Ok.", "Danke!", "Alles klar."}
	case len(candidates) < SuggestionCount:
		suggestions = candidates
	default:
		suggestions = candidates[:SuggestionCount]
	}

	return normalize(suggestions)
}

// firstNonBlankLine returns the first non-blank line of text, capped at 100
// runes, or a generic acknowledgement when the whole text is blank.
func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(truncate(line, 100))
		}
	}
	return "Ok"
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// normalize trims, drops blanks, deduplicates preserving first occurrence,
// then pads with canned phrases (skipping ones already present) or truncates
// to exactly five entries.
func normalize(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	seen := make(map[string]bool)
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		cleaned = append(cleaned, s)
	}

	for _, pad := range paddingPhrases {
		if len(cleaned) >= SuggestionCount {
			break
		}
		if seen[pad] {
			continue
		}
		seen[pad] = true
		cleaned = append(cleaned, pad)
	}

	return cleaned[:SuggestionCount]
}

// decodeObject parses text as a JSON object. Any other JSON shape or a
// syntax error reports !ok; malformed input is never an error upstream.
func decodeObject(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// stringList extracts the non-blank primitive entries of a JSON array value.
func stringList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range arr {
		var s string
		switch val := item.(type) {
		case string:
			s = val
		case float64, bool, json.Number:
			s = fmt.Sprint(val)
		default:
			continue
		}
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// nestedSuggestions retries the suggestions-object interpretation against a
// choice's content string.
func nestedSuggestions(content string) []string {
	obj, ok := decodeObject(stripCodeFences(content))
	if !ok {
		return nil
	}
	return stringList(obj["suggestions"])
}

// choiceContent returns choices[i].message.content, or "" when any hop of
// the envelope shape is missing.
func choiceContent(choices []any, i int) string {
	if i >= len(choices) {
		return ""
	}
	choice, ok := choices[i].(map[string]any)
	if !ok {
		return ""
	}
	message, ok := choice["message"].(map[string]any)
	if !ok {
		return ""
	}
	content, _ := message["content"].(string)
	return content
}

// allChoiceContents treats every choice's content as one candidate
// suggestion.
func allChoiceContents(choices []any) []string {
	var out []string
	for i := range choices {
		if content := choiceContent(choices, i); strings.TrimSpace(content) != "" {
			out = append(out, content)
		}
	}
	return out
}

// firstTextField returns the first non-blank of the text, suggestion and
// content fields of a rewrite reply object.
func firstTextField(obj map[string]any) string {
	for _, key := range []string{"text", "suggestion", "content"} {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func stripCodeFences(text string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(text, ""))
}
