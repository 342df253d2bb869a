package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuggestions_DirectJSON verifies that a well-formed suggestions object
// passes through unchanged with DirectJSON provenance.
func TestSuggestions_DirectJSON(t *testing.T) {
	result := Suggestions(`{"suggestions":["a","b","c","d","e"]}`)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, result.Suggestions)
	assert.Equal(t, ProvenanceDirectJSON, result.Provenance)
}

// TestSuggestions_DirectJSONWithCodeFence verifies that markdown fences around
// the suggestions object are stripped before parsing.
func TestSuggestions_DirectJSONWithCodeFence(t *testing.T) {
	result := Suggestions("```json\n{\"suggestions\":[\"a\",\"b\",\"c\",\"d\",\"e\"]}\n```")

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, result.Suggestions)
	assert.Equal(t, ProvenanceDirectJSON, result.Provenance)
}

// TestSuggestions_UnderfilledStructuredListIsHeuristic verifies that a
// structurally valid reply with fewer than five entries keeps its entries but
// is tagged Heuristic so the retry controller fires.
func TestSuggestions_UnderfilledStructuredListIsHeuristic(t *testing.T) {
	result := Suggestions(`{"suggestions":["only one"]}`)

	require.Len(t, result.Suggestions, 5)
	assert.Equal(t, "only one", result.Suggestions[0])
	for _, padded := range result.Suggestions[1:] {
		assert.Contains(t, paddingPhrases, padded)
	}
	assert.Equal(t, ProvenanceHeuristic, result.Provenance)
}

// TestSuggestions_NestedJSON verifies that a suggestions object embedded in a
// chat-completion envelope's first choice is found with NestedJSON provenance.
func TestSuggestions_NestedJSON(t *testing.T) {
	envelope := `{"choices":[{"message":{"content":"{\"suggestions\":[\"a\",\"b\",\"c\",\"d\",\"e\"]}"}}]}`

	result := Suggestions(envelope)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, result.Suggestions)
	assert.Equal(t, ProvenanceNestedJSON, result.Provenance)
}

// TestSuggestions_ChoiceList verifies that when the first choice is not a
// suggestions object, each choice's content becomes one suggestion.
func TestSuggestions_ChoiceList(t *testing.T) {
	envelope := `{"choices":[
		{"message":{"content":"erste Antwort"}},
		{"message":{"content":"zweite Antwort"}},
		{"message":{"content":"dritte Antwort"}},
		{"message":{"content":"vierte Antwort"}},
		{"message":{"content":"fünfte Antwort"}}]}`

	result := Suggestions(envelope)

	assert.Equal(t, []string{"erste Antwort", "zweite Antwort", "dritte Antwort", "vierte Antwort", "fünfte Antwort"}, result.Suggestions)
	assert.Equal(t, ProvenanceChoiceList, result.Provenance)
}

// TestSuggestions_ProseFallsBackToHeuristic verifies line-splitting of plain
// prose with Heuristic provenance.
func TestSuggestions_ProseFallsBackToHeuristic(t *testing.T) {
	result := Suggestions("random prose\nline two\nline three")

	require.Len(t, result.Suggestions, 5)
	assert.Equal(t, "random prose", result.Suggestions[0])
	assert.Equal(t, "line two", result.Suggestions[1])
	assert.Equal(t, "line three", result.Suggestions[2])
	assert.Equal(t, ProvenanceHeuristic, result.Provenance)
}

// TestSuggestions_BracketedSpanExtraction verifies that a bracketed
// array-like span inside prose is extracted and split on quotes.
func TestSuggestions_BracketedSpanExtraction(t *testing.T) {
	text := `Hier sind die Antworten: ["Klingt gut!", "Machen wir so.", "Wann genau?", "Bin dabei.", "Bis dann!"]`

	result := Suggestions(text)

	assert.Equal(t, []string{"Klingt gut!", "Machen wir so.", "Wann genau?", "Bin dabei.", "Bis dann!"}, result.Suggestions)
	assert.Equal(t, ProvenanceHeuristic, result.Provenance)
}

// TestSuggestions_EmptyInputSynthesizes verifies that even empty input yields
// five non-blank entries.
func TestSuggestions_EmptyInputSynthesizes(t *testing.T) {
	result := Suggestions("")

	require.Len(t, result.Suggestions, 5)
	for _, s := range result.Suggestions {
		assert.NotEmpty(t, strings.TrimSpace(s))
	}
	assert.Equal(t, ProvenanceHeuristic, result.Provenance)
}

// TestSuggestions_SingleCandidateExpansion verifies the one-candidate path:
// the candidate leads and canned acknowledgements fill the rest.
func TestSuggestions_SingleCandidateExpansion(t *testing.T) {
	result := Suggestions("Das klingt doch super")

	require.Len(t, result.Suggestions, 5)
	assert.Equal(t, "Das klingt doch super", result.Suggestions[0])
	assert.Equal(t, ProvenanceHeuristic, result.Provenance)
}

// TestSuggestions_AlwaysFiveUniqueNonBlank fuzzes the invariant over a spread
// of input shapes: exactly five entries, none blank, no duplicates.
func TestSuggestions_AlwaysFiveUniqueNonBlank(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"{not valid json",
		`{"suggestions": []}`,
		`{"suggestions": ["a","a","a","a","a","a"]}`,
		`{"choices": []}`,
		`{"choices": "wrong shape"}`,
		"😀😀😀 viele Emojis 🎉🎉🎉 und noch mehr Text dazu",
		strings.Repeat("sehr langer Text ", 100),
		"\"quoted\" and \"another quoted fragment\" here",
	}

	for _, input := range inputs {
		result := Suggestions(input)

		require.Len(t, result.Suggestions, 5, "input: %q", input)
		seen := make(map[string]bool)
		for _, s := range result.Suggestions {
			assert.NotEmpty(t, strings.TrimSpace(s), "input: %q", input)
			assert.False(t, seen[s], "duplicate %q for input %q", s, input)
			seen[s] = true
		}
	}
}

// TestSuggestions_DuplicatesDropped verifies deduplication preserves first
// occurrence order and padding never reintroduces an existing phrase.
func TestSuggestions_DuplicatesDropped(t *testing.T) {
	result := Suggestions(`{"suggestions":["Ok.","Ok.","Danke!","Gerne.","Bis morgen.","Gerne."]}`)

	require.Len(t, result.Suggestions, 5)
	assert.Equal(t, "Ok.", result.Suggestions[0])
	assert.Equal(t, "Danke!", result.Suggestions[1])
	assert.Equal(t, "Gerne.", result.Suggestions[2])
	assert.Equal(t, "Bis morgen.", result.Suggestions[3])
	// Padding skips "Ok." and "Danke!" which are already present.
	assert.Equal(t, "Alles klar.", result.Suggestions[4])
}

// TestSuggestions_NumericEntriesStringified verifies non-string primitives in
// the suggestions array are kept as their textual form.
func TestSuggestions_NumericEntriesStringified(t *testing.T) {
	result := Suggestions(`{"suggestions":["ja","nein",42,true,"vielleicht"]}`)

	assert.Equal(t, []string{"ja", "nein", "42", "true", "vielleicht"}, result.Suggestions)
	assert.Equal(t, ProvenanceDirectJSON, result.Provenance)
}

// TestRewrite_TextField verifies the ideal rewrite payload.
func TestRewrite_TextField(t *testing.T) {
	assert.Equal(t, "Kürzer.", Rewrite(`{"text":"Kürzer."}`))
}

// TestRewrite_SynonymFields verifies suggestion and content are accepted as
// synonyms for text.
func TestRewrite_SynonymFields(t *testing.T) {
	assert.Equal(t, "Variante A", Rewrite(`{"suggestion":"Variante A"}`))
	assert.Equal(t, "Variante B", Rewrite(`{"content":"Variante B"}`))
}

// TestRewrite_NestedEnvelope verifies one level of chat-completion nesting is
// unwrapped before the field names are retried.
func TestRewrite_NestedEnvelope(t *testing.T) {
	envelope := `{"choices":[{"message":{"content":"{\"text\":\"Aus dem Umschlag.\"}"}}]}`

	assert.Equal(t, "Aus dem Umschlag.", Rewrite(envelope))
}

// TestRewrite_EnvelopeWithPlainContent verifies plain (non-JSON) choice
// content is returned trimmed.
func TestRewrite_EnvelopeWithPlainContent(t *testing.T) {
	envelope := `{"choices":[{"message":{"content":"  einfach Text  "}}]}`

	assert.Equal(t, "einfach Text", Rewrite(envelope))
}

// TestRewrite_ProseFallsBackToFirstCandidate verifies prose input falls back
// to the heuristic splitter's first candidate.
func TestRewrite_ProseFallsBackToFirstCandidate(t *testing.T) {
	assert.Equal(t, "Gerne, bis morgen dann!", Rewrite("Gerne, bis morgen dann!\nNoch eine Zeile"))
}

// TestRewrite_BlankInputNeverBlank verifies the rewrite parser returns a
// placeholder rather than an empty string.
func TestRewrite_BlankInputNeverBlank(t *testing.T) {
	out := Rewrite("   \n  ")

	assert.NotEmpty(t, strings.TrimSpace(out))
}
