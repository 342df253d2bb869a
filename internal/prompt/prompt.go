// Package prompt contains prompt construction for the suggestion LLM calls.
//
// The system prompt pins the contract the parser relies on: German output,
// exactly five suggestions as a JSON object, no prose. The builders are total
// functions over the style axes; unknown values fall back to the neutral
// description.
package prompt

import (
	"fmt"
	"strings"

	"github.com/dgrunert/antwort/internal/models"
)

// SystemPrompt is the fixed system instruction sent with every generation
// and rewrite call.
const SystemPrompt = `Du bist ein Assistent, der kurze, präzise Antwortvorschläge für Nachrichten erstellt.
Regeln:
- Sprache: IMMER Deutsch
- Output: IMMER genau 5 Antwortvorschläge als JSON: {"suggestions": ["Antwort 1", "Antwort 2", "Antwort 3", "Antwort 4", "Antwort 5"]}
- Keine Erklärungen, keine zusätzlichen Texte, nur das JSON
- Keine erfundenen Details oder Kontext
- Wenn die Nachricht unklar ist: mindestens eine der 5 Antworten sollte eine Rückfrage sein
- Halte dich strikt an die vorgegebenen Parameter (Ton, Ziel, Länge, Emojis, Du/Sie)`

// RetryDirective is appended to the user prompt on the single corrective
// retry after a heuristic parse.
const RetryDirective = "Wichtig: Antworte ausschliesslich mit gueltigem JSON, ohne Markdown oder zusaetzliche Zeichen."

func toneDescription(t models.Tone) string {
	switch t {
	case models.ToneFriendly:
		return "freundlich und warm"
	case models.ToneTerse:
		return "sehr kurz und knapp"
	case models.ToneWarm:
		return "herzlich und persönlich"
	case models.ToneAssertive:
		return "bestimmt und klar"
	case models.ToneFlirty:
		return "spielerisch und flirtend"
	default:
		return "neutral und sachlich"
	}
}

func goalDescription(g models.Goal) string {
	switch g {
	case models.GoalAccept:
		return "einer Zusage"
	case models.GoalDecline:
		return "einer höflichen Absage"
	case models.GoalPostpone:
		return "einer Verschiebung auf später"
	case models.GoalThank:
		return "einer Dankesbekundung"
	case models.GoalSetBoundary:
		return "einer höflichen, aber klaren Abgrenzung"
	default:
		return "einer Nachfrage"
	}
}

func lengthDescription(l models.Length) string {
	switch l {
	case models.LengthOneSentence:
		return "nur einen Satz lang"
	case models.LengthShort:
		return "kurz (2-3 Sätze)"
	default:
		return "normal lang (3-5 Sätze)"
	}
}

func emojiDescription(e models.EmojiLevel) string {
	switch e {
	case models.EmojiOff:
		return "keine Emojis"
	case models.EmojiNormal:
		return "normale Emoji-Nutzung (2-3 pro Antwort)"
	default:
		return "sparsam mit Emojis (max. 1 pro Antwort)"
	}
}

func formalityDescription(f models.Formality) string {
	if f == models.FormalityFormal {
		return "Sie"
	}
	return "Du"
}

// BuildGeneratePrompt composes the user instruction for a generation call,
// embedding the original message verbatim plus a human-readable description
// of each style axis.
func BuildGeneratePrompt(originalMessage string, params models.StyleParameters) string {
	var b strings.Builder
	b.WriteString("Originalnachricht:\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", originalMessage)
	b.WriteString("Erstelle genau 5 Antwortvorschläge mit folgenden Parametern:\n")
	fmt.Fprintf(&b, "- Ton: %s\n", toneDescription(params.Tone))
	fmt.Fprintf(&b, "- Ziel: %s\n", goalDescription(params.Goal))
	fmt.Fprintf(&b, "- Länge: %s\n", lengthDescription(params.Length))
	fmt.Fprintf(&b, "- Emojis: %s\n", emojiDescription(params.EmojiLevel))
	fmt.Fprintf(&b, "- Anrede: %s\n\n", formalityDescription(params.Formality))
	b.WriteString("Gib nur das JSON zurück, keine weiteren Erklärungen.")
	return b.String()
}

// WithRetryDirective appends the strict-JSON directive for the retry call.
func WithRetryDirective(userPrompt string) string {
	return userPrompt + "\n\n" + RetryDirective
}

func rewriteInstruction(intent models.RewriteIntent) string {
	switch intent {
	case models.RewriteShorten:
		return "Kürze diese Antwort deutlich, behalte aber die Kernaussage."
	case models.RewriteWarmUp:
		return "Mache diese Antwort freundlicher und wärmer."
	case models.RewriteMoreDirect:
		return "Mache diese Antwort direkter und klarer."
	case models.RewriteStripEmoji:
		return "Entferne alle Emojis aus dieser Antwort."
	default:
		return "Füge eine kurze Rückfrage an diese Antwort an."
	}
}

// BuildRewritePrompt composes the user instruction for reworking a selected
// suggestion. originalMessage may be empty when the surrounding conversation
// is unknown; the reply must come back as {"text": "..."}.
func BuildRewritePrompt(originalMessage, selectedSuggestion string, intent models.RewriteIntent) string {
	var b strings.Builder
	if originalMessage != "" {
		fmt.Fprintf(&b, "Originalnachricht: \"%s\"\n", originalMessage)
	}
	b.WriteString("\nAktuelle Antwort:\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", selectedSuggestion)
	b.WriteString(rewriteInstruction(intent))
	b.WriteString("\n\nGib nur das überarbeitete JSON zurück: {\"text\": \"überarbeitete Antwort\"}\nKeine Erklärungen.")
	return b.String()
}
