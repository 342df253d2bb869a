// Package style infers tone and formality signals from free German text.
//
// Classification is regex-based and deliberately heuristic: the signal sets
// are kept as data tables rather than control flow so they can be tuned and
// tested in isolation. All patterns are word-boundary anchored so pronouns
// like "Sie" only match as standalone tokens.
package style

import (
	"regexp"
	"strings"

	"github.com/dgrunert/antwort/internal/models"
)

// Formal address markers. The capitalized pronouns (Sie/Ihnen/Ihr...) are
// matched case-sensitively: lowercase "sie" is the third person, not the
// formal address.
var formalSignals = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bSehr geehrt(e|er|en|es)?\b`),
	regexp.MustCompile(`(?i)\bMit freundlichen Gr(?:ue|ü)(?:ß|ss)en\b`),
	regexp.MustCompile(`(?i)\bGuten Tag\b`),
	regexp.MustCompile(`\bHerr\b`),
	regexp.MustCompile(`\bFrau\b`),
	regexp.MustCompile(`\bSie\b`),
	regexp.MustCompile(`\bIhnen\b`),
	regexp.MustCompile(`\bIhr(e|en|er|em)?\b`),
}

// Informal address markers: du-form pronouns and casual greetings.
var informalSignals = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdu\b`),
	regexp.MustCompile(`(?i)\bdich\b`),
	regexp.MustCompile(`(?i)\bdir\b`),
	regexp.MustCompile(`(?i)\bdein\w*\b`),
	regexp.MustCompile(`(?i)\bhey\b`),
	regexp.MustCompile(`(?i)\bhi\b`),
	regexp.MustCompile(`(?i)\bhallo\b`),
	regexp.MustCompile(`(?i)\blg\b`),
	regexp.MustCompile(`(?i)\bliebe?r?\b`),
}

// Flirtation markers. Highest tone priority.
var flirtySignals = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(schatz|babe|sexy|date)\b`),
}

// Warmth markers: gratitude and affection words.
var warmSignals = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdanke(n| dir| euch)?\b`),
	regexp.MustCompile(`(?i)\bfreu(e|en|st|t)?\b`),
	regexp.MustCompile(`(?i)\bliebe?n?\b`),
	regexp.MustCompile(`(?i)\blg\b`),
	regexp.MustCompile(`(?i)\bgr(?:ue|ü)(?:ß|ss)e?\b`),
}

func anyMatch(signals []*regexp.Regexp, text string) bool {
	for _, re := range signals {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify maps free text to an inferred style signal. It is a pure, total
// function: blank input yields an empty signal, never an error.
//
// Formality resolves only when exactly one address form has matches. Tone
// priority: flirty, then warm, then neutral/friendly derived from the
// resolved formality.
func Classify(text string) models.StyleSignal {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return models.StyleSignal{}
	}

	hasFormal := anyMatch(formalSignals, normalized)
	hasInformal := anyMatch(informalSignals, normalized)

	var signal models.StyleSignal
	switch {
	case hasFormal && !hasInformal:
		signal.Formality = models.FormalityFormal
	case hasInformal && !hasFormal:
		signal.Formality = models.FormalityInformal
	}

	switch {
	case anyMatch(flirtySignals, normalized):
		signal.Tone = models.ToneFlirty
	case anyMatch(warmSignals, normalized):
		signal.Tone = models.ToneWarm
	case signal.Formality == models.FormalityFormal:
		signal.Tone = models.ToneNeutral
	case signal.Formality == models.FormalityInformal:
		signal.Tone = models.ToneFriendly
	}

	return signal
}

// Apply overrides the tone and formality axes of params with whatever the
// signal resolved, leaving unresolved axes untouched.
func Apply(params models.StyleParameters, signal models.StyleSignal) models.StyleParameters {
	if signal.Tone != "" {
		params.Tone = signal.Tone
	}
	if signal.Formality != "" {
		params.Formality = signal.Formality
	}
	return params
}
