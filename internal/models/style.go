// Package models contains the shared domain types of the reply suggestion
// service: style axes, settings, conversation entries and the typed error
// model. All types are plain values safe to serialize across the workflow
// boundary.
package models

// Tone is the voice a suggested reply should be written in.
type Tone string

const (
	ToneFriendly  Tone = "friendly"
	ToneNeutral   Tone = "neutral"
	ToneTerse     Tone = "terse"
	ToneWarm      Tone = "warm"
	ToneAssertive Tone = "assertive"
	ToneFlirty    Tone = "flirty"
)

// Goal is the communicative intent of the reply.
type Goal string

const (
	GoalAccept      Goal = "accept"
	GoalDecline     Goal = "decline"
	GoalPostpone    Goal = "postpone"
	GoalAsk         Goal = "ask"
	GoalThank       Goal = "thank"
	GoalSetBoundary Goal = "set-boundary"
)

// Length controls how long the suggested replies should be.
type Length string

const (
	LengthOneSentence Length = "one-sentence"
	LengthShort       Length = "short"
	LengthNormal      Length = "normal"
)

// EmojiLevel controls emoji usage in suggestions.
type EmojiLevel string

const (
	EmojiOff    EmojiLevel = "off"
	EmojiLight  EmojiLevel = "light"
	EmojiNormal EmojiLevel = "normal"
)

// Formality is the German address form (Du vs. Sie).
type Formality string

const (
	FormalityInformal Formality = "informal"
	FormalityFormal   Formality = "formal"
)

// RewriteIntent selects how a previously generated suggestion is reworked.
type RewriteIntent string

const (
	RewriteShorten        RewriteIntent = "shorten"
	RewriteWarmUp         RewriteIntent = "warm-up"
	RewriteMoreDirect     RewriteIntent = "be-more-direct"
	RewriteStripEmoji     RewriteIntent = "strip-emoji"
	RewriteAppendQuestion RewriteIntent = "append-question"
)

// StyleParameters is the full set of style axes for one generation call.
type StyleParameters struct {
	Tone       Tone       `json:"tone"`
	Goal       Goal       `json:"goal"`
	Length     Length     `json:"length"`
	EmojiLevel EmojiLevel `json:"emoji_level"`
	Formality  Formality  `json:"formality"`
}

// StyleSignal is the result of classifying free text. Either field may be
// empty when the text carries no (or contradictory) signal for that axis.
type StyleSignal struct {
	Tone      Tone      `json:"tone,omitempty"`
	Formality Formality `json:"formality,omitempty"`
}

// StylePreset is a named bundle of style parameters for common situations.
type StylePreset struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Params      StyleParameters `json:"params"`
}

// Presets returns the built-in style presets.
func Presets() []StylePreset {
	return []StylePreset{
		{
			ID:          "friendly-standard",
			DisplayName: "Freundlich (Standard)",
			Params: StyleParameters{
				Tone:       ToneFriendly,
				Goal:       GoalAsk,
				Length:     LengthNormal,
				EmojiLevel: EmojiLight,
				Formality:  FormalityInformal,
			},
		},
		{
			ID:          "short-and-clear",
			DisplayName: "Kurz & klar",
			Params: StyleParameters{
				Tone:       ToneTerse,
				Goal:       GoalAsk,
				Length:     LengthShort,
				EmojiLevel: EmojiOff,
				Formality:  FormalityInformal,
			},
		},
		{
			ID:          "politely-decline",
			DisplayName: "Höflich ablehnen",
			Params: StyleParameters{
				Tone:       ToneFriendly,
				Goal:       GoalDecline,
				Length:     LengthNormal,
				EmojiLevel: EmojiOff,
				Formality:  FormalityFormal,
			},
		},
	}
}
