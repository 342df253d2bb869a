package models

import "time"

// Chat message roles as used on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in the outbound message sequence.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationEntry records one successful generation. Entries are created
// implicitly after a generate call succeeds and are never mutated; the
// history store deletes them individually or in bulk.
type ConversationEntry struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	InputText   string          `json:"input_text"`
	Params      StyleParameters `json:"params"`
	Suggestions []string        `json:"suggestions"`
}

// Settings is the snapshot of user configuration a generation call runs
// against.
type Settings struct {
	APIKey          string     `json:"api_key"`
	BaseURL         string     `json:"base_url"`
	Model           string     `json:"model"`
	DefaultTone     Tone       `json:"default_tone"`
	DefaultGoal     Goal       `json:"default_goal"`
	DefaultLength   Length     `json:"default_length"`
	DefaultEmoji    EmojiLevel `json:"default_emoji_level"`
	DefaultFormal   Formality  `json:"default_formality"`
	UseContext      bool       `json:"use_context"`
	AutoDetectStyle bool       `json:"auto_detect_style"`
}

// DefaultSettings returns the settings used before the user saves anything.
// There is deliberately no default API key; generation fails fast with
// MissingCredentials until one is configured.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:         "https://openrouter.ai/api/v1",
		Model:           "meta-llama/llama-3.3-70b-instruct:free",
		DefaultTone:     ToneFriendly,
		DefaultGoal:     GoalAsk,
		DefaultLength:   LengthNormal,
		DefaultEmoji:    EmojiLight,
		DefaultFormal:   FormalityInformal,
		UseContext:      true,
		AutoDetectStyle: true,
	}
}

// Defaults returns the style parameters stored in the settings.
func (s Settings) Defaults() StyleParameters {
	return StyleParameters{
		Tone:       s.DefaultTone,
		Goal:       s.DefaultGoal,
		Length:     s.DefaultLength,
		EmojiLevel: s.DefaultEmoji,
		Formality:  s.DefaultFormal,
	}
}
