package prompt

import "github.com/dgrunert/antwort/internal/models"

// AssembleContext turns recent conversation entries into alternating
// user/assistant chat turns, oldest first, ready to be inserted between the
// system instruction and the current user prompt.
//
// entries is expected newest-first (as the history store returns them); the
// assistant turn is the first stored suggestion of each entry, or an empty
// string when the entry has none.
func AssembleContext(entries []models.ConversationEntry) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(entries)*2)
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		assistant := ""
		if len(entry.Suggestions) > 0 {
			assistant = entry.Suggestions[0]
		}
		messages = append(messages,
			models.ChatMessage{Role: models.RoleUser, Content: entry.InputText},
			models.ChatMessage{Role: models.RoleAssistant, Content: assistant},
		)
	}
	return messages
}

// BuildMessages assembles the full outbound message sequence:
// system instruction, optional context turns, then the user prompt.
func BuildMessages(userPrompt string, context []models.ChatMessage) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(context)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: SystemPrompt})
	messages = append(messages, context...)
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: userPrompt})
	return messages
}
