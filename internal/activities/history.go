package activities

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dgrunert/antwort/internal/models"
	"github.com/dgrunert/antwort/internal/store"
)

// AppendEntryInput is the input for the AppendEntry activity.
type AppendEntryInput struct {
	InputText   string                 `json:"input_text"`
	Params      models.StyleParameters `json:"params"`
	Suggestions []string               `json:"suggestions"`
}

// AppendEntryOutput is the output from the AppendEntry activity.
type AppendEntryOutput struct {
	EntryID string `json:"entry_id"`
}

// RecentEntriesInput is the input for the RecentEntries activity.
type RecentEntriesInput struct {
	Limit int `json:"limit"`
}

// RecentEntriesOutput is the output from the RecentEntries activity.
type RecentEntriesOutput struct {
	Entries []models.ConversationEntry `json:"entries"`
}

// HistoryActivities reads and writes the conversation history store.
type HistoryActivities struct {
	store store.Store
}

// NewHistoryActivities creates a HistoryActivities instance backed by the
// given store.
func NewHistoryActivities(s store.Store) *HistoryActivities {
	return &HistoryActivities{store: s}
}

// AppendEntry records a completed generation. The entry ID and timestamp are
// assigned here so the workflow stays deterministic.
func (a *HistoryActivities) AppendEntry(ctx context.Context, input AppendEntryInput) (AppendEntryOutput, error) {
	entry := models.ConversationEntry{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		InputText:   input.InputText,
		Params:      input.Params,
		Suggestions: input.Suggestions,
	}
	if err := a.store.AppendEntry(ctx, entry); err != nil {
		return AppendEntryOutput{}, err
	}
	return AppendEntryOutput{EntryID: entry.ID}, nil
}

// RecentEntries returns the most recent history entries, newest first.
func (a *HistoryActivities) RecentEntries(ctx context.Context, input RecentEntriesInput) (RecentEntriesOutput, error) {
	entries, err := a.store.RecentEntries(ctx, input.Limit)
	if err != nil {
		return RecentEntriesOutput{}, err
	}
	return RecentEntriesOutput{Entries: entries}, nil
}
