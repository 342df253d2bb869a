// Package store persists user settings and the bounded conversation history.
package store

import (
	"context"

	"github.com/dgrunert/antwort/internal/models"
)

// MaxHistoryEntries bounds the history; the oldest entries beyond the bound
// are pruned on insert.
const MaxHistoryEntries = 100

// Store is the persistence interface of the service.
type Store interface {
	// GetSettings returns the stored settings, or the defaults when nothing
	// has been saved yet.
	GetSettings(ctx context.Context) (models.Settings, error)
	// SaveSettings replaces the stored settings.
	SaveSettings(ctx context.Context, s models.Settings) error

	// AppendEntry records a completed generation, pruning beyond the bound.
	AppendEntry(ctx context.Context, entry models.ConversationEntry) error
	// RecentEntries returns up to limit entries, newest first.
	RecentEntries(ctx context.Context, limit int) ([]models.ConversationEntry, error)
	// ListEntries returns the whole history, newest first.
	ListEntries(ctx context.Context) ([]models.ConversationEntry, error)
	// DeleteEntry removes one entry by ID; unknown IDs are a no-op.
	DeleteEntry(ctx context.Context, id string) error
	// ClearHistory removes all entries.
	ClearHistory(ctx context.Context) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
	Close() error
}
