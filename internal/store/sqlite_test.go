package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgrunert/antwort/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "antwort.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEntry(id string, createdAt time.Time) models.ConversationEntry {
	return models.ConversationEntry{
		ID:        id,
		CreatedAt: createdAt,
		InputText: "Nachricht " + id,
		Params: models.StyleParameters{
			Tone:       models.ToneFriendly,
			Goal:       models.GoalAsk,
			Length:     models.LengthNormal,
			EmojiLevel: models.EmojiLight,
			Formality:  models.FormalityInformal,
		},
		Suggestions: []string{"eins", "zwei", "drei", "vier", "fünf"},
	}
}

// TestGetSettings_DefaultsWhenEmpty verifies a fresh store serves the default
// settings, with no API key configured.
func TestGetSettings_DefaultsWhenEmpty(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.GetSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.DefaultSettings(), settings)
	assert.Empty(t, settings.APIKey)
}

// TestSaveSettings_Roundtrip verifies saved settings come back unchanged and
// a second save overwrites the single row.
func TestSaveSettings_Roundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	settings := models.DefaultSettings()
	settings.APIKey = "sk-test"
	settings.DefaultTone = models.ToneAssertive
	settings.UseContext = false
	require.NoError(t, s.SaveSettings(ctx, settings))

	loaded, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	settings.Model = "claude-sonnet-4-0"
	require.NoError(t, s.SaveSettings(ctx, settings))

	loaded, err = s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-0", loaded.Model)
}

// TestAppendEntry_RoundtripNewestFirst verifies entries come back newest
// first with their suggestions intact.
func TestAppendEntry_RoundtripNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.AppendEntry(ctx, testEntry("a", base)))
	require.NoError(t, s.AppendEntry(ctx, testEntry("b", base.Add(time.Second))))

	entries, err := s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "a", entries[1].ID)
	assert.Equal(t, []string{"eins", "zwei", "drei", "vier", "fünf"}, entries[0].Suggestions)
}

// TestAppendEntry_PrunesToBound verifies the history never exceeds
// MaxHistoryEntries and keeps the newest entries.
func TestAppendEntry_PrunesToBound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < MaxHistoryEntries+5; i++ {
		id := fmt.Sprintf("entry-%03d", i)
		require.NoError(t, s.AppendEntry(ctx, testEntry(id, base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, MaxHistoryEntries)

	// The newest entry survives; the oldest five were pruned.
	assert.Equal(t, fmt.Sprintf("entry-%03d", MaxHistoryEntries+4), entries[0].ID)
	assert.Equal(t, "entry-005", entries[len(entries)-1].ID)
}

// TestRecentEntries_Limit verifies the recent accessor honors its limit.
func TestRecentEntries_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("e%d", i)
		require.NoError(t, s.AppendEntry(ctx, testEntry(id, base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := s.RecentEntries(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "e7", entries[0].ID)
}

// TestDeleteEntryAndClear verifies individual and bulk deletion.
func TestDeleteEntryAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.AppendEntry(ctx, testEntry("a", base)))
	require.NoError(t, s.AppendEntry(ctx, testEntry("b", base.Add(time.Second))))

	require.NoError(t, s.DeleteEntry(ctx, "a"))
	entries, err := s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].ID)

	require.NoError(t, s.ClearHistory(ctx))
	entries, err = s.ListEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
