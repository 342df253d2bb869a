package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dgrunert/antwort/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed store at dbPath, creating the parent
// directory and schema as needed.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for better concurrency between the API and worker sides.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		api_key TEXT NOT NULL DEFAULT '',
		base_url TEXT NOT NULL,
		model TEXT NOT NULL,
		default_tone TEXT NOT NULL,
		default_goal TEXT NOT NULL,
		default_length TEXT NOT NULL,
		default_emoji_level TEXT NOT NULL,
		default_formality TEXT NOT NULL,
		use_context INTEGER NOT NULL DEFAULT 1,
		auto_detect_style INTEGER NOT NULL DEFAULT 1,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		input_text TEXT NOT NULL,
		tone TEXT NOT NULL,
		goal TEXT NOT NULL,
		length TEXT NOT NULL,
		emoji_level TEXT NOT NULL,
		formality TEXT NOT NULL,
		suggestions_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at DESC);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// GetSettings returns the stored settings, falling back to the defaults when
// no row exists yet.
func (s *SQLiteStore) GetSettings(ctx context.Context) (models.Settings, error) {
	query := `
		SELECT api_key, base_url, model, default_tone, default_goal,
		       default_length, default_emoji_level, default_formality,
		       use_context, auto_detect_style
		FROM settings WHERE id = 1`

	var (
		out                    models.Settings
		useContext, autoDetect int64
	)
	err := s.db.QueryRowContext(ctx, query).Scan(
		&out.APIKey, &out.BaseURL, &out.Model,
		&out.DefaultTone, &out.DefaultGoal, &out.DefaultLength,
		&out.DefaultEmoji, &out.DefaultFormal,
		&useContext, &autoDetect,
	)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("scan settings row: %w", err)
	}

	out.UseContext = useContext != 0
	out.AutoDetectStyle = autoDetect != 0
	return out, nil
}

// SaveSettings upserts the single settings row.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	query := `
		INSERT INTO settings (
			id, api_key, base_url, model, default_tone, default_goal,
			default_length, default_emoji_level, default_formality,
			use_context, auto_detect_style, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			api_key = excluded.api_key,
			base_url = excluded.base_url,
			model = excluded.model,
			default_tone = excluded.default_tone,
			default_goal = excluded.default_goal,
			default_length = excluded.default_length,
			default_emoji_level = excluded.default_emoji_level,
			default_formality = excluded.default_formality,
			use_context = excluded.use_context,
			auto_detect_style = excluded.auto_detect_style,
			updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		settings.APIKey, settings.BaseURL, settings.Model,
		string(settings.DefaultTone), string(settings.DefaultGoal),
		string(settings.DefaultLength), string(settings.DefaultEmoji),
		string(settings.DefaultFormal),
		boolToInt(settings.UseContext), boolToInt(settings.AutoDetectStyle),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// AppendEntry inserts a new history entry and prunes the history down to
// MaxHistoryEntries.
func (s *SQLiteStore) AppendEntry(ctx context.Context, entry models.ConversationEntry) error {
	suggestionsJSON, err := json.Marshal(entry.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (
			id, created_at, input_text, tone, goal, length,
			emoji_level, formality, suggestions_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.CreatedAt.UnixMilli(), entry.InputText,
		string(entry.Params.Tone), string(entry.Params.Goal),
		string(entry.Params.Length), string(entry.Params.EmojiLevel),
		string(entry.Params.Formality), string(suggestionsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, id LIMIT ?
		)`, MaxHistoryEntries)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	return tx.Commit()
}

// RecentEntries returns up to limit entries, newest first.
func (s *SQLiteStore) RecentEntries(ctx context.Context, limit int) ([]models.ConversationEntry, error) {
	return s.queryEntries(ctx, `
		SELECT id, created_at, input_text, tone, goal, length,
		       emoji_level, formality, suggestions_json
		FROM history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// ListEntries returns the whole history, newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]models.ConversationEntry, error) {
	return s.queryEntries(ctx, `
		SELECT id, created_at, input_text, tone, goal, length,
		       emoji_level, formality, suggestions_json
		FROM history ORDER BY created_at DESC, id DESC`)
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...any) ([]models.ConversationEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []models.ConversationEntry
	for rows.Next() {
		var (
			entry           models.ConversationEntry
			createdAt       int64
			suggestionsJSON string
		)
		err := rows.Scan(
			&entry.ID, &createdAt, &entry.InputText,
			&entry.Params.Tone, &entry.Params.Goal, &entry.Params.Length,
			&entry.Params.EmojiLevel, &entry.Params.Formality,
			&suggestionsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.CreatedAt = time.UnixMilli(createdAt)
		if err := json.Unmarshal([]byte(suggestionsJSON), &entry.Suggestions); err != nil {
			return nil, fmt.Errorf("unmarshal suggestions: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteEntry removes one entry by ID.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	return nil
}

// ClearHistory removes all entries.
func (s *SQLiteStore) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
