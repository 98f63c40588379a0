// Package memos persists completed listening-session transcripts. The store
// doubles as an event subscriber: fed the orchestrator's event stream, it
// saves a memo for every completed session that produced text.
package memos

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/voxmemo/voxmemo-core/core/events"
)

// Memo is one persisted transcript.
type Memo struct {
	ID        string
	SessionID string
	Text      string
	CreatedAt time.Time
}

// Store wraps a SQLite-backed memo collection.
type Store struct {
	db    *sql.DB
	log   *slog.Logger
	clock func() time.Time
}

// Open initializes the store at path, creating parent directories and the
// schema as needed.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, log: log, clock: time.Now}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS memos (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memos_created ON memos(created_at);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Close releases underlying resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes a memo. A missing id or timestamp is filled in.
func (s *Store) Save(ctx context.Context, memo Memo) error {
	if memo.ID == "" {
		memo.ID = uuid.NewString()
	}
	if memo.CreatedAt.IsZero() {
		memo.CreatedAt = s.clock().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memos(id, session_id, text, created_at) VALUES(?, ?, ?, ?)`,
		memo.ID, memo.SessionID, memo.Text, memo.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save memo: %w", err)
	}
	return nil
}

// List retrieves up to limit memos ordered newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Memo, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, text, created_at
		 FROM memos ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memos []Memo
	for rows.Next() {
		var m Memo
		var created string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Text, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			m.CreatedAt = ts
		}
		memos = append(memos, m)
	}
	return memos, rows.Err()
}

// HandleEvent persists completed transcripts from the orchestrator's event
// stream. Every other event variant is ignored; completions with no text
// (silence that completed via the stop fallback) produce no memo.
func (s *Store) HandleEvent(ctx context.Context, event events.Event) {
	completed, ok := event.(events.SessionCompleted)
	if !ok {
		return
	}
	if strings.TrimSpace(completed.FinalText) == "" {
		return
	}

	err := s.Save(ctx, Memo{
		SessionID: completed.SessionID(),
		Text:      completed.FinalText,
		CreatedAt: completed.Timestamp().UTC(),
	})
	if err != nil && s.log != nil {
		s.log.Warn("failed to persist completed transcript",
			slog.String("session_id", completed.SessionID()),
			slog.String("error", err.Error()))
	}
}
