package memos

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/voxmemo/voxmemo-core/core/events"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func openStore(t *testing.T) *Store {
	t.Helper()
	tmp := t.TempDir()
	store, err := Open(context.Background(), filepath.Join(tmp, "memos.db"), newLogger())
	if err != nil {
		t.Fatalf("open memo store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndList(t *testing.T) {
	store := openStore(t)

	if err := store.Save(context.Background(), Memo{SessionID: "session-1", Text: "first memo"}); err != nil {
		t.Fatalf("save memo: %v", err)
	}
	if err := store.Save(context.Background(), Memo{SessionID: "session-2", Text: "second memo"}); err != nil {
		t.Fatalf("save memo: %v", err)
	}

	memos, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list memos: %v", err)
	}
	if len(memos) != 2 {
		t.Fatalf("expected 2 memos, got %d", len(memos))
	}
	for _, memo := range memos {
		if memo.ID == "" {
			t.Fatalf("expected generated memo id")
		}
		if memo.CreatedAt.IsZero() {
			t.Fatalf("expected generated memo timestamp")
		}
	}
}

func TestHandleEventPersistsCompletedTranscripts(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	store.HandleEvent(ctx, events.NewSessionStarted("session-1"))
	store.HandleEvent(ctx, events.NewPartialResult("session-1", "interim"))
	store.HandleEvent(ctx, events.NewSessionCompleted("session-1", "hello\nworld"))
	store.HandleEvent(ctx, events.NewSessionCompleted("session-2", ""))
	store.HandleEvent(ctx, events.NewSessionCancelled("session-3"))

	memos, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list memos: %v", err)
	}
	if len(memos) != 1 {
		t.Fatalf("expected only the non-empty completion persisted, got %d", len(memos))
	}
	if memos[0].SessionID != "session-1" {
		t.Fatalf("expected memo for session-1, got %q", memos[0].SessionID)
	}
	if memos[0].Text != "hello\nworld" {
		t.Fatalf("expected transcript to carry through, got %q", memos[0].Text)
	}
}
