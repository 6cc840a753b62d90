package worker

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/repository"
)

func newTestWorker(t *testing.T) (*SnapshotWorker, *repository.SnapshotRepository) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	const schema = `
		CREATE TABLE IF NOT EXISTS snapshots (
			slot     TEXT PRIMARY KEY,
			version  INTEGER NOT NULL,
			payload  BLOB NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}

	repo := repository.NewSnapshotRepository(db)
	return NewSnapshotWorker(repo, zerolog.Nop()), repo
}

func TestPersistCoalescesPerSlot(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()

	// Three writes to one slot before any flush: only the last lands.
	w.Persist("slot-a", 1, []byte("one"))
	w.Persist("slot-a", 1, []byte("two"))
	w.Persist("slot-a", 1, []byte("three"))
	w.Persist("slot-b", 1, []byte("other"))

	w.Flush(ctx)

	payload, _, ok, err := repo.Load(ctx, "slot-a")
	if err != nil || !ok {
		t.Fatalf("load slot-a: ok=%v err=%v", ok, err)
	}
	if string(payload) != "three" {
		t.Fatalf("expected last write to win, got %q", payload)
	}

	payload, _, ok, _ = repo.Load(ctx, "slot-b")
	if !ok || string(payload) != "other" {
		t.Fatalf("slot-b lost: %q ok=%v", payload, ok)
	}
}

func TestFlushEmptiesQueue(t *testing.T) {
	w, _ := newTestWorker(t)
	ctx := context.Background()

	w.Persist("slot-a", 1, []byte("x"))
	w.Flush(ctx)

	if jobs := w.takePending(); len(jobs) != 0 {
		t.Fatalf("expected empty queue after flush, got %d jobs", len(jobs))
	}
}

func TestStartDrainsOnCancel(t *testing.T) {
	w, repo := newTestWorker(t)

	w.Persist("slot-a", 1, []byte("final"))
	// Swallow the nudge so only cancellation can trigger the write.
	<-w.wake

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	<-done

	payload, _, ok, err := repo.Load(context.Background(), "slot-a")
	if err != nil || !ok {
		t.Fatalf("load after shutdown: ok=%v err=%v", ok, err)
	}
	if string(payload) != "final" {
		t.Fatalf("pending snapshot not drained on shutdown, got %q", payload)
	}
}
