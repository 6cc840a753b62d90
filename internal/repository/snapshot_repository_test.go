package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func newTestSnapshotRepo(t *testing.T) *SnapshotRepository {
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
	return NewSnapshotRepository(db)
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	repo := newTestSnapshotRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, LibrarySlot, 1, []byte(`{"libraries":[]}`)); err != nil {
		t.Fatal(err)
	}

	payload, version, ok, err := repo.Load(ctx, LibrarySlot)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || version != 1 || string(payload) != `{"libraries":[]}` {
		t.Fatalf("unexpected load result: %q v%d ok=%v", payload, version, ok)
	}
}

func TestSnapshotSaveOverwritesSlot(t *testing.T) {
	repo := newTestSnapshotRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, HeaderFooterSlot, 1, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, HeaderFooterSlot, 2, []byte("second")); err != nil {
		t.Fatal(err)
	}

	payload, version, ok, err := repo.Load(ctx, HeaderFooterSlot)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if version != 2 || string(payload) != "second" {
		t.Fatalf("slot not overwritten: %q v%d", payload, version)
	}
}

func TestSnapshotLoadMissingSlot(t *testing.T) {
	repo := newTestSnapshotRepo(t)

	_, _, ok, err := repo.Load(context.Background(), "never-written")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false for missing slot")
	}
}
