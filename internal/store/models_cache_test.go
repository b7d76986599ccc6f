package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pricewatch-engine/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestLoadSnapshotEmpty(t *testing.T) {
	db := testDB(t)
	_, _, err := LoadSnapshot(context.Background(), db.Pool)
	if !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("err=%v want ErrNoSnapshot", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	models := []domain.ProcessedModel{
		{ID: "z/last-alphabetically", Name: "Z", Provider: "Z", InputPrice: 1.5, OutputPrice: 3, ContextWindow: 8192, Modality: "text->text"},
		{ID: "a/first-in-api-order", Name: "A", Provider: "A", InputPrice: 0, OutputPrice: 0, ContextWindow: 128000, Modality: "text+image->text"},
	}
	fetchedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	snapID, err := SaveSnapshot(ctx, db.Pool, models, fetchedAt)
	if err != nil {
		t.Fatal(err)
	}
	if snapID == "" {
		t.Fatal("empty snapshot id")
	}

	got, gotAt, err := LoadSnapshot(ctx, db.Pool)
	if err != nil {
		t.Fatal(err)
	}
	if !gotAt.Equal(fetchedAt) {
		t.Fatalf("fetched_at: got %v want %v", gotAt, fetchedAt)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}
	// API order survives the round trip, not alphabetical order.
	if got[0].ID != "z/last-alphabetically" || got[1].ID != "a/first-in-api-order" {
		t.Fatalf("order: %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].InputPrice != 1.5 || got[1].ContextWindow != 128000 {
		t.Fatalf("fields lost: %+v", got)
	}
}

// Only the newest snapshot is kept; a second save fully replaces the
// first.
func TestSaveSnapshotReplaces(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	first, err := SaveSnapshot(ctx, db.Pool, []domain.ProcessedModel{{ID: "old", Name: "Old", Provider: "X", Modality: "text"}}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	second, err := SaveSnapshot(ctx, db.Pool, []domain.ProcessedModel{{ID: "new", Name: "New", Provider: "Y", Modality: "text"}}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("snapshot ids should differ")
	}

	got, _, err := LoadSnapshot(ctx, db.Pool)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("got %+v", got)
	}
}
