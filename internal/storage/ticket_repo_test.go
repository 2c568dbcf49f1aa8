package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}

func TestTicketRepo_ResolvePath(t *testing.T) {
	repo := NewTicketRepo(newTestDB(t))
	ctx := context.Background()

	ticket := &TicketRecord{
		Key:     "MDT-001",
		Project: "MDT",
		RelPath: "MDT/MDT-001.md",
		Title:   "First ticket",
	}
	if err := repo.Upsert(ctx, ticket); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if ticket.ID == "" {
		t.Error("Upsert() did not assign an ID")
	}

	got, err := repo.ResolvePath(ctx, "MDT-001")
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	if got != "MDT/MDT-001.md" {
		t.Errorf("ResolvePath() = %q", got)
	}
}

func TestTicketRepo_ResolvePathNotFound(t *testing.T) {
	repo := NewTicketRepo(newTestDB(t))

	_, err := repo.ResolvePath(context.Background(), "MDT-999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolvePath() error = %v, want ErrNotFound", err)
	}
}

func TestTicketRepo_UpsertUpdatesByKey(t *testing.T) {
	repo := NewTicketRepo(newTestDB(t))
	ctx := context.Background()

	first := &TicketRecord{Key: "MDT-001", Project: "MDT", RelPath: "old/path.md"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	second := &TicketRecord{Key: "MDT-001", Project: "MDT", RelPath: "MDT/MDT-001.md", Title: "Renamed"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := repo.GetByKey(ctx, "MDT-001")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if got.RelPath != "MDT/MDT-001.md" || got.Title != "Renamed" {
		t.Errorf("GetByKey() = %+v", got)
	}
	if got.ID != first.ID {
		t.Errorf("update changed record ID: %q -> %q", first.ID, got.ID)
	}
}

func TestTicketRepo_GetByKeyNotFound(t *testing.T) {
	repo := NewTicketRepo(newTestDB(t))

	_, err := repo.GetByKey(context.Background(), "MDT-999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByKey() error = %v, want ErrNotFound", err)
	}
}

func TestTicketRepo_ListByProject(t *testing.T) {
	repo := NewTicketRepo(newTestDB(t))
	ctx := context.Background()

	for _, rec := range []*TicketRecord{
		{Key: "MDT-002", Project: "MDT", RelPath: "MDT/MDT-002.md"},
		{Key: "MDT-001", Project: "MDT", RelPath: "MDT/MDT-001.md"},
		{Key: "OPS-001", Project: "OPS", RelPath: "OPS/OPS-001.md"},
	} {
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("Upsert(%s) error = %v", rec.Key, err)
		}
	}

	got, err := repo.ListByProject(ctx, "MDT")
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByProject() returned %d records, want 2", len(got))
	}
	if got[0].Key != "MDT-001" || got[1].Key != "MDT-002" {
		t.Errorf("ListByProject() order = %q, %q", got[0].Key, got[1].Key)
	}
}
