package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// newTestDB opens a migrated database in a temp dir and closes it on cleanup.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func createTestFolder(t *testing.T, db *sql.DB, title, parentID string) *Folder {
	t.Helper()

	folder := &Folder{Title: title, ParentID: parentID}
	if err := NewFolderRepo(db).Create(context.Background(), folder); err != nil {
		t.Fatalf("Create(%q) error = %v", title, err)
	}
	return folder
}

func insertTestDocument(t *testing.T, db *sql.DB, folderID string, key SequenceKey, text string) *Document {
	t.Helper()

	doc := &Document{FolderID: folderID, SequenceKey: key, RawText: text}
	if err := NewDocumentRepo(db).Insert(context.Background(), doc); err != nil {
		t.Fatalf("Insert(%q) error = %v", text, err)
	}
	return doc
}
