package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			// Verify connection pool settings
			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestNew_EnablesForeignKeys(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	// Check that foreign keys are enabled
	var fkEnabled int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	if err != nil {
		t.Fatalf("Failed to check foreign keys: %v", err)
	}

	if fkEnabled != 1 {
		t.Error("New() should enable foreign keys")
	}
}

func TestMigrate(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	// Run migrations
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// Verify tables exist
	tables := []string{"folders", "documents", "labels", "label_tags", "qa_pairs", "legacy_chunks", "legacy_labels", "legacy_qa"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Migrate() table %s not created", table)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	// Run migrations twice
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() first run error = %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	// Verify tables still exist
	tables := []string{"folders", "documents", "labels", "label_tags", "qa_pairs", "legacy_chunks", "legacy_labels", "legacy_qa"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Migrate() table %s not found after second run", table)
		}
	}
}

func TestMigrate_CreatesCorrectSchema(t *testing.T) {
	db := newTestDB(t)

	// Check documents references folders
	var schema string
	err := db.QueryRow("SELECT sql FROM sqlite_master WHERE type='table' AND name='documents'").Scan(&schema)
	if err != nil {
		t.Fatalf("Failed to get documents schema: %v", err)
	}
	if !strings.Contains(schema, "REFERENCES folders(id)") {
		t.Error("documents table should reference folders")
	}

	// Check label_tags cascades from labels
	err = db.QueryRow("SELECT sql FROM sqlite_master WHERE type='table' AND name='label_tags'").Scan(&schema)
	if err != nil {
		t.Fatalf("Failed to get label_tags schema: %v", err)
	}
	if !strings.Contains(schema, "ON DELETE CASCADE") {
		t.Error("label_tags table should cascade deletes from labels")
	}
}

func TestIndexSpec_SQL(t *testing.T) {
	tests := []struct {
		name string
		spec IndexSpec
		want string
	}{
		{
			name: "single column",
			spec: IndexSpec{Collection: "documents", Name: "idx_documents_folder", Columns: []string{"folder_id"}},
			want: "CREATE INDEX IF NOT EXISTS idx_documents_folder ON documents (folder_id)",
		},
		{
			name: "descending",
			spec: IndexSpec{Collection: "folders", Name: "idx_folders_created", Columns: []string{"created_at"}, Desc: true},
			want: "CREATE INDEX IF NOT EXISTS idx_folders_created ON folders (created_at DESC)",
		},
		{
			name: "full text",
			spec: IndexSpec{Collection: "qa_pairs", Name: "qa_pairs_fts", Columns: []string{"question", "answer"}, FullText: true},
			want: `CREATE VIRTUAL TABLE IF NOT EXISTS qa_pairs_fts USING fts4(content="qa_pairs", question, answer, tokenize=unicode61)`,
		},
		{
			name: "composite",
			spec: IndexSpec{Collection: "documents", Name: "idx_seq", Columns: []string{"folder_id", "sequence_key"}},
			want: "CREATE INDEX IF NOT EXISTS idx_seq ON documents (folder_id, sequence_key)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.SQL(); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateIndexes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Twice to check idempotence
	for i := 0; i < 2; i++ {
		if err := CreateIndexes(ctx, db); err != nil {
			t.Fatalf("CreateIndexes() run %d error = %v", i+1, err)
		}
	}

	for _, spec := range IndexSpecs() {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type IN ('index', 'table') AND name=?", spec.Name).Scan(&n)
		if err != nil {
			t.Fatalf("Failed to check index %s: %v", spec.Name, err)
		}
		if n != 1 {
			t.Errorf("index %s not created", spec.Name)
		}
	}
}

func TestCreateIndexes_FullText(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	folder := createTestFolder(t, db, "Docs", "")
	before := insertTestDocument(t, db, folder.ID, IntKey(0), "Москва before indexing")

	if err := CreateIndexes(ctx, db); err != nil {
		t.Fatalf("CreateIndexes() error = %v", err)
	}

	after := insertTestDocument(t, db, folder.ID, IntKey(1), "москва after indexing")
	gone := insertTestDocument(t, db, folder.ID, IntKey(2), "Москва deleted later")
	if err := NewDocumentRepo(db).Delete(ctx, gone.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	rows, err := db.QueryContext(ctx,
		"SELECT d.id FROM documents_fts JOIN documents d ON d.rowid = documents_fts.docid WHERE documents_fts MATCH ? ORDER BY d.rowid",
		"МОСКВА")
	if err != nil {
		t.Fatalf("MATCH query error = %v", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var got []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		got = append(got, id)
	}
	if len(got) != 2 || got[0] != before.ID || got[1] != after.ID {
		t.Errorf("full-text match = %v, want [%s %s]", got, before.ID, after.ID)
	}

	doc := insertTestDocument(t, db, folder.ID, IntKey(3), "text")
	if err := NewQARepo(db).Insert(ctx, &QAPair{DocumentID: doc.ID, Question: "Where is Athens?", Answer: "In Greece."}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM qa_pairs_fts WHERE qa_pairs_fts MATCH ?", "greece").Scan(&n); err != nil {
		t.Fatalf("MATCH qa query error = %v", err)
	}
	if n != 1 {
		t.Errorf("qa full-text match = %d, want 1", n)
	}
}

func TestCreateIndex_UnknownTable(t *testing.T) {
	db := newTestDB(t)

	err := CreateIndex(context.Background(), db, IndexSpec{Collection: "missing", Name: "idx_missing", Columns: []string{"x"}})
	if err == nil {
		t.Error("CreateIndex() on missing table should return error")
	}
}

func TestNew_ConnectionPoolSettings(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	stats := db.Stats()
	if stats.MaxOpenConnections != 25 {
		t.Errorf("MaxOpenConnections = %v, want 25", stats.MaxOpenConnections)
	}
	// MaxIdleClosed is just a setting check, not an actual value to verify
	// The actual value depends on usage
	_ = stats.MaxIdleClosed
}

func TestNew_InvalidPath(t *testing.T) {
	// Try to create database in non-existent directory
	invalidPath := "/nonexistent/path/test.db"

	db, err := New(invalidPath)
	if err == nil {
		if db != nil {
			_ = db.Close()
		}
		t.Error("New() with invalid path should return error")
	}
}

func TestNew_Ping(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	// Verify connection works
	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
