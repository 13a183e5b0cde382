package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with the fold() SQL function registered on every connection.
const driverName = "sqlite3_ragstore"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// SQLite's lower() only folds ASCII; fold() applies the same
			// Unicode folding searchTerms uses on the query side.
			return conn.RegisterFunc("fold", foldCase, true)
		},
	})
}

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		// Foreign keys and busy timeout must be set per connection, so they go in the DSN.
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			folder_type TEXT NOT NULL DEFAULT 'general',
			parent_id TEXT REFERENCES folders(id),
			created_at INTEGER NOT NULL,
			last_accessed_at INTEGER NOT NULL,
			cover_image_url TEXT NOT NULL DEFAULT '',
			metadata TEXT NOT NULL DEFAULT '{}'
		);`,
		// sequence_key has no declared type so integer and text keys keep their storage class.
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			folder_id TEXT NOT NULL REFERENCES folders(id),
			sequence_key,
			raw_text TEXT NOT NULL,
			embedding BLOB NOT NULL DEFAULT x'',
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS labels (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id),
			folder_id TEXT NOT NULL REFERENCES folders(id),
			topic TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			category TEXT NOT NULL,
			confidence REAL NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS label_tags (
			label_id TEXT NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
			tag TEXT NOT NULL,
			PRIMARY KEY (label_id, tag)
		);`,
		`CREATE TABLE IF NOT EXISTS qa_pairs (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id),
			folder_id TEXT NOT NULL REFERENCES folders(id),
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			question_type TEXT NOT NULL DEFAULT 'general',
			difficulty TEXT NOT NULL DEFAULT 'medium',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		// Legacy flat collections, read only by the migration pipeline.
		`CREATE TABLE IF NOT EXISTS legacy_chunks (
			id TEXT PRIMARY KEY,
			chunk_id TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS legacy_labels (
			id TEXT PRIMARY KEY,
			chunk_id TEXT NOT NULL DEFAULT '',
			labels TEXT NOT NULL DEFAULT '{}',
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS legacy_qa (
			id TEXT PRIMARY KEY,
			chunk_id TEXT NOT NULL DEFAULT '',
			qa_pairs TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// IndexSpec declares one secondary index. A FullText spec is an FTS4
// external-content table named Name over Columns of Collection, kept in step
// with the collection by triggers.
type IndexSpec struct {
	Collection string
	Name       string
	Columns    []string
	Desc       bool
	FullText   bool
}

// SQL renders the CREATE statement for the spec.
func (s IndexSpec) SQL() string {
	if s.FullText {
		return fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING fts4(content="%s", %s, tokenize=unicode61)`,
			s.Name, s.Collection, strings.Join(s.Columns, ", "))
	}
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c
		if s.Desc {
			cols[i] += " DESC"
		}
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", s.Name, s.Collection, strings.Join(cols, ", "))
}

// triggers renders the statements that mirror writes on the collection into a
// full-text table. Removals run before the row changes because an
// external-content table reads the old text from the collection.
func (s IndexSpec) triggers() []string {
	cols := strings.Join(s.Columns, ", ")
	newCols := "new." + strings.Join(s.Columns, ", new.")
	remove := fmt.Sprintf("DELETE FROM %s WHERE docid = old.rowid;", s.Name)
	add := fmt.Sprintf("INSERT INTO %s (docid, %s) VALUES (new.rowid, %s);", s.Name, cols, newCols)

	trigger := func(suffix, when, body string) string {
		return fmt.Sprintf("CREATE TRIGGER IF NOT EXISTS %s_%s %s ON %s BEGIN %s END",
			s.Name, suffix, when, s.Collection, body)
	}
	return []string{
		trigger("ai", "AFTER INSERT", add),
		trigger("bu", "BEFORE UPDATE", remove),
		trigger("au", "AFTER UPDATE", add),
		trigger("bd", "BEFORE DELETE", remove),
	}
}

// IndexSpecs returns the declared index set for the four content collections.
// Vector search is served by the vectorstore package, so it has no SQLite index here.
func IndexSpecs() []IndexSpec {
	return []IndexSpec{
		{Collection: "documents", Name: "documents_fts", Columns: []string{"raw_text"}, FullText: true},
		{Collection: "qa_pairs", Name: "qa_pairs_fts", Columns: []string{"question", "answer"}, FullText: true},
		{Collection: "documents", Name: "idx_documents_folder", Columns: []string{"folder_id"}},
		{Collection: "documents", Name: "idx_documents_sequence", Columns: []string{"folder_id", "sequence_key", "created_at"}},
		{Collection: "documents", Name: "idx_documents_created", Columns: []string{"created_at"}, Desc: true},
		{Collection: "labels", Name: "idx_labels_document", Columns: []string{"document_id"}},
		{Collection: "labels", Name: "idx_labels_folder", Columns: []string{"folder_id"}},
		{Collection: "labels", Name: "idx_labels_topic", Columns: []string{"topic"}},
		{Collection: "label_tags", Name: "idx_label_tags_tag", Columns: []string{"tag"}},
		{Collection: "labels", Name: "idx_labels_category", Columns: []string{"category"}},
		{Collection: "qa_pairs", Name: "idx_qa_document", Columns: []string{"document_id"}},
		{Collection: "qa_pairs", Name: "idx_qa_folder", Columns: []string{"folder_id"}},
		{Collection: "qa_pairs", Name: "idx_qa_type", Columns: []string{"question_type"}},
		{Collection: "qa_pairs", Name: "idx_qa_difficulty", Columns: []string{"difficulty"}},
		{Collection: "folders", Name: "idx_folders_type", Columns: []string{"folder_type"}},
		{Collection: "folders", Name: "idx_folders_parent", Columns: []string{"parent_id"}},
		{Collection: "folders", Name: "idx_folders_created", Columns: []string{"created_at"}, Desc: true},
		{Collection: "folders", Name: "idx_folders_accessed", Columns: []string{"last_accessed_at"}, Desc: true},
	}
}

// CreateIndex creates a single declared index. It is idempotent. A new
// full-text table is filled from the rows already in its collection.
func CreateIndex(ctx context.Context, db *sql.DB, spec IndexSpec) error {
	if !spec.FullText {
		if _, err := db.ExecContext(ctx, spec.SQL()); err != nil {
			return fmt.Errorf("failed to create index %s: %w", spec.Name, err)
		}
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", spec.Name).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check index %s: %w", spec.Name, err)
	}

	stmts := append([]string{spec.SQL()}, spec.triggers()...)
	if existing == 0 {
		stmts = append(stmts, fmt.Sprintf("INSERT INTO %s (%s) VALUES ('rebuild')", spec.Name, spec.Name))
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index %s: %w", spec.Name, err)
		}
	}
	return tx.Commit()
}

// CreateIndexes creates every declared index, stopping at the first failure.
func CreateIndexes(ctx context.Context, db *sql.DB) error {
	for _, spec := range IndexSpecs() {
		if err := CreateIndex(ctx, db, spec); err != nil {
			return err
		}
	}
	return nil
}
