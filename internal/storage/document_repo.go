package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks ragstore/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DefaultSearchLimit is used by text search when the caller passes no limit.
const DefaultSearchLimit = 10

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert inserts a document. Fails with a ReferenceError when the folder does not exist.
	Insert(ctx context.Context, doc *Document) error
	// Get gets a document by its ID. Returns a NotFoundError if not found.
	Get(ctx context.Context, id string) (*Document, error)
	// UpdateEmbedding replaces the document's vector and bumps updated_at.
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
	// UpdateMetadata replaces the document's metadata map.
	UpdateMetadata(ctx context.Context, id string, meta map[string]any) error
	// ListByFolder returns a folder's documents in sequence order.
	ListByFolder(ctx context.Context, folderID string, limit int) ([]*Document, error)
	// SearchText ranks documents by how many query terms their text contains.
	SearchText(ctx context.Context, query, folderID string, limit int) ([]*Document, error)
	// ListEmbedded returns documents that carry a non-empty embedding.
	ListEmbedded(ctx context.Context, folderID string) ([]*Document, error)
	// SearchByMetadata returns documents whose metadata key equals value.
	SearchByMetadata(ctx context.Context, key string, value any, folderID string) ([]*Document, error)
	// Delete removes a document together with its labels and QA pairs.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = "id, folder_id, sequence_key, raw_text, embedding, metadata, created_at, updated_at"

func scanDocument(row rowScanner, extra ...any) (*Document, error) {
	var (
		doc              Document
		embedding        []byte
		meta             string
		created, updated int64
	)
	dest := append([]any{&doc.ID, &doc.FolderID, &doc.SequenceKey, &doc.RawText, &embedding, &meta, &created, &updated}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	doc.CreatedAt = fromUnix(created)
	doc.UpdatedAt = fromUnix(updated)

	var err error
	if doc.Embedding, err = decodeEmbedding(embedding); err != nil {
		return nil, err
	}
	if doc.Metadata, err = decodeMetadata(meta); err != nil {
		return nil, err
	}
	return &doc, nil
}

func collectDocuments(rows *sql.Rows) ([]*Document, error) {
	defer func() {
		_ = rows.Close()
	}()

	docs := []*Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

// Insert inserts a document and marks its folder as accessed.
// The ID is generated when unset; a zero CreatedAt is set to now so that
// migrated records can keep their original creation time.
func (r *DocumentRepo) Insert(ctx context.Context, doc *Document) error {
	err := validation.Errors{
		"folder_id": validation.Validate(doc.FolderID, validation.Required),
	}.Filter()
	if err != nil {
		return fromValidation(err)
	}

	var exists int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM folders WHERE id = ?", doc.FolderID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check folder: %w", err)
	}
	if exists == 0 {
		return &ReferenceError{Entity: "folder", ID: doc.FolderID}
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}

	meta, err := encodeMetadata(doc.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO documents ("+documentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		doc.ID, doc.FolderID, doc.SequenceKey, doc.RawText, encodeEmbedding(doc.Embedding), meta,
		toUnix(doc.CreatedAt), toUnix(doc.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return &ReferenceError{Entity: "folder", ID: doc.FolderID}
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		"UPDATE folders SET last_accessed_at = ? WHERE id = ?", toUnix(now), doc.FolderID); err != nil {
		return fmt.Errorf("failed to update folder access time: %w", err)
	}
	return nil
}

// Get gets a document by its ID. Returns a NotFoundError if not found.
func (r *DocumentRepo) Get(ctx context.Context, id string) (*Document, error) {
	doc, err := scanDocument(r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "document", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}

// UpdateEmbedding replaces the document's vector and bumps updated_at.
func (r *DocumentRepo) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET embedding = ?, updated_at = ? WHERE id = ?",
		encodeEmbedding(embedding), toUnix(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return expectOneRow(res, "document", id)
}

// UpdateMetadata replaces the document's metadata map and bumps updated_at.
func (r *DocumentRepo) UpdateMetadata(ctx context.Context, id string, meta map[string]any) error {
	raw, err := encodeMetadata(meta)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET metadata = ?, updated_at = ? WHERE id = ?",
		raw, toUnix(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}
	return expectOneRow(res, "document", id)
}

func expectOneRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

// ListByFolder returns documents ordered by sequence key, then creation time,
// then insertion order. A limit of zero or less returns every document.
func (r *DocumentRepo) ListByFolder(ctx context.Context, folderID string, limit int) ([]*Document, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE folder_id = ? ORDER BY sequence_key, created_at, rowid LIMIT ?",
		folderID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	return collectDocuments(rows)
}

// SearchText matches documents containing any query term, case-insensitively.
// Results are ranked by the number of distinct terms matched, newest first on ties.
// A query made only of stopwords matches nothing.
func (r *DocumentRepo) SearchText(ctx context.Context, query, folderID string, limit int) ([]*Document, error) {
	terms := searchTerms(query)
	if len(terms) == 0 {
		return []*Document{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	parts := make([]string, len(terms))
	args := make([]any, 0, len(terms)+2)
	for i, term := range terms {
		parts[i] = "(instr(fold(raw_text), ?) > 0)"
		args = append(args, term)
	}

	inner := "SELECT " + documentColumns + ", rowid AS seq, " + strings.Join(parts, " + ") + " AS score FROM documents"
	if folderID != "" {
		inner += " WHERE folder_id = ?"
		args = append(args, folderID)
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentColumns+", score FROM ("+inner+") WHERE score > 0 ORDER BY score DESC, created_at DESC, seq LIMIT ?",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := []*Document{}
	for rows.Next() {
		var score int
		doc, err := scanDocument(rows, &score)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

// ListEmbedded returns documents with a non-empty embedding in insertion order.
// An empty folderID spans every folder.
func (r *DocumentRepo) ListEmbedded(ctx context.Context, folderID string) ([]*Document, error) {
	q := "SELECT " + documentColumns + " FROM documents WHERE length(embedding) > 0"
	var args []any
	if folderID != "" {
		q += " AND folder_id = ?"
		args = append(args, folderID)
	}
	rows, err := r.db.QueryContext(ctx, q+" ORDER BY rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query embedded documents: %w", err)
	}
	return collectDocuments(rows)
}

// SearchByMetadata returns documents whose metadata key equals value, oldest first.
func (r *DocumentRepo) SearchByMetadata(ctx context.Context, key string, value any, folderID string) ([]*Document, error) {
	// json_extract yields 1/0 for JSON booleans.
	if b, ok := value.(bool); ok {
		if b {
			value = 1
		} else {
			value = 0
		}
	}
	q := "SELECT " + documentColumns + " FROM documents WHERE json_extract(metadata, ?) = ?"
	args := []any{"$." + key, value}
	if folderID != "" {
		q += " AND folder_id = ?"
		args = append(args, folderID)
	}
	rows, err := r.db.QueryContext(ctx, q+" ORDER BY created_at, rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents by metadata: %w", err)
	}
	return collectDocuments(rows)
}

// Count returns the number of documents.
func (r *DocumentRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM documents")
}

// Delete removes a document and, in the same transaction, its labels and QA pairs.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmts := []string{
		"DELETE FROM label_tags WHERE label_id IN (SELECT id FROM labels WHERE document_id = ?)",
		"DELETE FROM labels WHERE document_id = ?",
		"DELETE FROM qa_pairs WHERE document_id = ?",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete document annotations: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if err := expectOneRow(res, "document", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document delete: %w", err)
	}
	return nil
}
