package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_label_store.go -package=mocks ragstore/internal/storage LabelStore

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

// DefaultPopularTags is the number of tags PopularTags returns when no limit is given.
const DefaultPopularTags = 20

// LabelStore defines the interface for label storage operations.
type LabelStore interface {
	// Insert attaches a label to a document. The folder is taken from the document.
	Insert(ctx context.Context, label *Label) error
	// ListByDocument returns a document's labels, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]*Label, error)
	// SearchByTags returns labels carrying at least one of tags.
	SearchByTags(ctx context.Context, tags []string, folderID string) ([]*Label, error)
	// SearchByCategory returns labels in a category, newest first.
	SearchByCategory(ctx context.Context, category, folderID string) ([]*Label, error)
	// PopularTags counts tag usage, most used first.
	PopularTags(ctx context.Context, folderID string, limit int) ([]TagCount, error)
}

// LabelRepo provides methods for label operations.
// It implements the LabelStore interface.
type LabelRepo struct {
	db *sql.DB
}

// NewLabelRepo creates a new LabelRepo.
func NewLabelRepo(db *sql.DB) *LabelRepo {
	return &LabelRepo{db: db}
}

const labelColumns = "id, document_id, folder_id, topic, tags, category, confidence, created_at, updated_at"

func scanLabel(row rowScanner) (*Label, error) {
	var (
		label            Label
		tags             string
		created, updated int64
	)
	if err := row.Scan(&label.ID, &label.DocumentID, &label.FolderID, &label.Topic, &tags,
		&label.Category, &label.Confidence, &created, &updated); err != nil {
		return nil, err
	}
	label.CreatedAt = fromUnix(created)
	label.UpdatedAt = fromUnix(updated)

	var err error
	if label.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	return &label, nil
}

func collectLabels(rows *sql.Rows) ([]*Label, error) {
	defer func() {
		_ = rows.Close()
	}()

	labels := []*Label{}
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return labels, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// documentFolder returns the folder that owns documentID.
// A caller-supplied folder that disagrees with it is a ReferenceError.
func documentFolder(ctx context.Context, q rowQuerier, documentID, claimed string) (string, error) {
	var folderID string
	err := q.QueryRowContext(ctx, "SELECT folder_id FROM documents WHERE id = ?", documentID).Scan(&folderID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &ReferenceError{Entity: "document", ID: documentID}
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve document folder: %w", err)
	}
	if claimed != "" && claimed != folderID {
		return "", &ReferenceError{Entity: "folder", ID: claimed, Reason: "does not own document " + documentID}
	}
	return folderID, nil
}

// Insert attaches a label to a document.
//
// The label's folder is copied from the document at insert time and an empty
// category becomes "general". Confidence is stored as given, zero included;
// callers without a score pass DefaultConfidence.
func (r *LabelRepo) Insert(ctx context.Context, label *Label) error {
	if label.Category == "" {
		label.Category = "general"
	}
	err := validation.Errors{
		"document_id": validation.Validate(label.DocumentID, validation.Required),
		"topic":       validation.Validate(label.Topic, validation.Required),
		"confidence":  validation.Validate(label.Confidence, validation.Min(0.0), validation.Max(1.0)),
	}.Filter()
	if err != nil {
		return fromValidation(err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	folderID, err := documentFolder(ctx, tx, label.DocumentID, label.FolderID)
	if err != nil {
		return err
	}
	label.FolderID = folderID

	if label.ID == "" {
		label.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if label.CreatedAt.IsZero() {
		label.CreatedAt = now
	}
	label.UpdatedAt = now
	if label.Tags == nil {
		label.Tags = []string{}
	}

	tags, err := encodeTags(label.Tags)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO labels ("+labelColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		label.ID, label.DocumentID, label.FolderID, label.Topic, tags, label.Category, label.Confidence,
		toUnix(label.CreatedAt), toUnix(label.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return &ReferenceError{Entity: "document", ID: label.DocumentID}
		}
		return fmt.Errorf("failed to insert label: %w", err)
	}

	for _, tag := range label.Tags {
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO label_tags (label_id, tag) VALUES (?, ?)", label.ID, tag); err != nil {
			return fmt.Errorf("failed to insert label tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit label: %w", err)
	}
	return nil
}

// ListByDocument returns a document's labels, oldest first.
func (r *LabelRepo) ListByDocument(ctx context.Context, documentID string) ([]*Label, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+labelColumns+" FROM labels WHERE document_id = ? ORDER BY created_at, rowid", documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	return collectLabels(rows)
}

// SearchByTags returns each label carrying at least one of tags exactly once,
// newest first. No tags means no results.
func (r *LabelRepo) SearchByTags(ctx context.Context, tags []string, folderID string) ([]*Label, error) {
	if len(tags) == 0 {
		return []*Label{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tags)), ", ")
	args := make([]any, 0, len(tags)+1)
	for _, tag := range tags {
		args = append(args, tag)
	}

	q := "SELECT " + labelColumns + " FROM labels WHERE id IN (SELECT label_id FROM label_tags WHERE tag IN (" + placeholders + "))"
	if folderID != "" {
		q += " AND folder_id = ?"
		args = append(args, folderID)
	}
	rows, err := r.db.QueryContext(ctx, q+" ORDER BY created_at DESC, rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search labels by tags: %w", err)
	}
	return collectLabels(rows)
}

// SearchByCategory returns labels in category, newest first.
func (r *LabelRepo) SearchByCategory(ctx context.Context, category, folderID string) ([]*Label, error) {
	q := "SELECT " + labelColumns + " FROM labels WHERE category = ?"
	args := []any{category}
	if folderID != "" {
		q += " AND folder_id = ?"
		args = append(args, folderID)
	}
	rows, err := r.db.QueryContext(ctx, q+" ORDER BY created_at DESC, rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search labels by category: %w", err)
	}
	return collectLabels(rows)
}

// PopularTags returns the most used tags with their label counts.
// Ties are broken alphabetically.
func (r *LabelRepo) PopularTags(ctx context.Context, folderID string, limit int) ([]TagCount, error) {
	if limit <= 0 {
		limit = DefaultPopularTags
	}
	q := "SELECT t.tag, COUNT(*) AS n FROM label_tags t JOIN labels l ON l.id = t.label_id"
	var args []any
	if folderID != "" {
		q += " WHERE l.folder_id = ?"
		args = append(args, folderID)
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q+" GROUP BY t.tag ORDER BY n DESC, t.tag LIMIT ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tags := []TagCount{}
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag count: %w", err)
		}
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tags, nil
}

// Count returns the number of labels.
func (r *LabelRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM labels")
}
