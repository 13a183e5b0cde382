package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_folder_store.go -package=mocks ragstore/internal/storage FolderStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// FolderStore defines the interface for folder storage operations.
type FolderStore interface {
	// Create inserts a folder. Fails with a ReferenceError when ParentID does not resolve.
	Create(ctx context.Context, folder *Folder) error
	// Get returns a folder by ID or a NotFoundError.
	Get(ctx context.Context, id string) (*Folder, error)
	// ListChildren returns the direct children of parentID, or the roots when parentID is empty.
	ListChildren(ctx context.Context, parentID string) ([]*Folder, error)
	// Touch records an access to the folder.
	Touch(ctx context.Context, id string) error
	// Delete removes a folder, optionally with everything beneath it.
	Delete(ctx context.Context, id string, recursive bool) (*DeleteResult, error)
	// Statistics summarizes the content scoped to a folder.
	Statistics(ctx context.Context, id string) (*FolderStats, error)
	// AllStatistics summarizes every folder.
	AllStatistics(ctx context.Context) ([]*FolderStats, error)
	// FindFlagged returns the oldest folder whose metadata has key set to true.
	FindFlagged(ctx context.Context, key string) (*Folder, error)
	// Count returns the number of folders.
	Count(ctx context.Context) (int, error)
}

// DeleteResult describes the outcome of a folder delete.
// Deleted is false when a non-recursive delete was blocked by content.
type DeleteResult struct {
	Deleted     bool
	FolderIDs   []string
	DocumentIDs []string
}

// FolderRepo provides methods for folder operations.
// It implements the FolderStore interface.
type FolderRepo struct {
	db *sql.DB
}

// NewFolderRepo creates a new FolderRepo.
func NewFolderRepo(db *sql.DB) *FolderRepo {
	return &FolderRepo{db: db}
}

const folderColumns = "id, title, description, folder_type, parent_id, created_at, last_accessed_at, cover_image_url, metadata"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*Folder, error) {
	var (
		folder            Folder
		parentID          sql.NullString
		created, accessed int64
		meta              string
	)
	if err := row.Scan(&folder.ID, &folder.Title, &folder.Description, &folder.FolderType, &parentID,
		&created, &accessed, &folder.CoverImageURL, &meta); err != nil {
		return nil, err
	}
	folder.ParentID = parentID.String
	folder.CreatedAt = fromUnix(created)
	folder.LastAccessedAt = fromUnix(accessed)

	var err error
	if folder.Metadata, err = decodeMetadata(meta); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Create inserts a folder, generating its ID when unset and setting both timestamps to now.
func (r *FolderRepo) Create(ctx context.Context, folder *Folder) error {
	if folder.FolderType == "" {
		folder.FolderType = "general"
	}
	err := validation.Errors{
		"title":       validation.Validate(folder.Title, validation.Required, validation.Length(1, 255)),
		"folder_type": validation.Validate(folder.FolderType, validation.Length(1, 64)),
	}.Filter()
	if err != nil {
		return fromValidation(err)
	}

	if folder.ParentID != "" {
		exists, err := r.exists(ctx, folder.ParentID)
		if err != nil {
			return err
		}
		if !exists {
			return &ReferenceError{Entity: "parent folder", ID: folder.ParentID}
		}
	}

	if folder.ID == "" {
		folder.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	folder.CreatedAt = now
	folder.LastAccessedAt = now
	if folder.Metadata == nil {
		folder.Metadata = map[string]any{}
	}

	meta, err := encodeMetadata(folder.Metadata)
	if err != nil {
		return err
	}

	var parentID sql.NullString
	if folder.ParentID != "" {
		parentID = sql.NullString{String: folder.ParentID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO folders (id, title, description, folder_type, parent_id, created_at, last_accessed_at, cover_image_url, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		folder.ID, folder.Title, folder.Description, folder.FolderType, parentID,
		toUnix(now), toUnix(now), folder.CoverImageURL, meta,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return &ReferenceError{Entity: "parent folder", ID: folder.ParentID}
		}
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

// Get gets a folder by its ID. Returns a NotFoundError if not found.
func (r *FolderRepo) Get(ctx context.Context, id string) (*Folder, error) {
	folder, err := scanFolder(r.db.QueryRowContext(ctx,
		"SELECT "+folderColumns+" FROM folders WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "folder", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query folder: %w", err)
	}
	return folder, nil
}

// ListChildren returns child folders newest first. An empty parentID lists root folders.
func (r *FolderRepo) ListChildren(ctx context.Context, parentID string) ([]*Folder, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == "" {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+folderColumns+" FROM folders WHERE parent_id IS NULL ORDER BY created_at DESC, rowid DESC")
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+folderColumns+" FROM folders WHERE parent_id = ? ORDER BY created_at DESC, rowid DESC", parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	return collectFolders(rows)
}

// ListAll returns every folder, oldest first.
func (r *FolderRepo) ListAll(ctx context.Context) ([]*Folder, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+folderColumns+" FROM folders ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	return collectFolders(rows)
}

func collectFolders(rows *sql.Rows) ([]*Folder, error) {
	defer func() {
		_ = rows.Close()
	}()

	folders := []*Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return folders, nil
}

// Touch sets the folder's last-accessed timestamp to now.
func (r *FolderRepo) Touch(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE folders SET last_accessed_at = ? WHERE id = ?", toUnix(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update folder access time: %w", err)
	}
	return nil
}

// FindFlagged returns the oldest folder whose metadata has key set to true.
// Returns a NotFoundError when no folder carries the flag.
func (r *FolderRepo) FindFlagged(ctx context.Context, key string) (*Folder, error) {
	folder, err := scanFolder(r.db.QueryRowContext(ctx,
		"SELECT "+folderColumns+" FROM folders WHERE json_extract(metadata, ?) = 1 ORDER BY created_at LIMIT 1",
		"$."+key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "folder", ID: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query flagged folder: %w", err)
	}
	return folder, nil
}

// Count returns the number of folders.
func (r *FolderRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM folders")
}

// Delete removes a folder.
//
// A non-recursive delete only removes an empty folder; when the folder still holds
// documents or child folders the result has Deleted=false and nothing changes.
// A recursive delete walks the subtree depth-first and removes the QA pairs, labels,
// documents and folder row of each visited folder, children before parents.
func (r *FolderRepo) Delete(ctx context.Context, id string, recursive bool) (*DeleteResult, error) {
	exists, err := r.exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{Entity: "folder", ID: id}
	}

	if !recursive {
		empty, err := r.isEmpty(ctx, id)
		if err != nil {
			return nil, err
		}
		if !empty {
			return &DeleteResult{Deleted: false}, nil
		}
		if _, err := r.db.ExecContext(ctx, "DELETE FROM folders WHERE id = ?", id); err != nil {
			return nil, fmt.Errorf("failed to delete folder: %w", err)
		}
		return &DeleteResult{Deleted: true, FolderIDs: []string{id}}, nil
	}

	result := &DeleteResult{Deleted: true}
	if err := r.deleteRecursive(ctx, id, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *FolderRepo) deleteRecursive(ctx context.Context, id string, result *DeleteResult) error {
	children, err := queryStrings(ctx, r.db, "SELECT id FROM folders WHERE parent_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to list child folders: %w", err)
	}
	for _, child := range children {
		if err := r.deleteRecursive(ctx, child, result); err != nil {
			return err
		}
	}

	docIDs, err := queryStrings(ctx, r.db, "SELECT id FROM documents WHERE folder_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to list folder documents: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Annotations are matched by folder and by owning document so that rows with a
	// stale denormalized folder id cannot block the document delete.
	stmts := []string{
		"DELETE FROM label_tags WHERE label_id IN (SELECT id FROM labels WHERE folder_id = ?1 OR document_id IN (SELECT id FROM documents WHERE folder_id = ?1))",
		"DELETE FROM qa_pairs WHERE folder_id = ?1 OR document_id IN (SELECT id FROM documents WHERE folder_id = ?1)",
		"DELETE FROM labels WHERE folder_id = ?1 OR document_id IN (SELECT id FROM documents WHERE folder_id = ?1)",
		"DELETE FROM documents WHERE folder_id = ?1",
		"DELETE FROM folders WHERE id = ?1",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete folder %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit folder delete: %w", err)
	}

	result.FolderIDs = append(result.FolderIDs, id)
	result.DocumentIDs = append(result.DocumentIDs, docIDs...)
	return nil
}

// Statistics returns document/label/QA counts and the five most recent documents.
func (r *FolderRepo) Statistics(ctx context.Context, id string) (*FolderStats, error) {
	folder, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.statistics(ctx, folder)
}

// AllStatistics returns statistics for every folder.
func (r *FolderRepo) AllStatistics(ctx context.Context) ([]*FolderStats, error) {
	folders, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]*FolderStats, 0, len(folders))
	for _, folder := range folders {
		s, err := r.statistics(ctx, folder)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

func (r *FolderRepo) statistics(ctx context.Context, folder *Folder) (*FolderStats, error) {
	stats := &FolderStats{
		FolderID:    folder.ID,
		FolderTitle: folder.Title,
		FolderType:  folder.FolderType,
	}

	var err error
	if stats.DocumentCount, err = count(ctx, r.db, "SELECT COUNT(*) FROM documents WHERE folder_id = ?", folder.ID); err != nil {
		return nil, err
	}
	if stats.LabelCount, err = count(ctx, r.db, "SELECT COUNT(*) FROM labels WHERE folder_id = ?", folder.ID); err != nil {
		return nil, err
	}
	if stats.QACount, err = count(ctx, r.db, "SELECT COUNT(*) FROM qa_pairs WHERE folder_id = ?", folder.ID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE folder_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 5",
		folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent documents: %w", err)
	}
	if stats.RecentDocuments, err = collectDocuments(rows); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *FolderRepo) exists(ctx context.Context, id string) (bool, error) {
	n, err := count(ctx, r.db, "SELECT COUNT(*) FROM folders WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FolderRepo) isEmpty(ctx context.Context, id string) (bool, error) {
	docs, err := count(ctx, r.db, "SELECT COUNT(*) FROM documents WHERE folder_id = ?", id)
	if err != nil {
		return false, err
	}
	children, err := count(ctx, r.db, "SELECT COUNT(*) FROM folders WHERE parent_id = ?", id)
	if err != nil {
		return false, err
	}
	return docs == 0 && children == 0, nil
}

func count(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
