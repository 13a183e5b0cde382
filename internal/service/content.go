package service

import (
	"context"
	"fmt"
	"slices"

	"ragstore/internal/contextutil"
	"ragstore/internal/storage"
	"ragstore/internal/vectorstore"
)

// Repos groups the content stores.
type Repos struct {
	Folders   storage.FolderStore
	Documents storage.DocumentStore
	Labels    storage.LabelStore
	QA        storage.QAStore
}

// ContentService is the write path for folders, documents and annotations.
// When a vector mirror is configured, document embeddings are copied to it;
// mirror failures are logged and never undo a store write.
type ContentService struct {
	repos    Repos
	mirror   vectorstore.VectorStore
	defaults *DefaultFolderResolver
}

// NewContentService creates a ContentService. defaults should be the
// process-wide resolver so every writer shares its lock. mirror may be nil.
func NewContentService(repos Repos, defaults *DefaultFolderResolver, mirror vectorstore.VectorStore) *ContentService {
	return &ContentService{
		repos:    repos,
		mirror:   mirror,
		defaults: defaults,
	}
}

// DefaultFolder returns the ID of the default folder, creating it if needed.
func (s *ContentService) DefaultFolder(ctx context.Context) (string, error) {
	return s.defaults.Resolve(ctx)
}

// CreateFolder creates a folder.
func (s *ContentService) CreateFolder(ctx context.Context, folder *storage.Folder) error {
	if err := s.repos.Folders.Create(ctx, folder); err != nil {
		return err
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "folder created",
		"folder_id", folder.ID, "title", folder.Title, "parent_id", folder.ParentID)
	return nil
}

// GetFolder returns a folder and records the access.
func (s *ContentService) GetFolder(ctx context.Context, id string) (*storage.Folder, error) {
	if err := s.repos.Folders.Touch(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Folders.Get(ctx, id)
}

// ListFolders returns the children of parentID, or the root folders when it is empty.
func (s *ContentService) ListFolders(ctx context.Context, parentID string) ([]*storage.Folder, error) {
	return s.repos.Folders.ListChildren(ctx, parentID)
}

// DeleteFolder deletes a folder and drops the removed documents from the vector mirror.
func (s *ContentService) DeleteFolder(ctx context.Context, id string, recursive bool) (*storage.DeleteResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	result, err := s.repos.Folders.Delete(ctx, id, recursive)
	if err != nil {
		return nil, err
	}
	if !result.Deleted {
		logger.InfoContext(ctx, "folder not deleted, still has content", "folder_id", id)
		return result, nil
	}

	s.purgeMirror(ctx, result.DocumentIDs)
	logger.InfoContext(ctx, "folder deleted",
		"folder_id", id,
		"folders", len(result.FolderIDs),
		"documents", len(result.DocumentIDs),
	)
	return result, nil
}

// FolderStatistics summarizes one folder.
func (s *ContentService) FolderStatistics(ctx context.Context, id string) (*storage.FolderStats, error) {
	return s.repos.Folders.Statistics(ctx, id)
}

// AllFolderStatistics summarizes every folder.
func (s *ContentService) AllFolderStatistics(ctx context.Context) ([]*storage.FolderStats, error) {
	return s.repos.Folders.AllStatistics(ctx)
}

// InsertDocument stores a document. An empty FolderID places it in the default folder.
func (s *ContentService) InsertDocument(ctx context.Context, doc *storage.Document) error {
	if doc.FolderID == "" {
		folderID, err := s.defaults.Resolve(ctx)
		if err != nil {
			return err
		}
		doc.FolderID = folderID
	}

	if err := s.repos.Documents.Insert(ctx, doc); err != nil {
		return err
	}
	if len(doc.Embedding) > 0 {
		s.mirrorDocument(ctx, doc)
	}
	return nil
}

// GetDocument returns a document by ID.
func (s *ContentService) GetDocument(ctx context.Context, id string) (*storage.Document, error) {
	return s.repos.Documents.Get(ctx, id)
}

// ListDocuments returns a folder's documents in sequence order.
// Fails with a NotFoundError when the folder does not exist.
func (s *ContentService) ListDocuments(ctx context.Context, folderID string, limit int) ([]*storage.Document, error) {
	if _, err := s.repos.Folders.Get(ctx, folderID); err != nil {
		return nil, err
	}
	return s.repos.Documents.ListByFolder(ctx, folderID, limit)
}

// UpdateDocumentEmbedding replaces a document's embedding in the store and the mirror.
func (s *ContentService) UpdateDocumentEmbedding(ctx context.Context, id string, embedding []float32) error {
	if err := s.repos.Documents.UpdateEmbedding(ctx, id, embedding); err != nil {
		return err
	}
	if s.mirror == nil {
		return nil
	}

	doc, err := s.repos.Documents.Get(ctx, id)
	if err != nil {
		return err
	}
	if len(doc.Embedding) == 0 {
		s.purgeMirror(ctx, []string{id})
		return nil
	}
	s.mirrorDocument(ctx, doc)
	return nil
}

// UpdateDocumentMetadata replaces a document's metadata map.
func (s *ContentService) UpdateDocumentMetadata(ctx context.Context, id string, meta map[string]any) error {
	if meta == nil {
		meta = map[string]any{}
	}
	if err := s.repos.Documents.UpdateMetadata(ctx, id, meta); err != nil {
		return WrapError(err, "failed to update document metadata")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "document metadata updated",
		"document_id", id, "keys", len(meta))
	return nil
}

// SearchDocumentsByMetadata returns documents whose metadata key equals value,
// optionally scoped to a folder.
func (s *ContentService) SearchDocumentsByMetadata(ctx context.Context, key string, value any, folderID string) ([]*storage.Document, error) {
	if key == "" {
		return nil, &ValidationError{Field: "metadata_key", Message: "cannot be blank"}
	}
	return s.repos.Documents.SearchByMetadata(ctx, key, value, folderID)
}

// DeleteDocument removes a document with its labels and QA pairs.
func (s *ContentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.repos.Documents.Delete(ctx, id); err != nil {
		return err
	}
	s.purgeMirror(ctx, []string{id})
	return nil
}

// AddLabel attaches a label to a document.
func (s *ContentService) AddLabel(ctx context.Context, label *storage.Label) error {
	return s.repos.Labels.Insert(ctx, label)
}

// AddQA attaches a QA pair to a document. A missing question type is
// classified from the question text.
func (s *ContentService) AddQA(ctx context.Context, qa *storage.QAPair) error {
	if qa.QuestionType == "" {
		qa.QuestionType = storage.ClassifyQuestion(qa.Question)
	}
	return s.repos.QA.Insert(ctx, qa)
}

// DocumentLabels returns a document's labels, oldest first.
func (s *ContentService) DocumentLabels(ctx context.Context, documentID string) ([]*storage.Label, error) {
	if _, err := s.repos.Documents.Get(ctx, documentID); err != nil {
		return nil, err
	}
	return s.repos.Labels.ListByDocument(ctx, documentID)
}

// DocumentQA returns a document's QA pairs, oldest first.
func (s *ContentService) DocumentQA(ctx context.Context, documentID string) ([]*storage.QAPair, error) {
	if _, err := s.repos.Documents.Get(ctx, documentID); err != nil {
		return nil, err
	}
	return s.repos.QA.ListByDocument(ctx, documentID)
}

// LabelsByCategory returns the labels in a category, optionally scoped to a folder.
func (s *ContentService) LabelsByCategory(ctx context.Context, category, folderID string) ([]*storage.Label, error) {
	if category == "" {
		return nil, &ValidationError{Field: "category", Message: "cannot be blank"}
	}
	return s.repos.Labels.SearchByCategory(ctx, category, folderID)
}

// QAByDifficulty returns the QA pairs of one difficulty, optionally scoped to a folder.
func (s *ContentService) QAByDifficulty(ctx context.Context, difficulty storage.Difficulty, folderID string) ([]*storage.QAPair, error) {
	if !slices.Contains(storage.Difficulties, difficulty) {
		return nil, &ValidationError{Field: "difficulty", Message: "must be easy, medium or hard"}
	}
	return s.repos.QA.ListByDifficulty(ctx, difficulty, folderID)
}

// PopularTags returns the most used tags, optionally scoped to a folder.
func (s *ContentService) PopularTags(ctx context.Context, folderID string, limit int) ([]storage.TagCount, error) {
	return s.repos.Labels.PopularTags(ctx, folderID, limit)
}

func documentPoint(doc *storage.Document) vectorstore.Point {
	return vectorstore.Point{
		ID:  doc.ID,
		Vec: doc.Embedding,
		Meta: map[string]any{
			vectorstore.FilterFolderID: doc.FolderID,
			"sequence_key":             doc.SequenceKey.String(),
		},
	}
}

func (s *ContentService) mirrorDocument(ctx context.Context, doc *storage.Document) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Upsert(ctx, []vectorstore.Point{documentPoint(doc)}); err != nil {
		err = &UpstreamError{Collaborator: "vector mirror", Err: fmt.Errorf("upsert %s: %w", doc.ID, err)}
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to mirror document vector",
			"document_id", doc.ID, "error", err)
	}
}

func (s *ContentService) purgeMirror(ctx context.Context, ids []string) {
	if s.mirror == nil || len(ids) == 0 {
		return
	}
	if err := s.mirror.Delete(ctx, ids); err != nil {
		err = &UpstreamError{Collaborator: "vector mirror", Err: err}
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to purge document vectors",
			"documents", len(ids), "error", err)
	}
}
