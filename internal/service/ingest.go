package service

import (
	"context"
	"errors"
	"strings"

	"ragstore/internal/contextutil"
	"ragstore/internal/storage"
)

// DefaultQAPerPassage is the number of QA pairs requested for each passage.
const DefaultQAPerPassage = 3

// Passage is one piece of text to ingest.
type Passage struct {
	Text        string
	SequenceKey *storage.SequenceKey // nil means the passage's position in the request
	Metadata    map[string]any
}

// IngestRequest asks for passages to be stored in one folder.
type IngestRequest struct {
	FolderID     string // empty means the default folder
	Passages     []Passage
	QAPerPassage int // 0 means DefaultQAPerPassage
}

// IngestResult reports what an ingest stored.
type IngestResult struct {
	FolderID    string   `json:"folder_id"`
	DocumentIDs []string `json:"document_ids"`
	Documents   Tally    `json:"documents"`
	Labels      Tally    `json:"labels"`
	QAPairs     Tally    `json:"qa_pairs"`
}

// Ingester embeds, stores and annotates passages. Any collaborator may be nil,
// in which case that step is skipped.
type Ingester struct {
	content  *ContentService
	embedder Embedder
	labeler  Labeler
	qagen    QAGenerator
}

// NewIngester creates an Ingester writing through content.
func NewIngester(content *ContentService, embedder Embedder, labeler Labeler, qagen QAGenerator) *Ingester {
	return &Ingester{content: content, embedder: embedder, labeler: labeler, qagen: qagen}
}

// Ingest stores each passage as a document and annotates it.
//
// An embedding failure stores the document without a vector, and a labeler or
// QA generator failure skips that annotation; neither fails the passage. Only a
// failed document write counts as a failed passage. A folder that does not exist
// fails the whole request before anything is written.
func (i *Ingester) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	folderID := req.FolderID
	if folderID == "" {
		var err error
		if folderID, err = i.content.DefaultFolder(ctx); err != nil {
			return nil, err
		}
	} else if _, err := i.content.repos.Folders.Get(ctx, folderID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &storage.ReferenceError{Entity: "folder", ID: folderID}
		}
		return nil, err
	}

	qaCount := req.QAPerPassage
	if qaCount <= 0 {
		qaCount = DefaultQAPerPassage
	}

	result := &IngestResult{FolderID: folderID, DocumentIDs: []string{}}
	for n, passage := range req.Passages {
		if strings.TrimSpace(passage.Text) == "" {
			logger.WarnContext(ctx, "skipping empty passage", "index", n)
			result.Documents.Skip()
			continue
		}

		key := storage.IntKey(int64(n))
		if passage.SequenceKey != nil {
			key = *passage.SequenceKey
		}
		doc := &storage.Document{
			FolderID:    folderID,
			SequenceKey: key,
			RawText:     passage.Text,
			Embedding:   i.embed(ctx, n, passage.Text),
			Metadata:    passage.Metadata,
		}
		if err := i.content.InsertDocument(ctx, doc); err != nil {
			logger.ErrorContext(ctx, "failed to store passage", "index", n, "error", err)
			result.Documents.Fail()
			continue
		}
		result.Documents.Succeed()
		result.DocumentIDs = append(result.DocumentIDs, doc.ID)

		i.label(ctx, doc, &result.Labels)
		i.generateQA(ctx, doc, qaCount, &result.QAPairs)
	}

	logger.InfoContext(ctx, "ingest completed",
		"folder_id", folderID,
		"documents", result.Documents,
		"labels", result.Labels,
		"qa_pairs", result.QAPairs,
	)
	return result, nil
}

func (i *Ingester) embed(ctx context.Context, n int, text string) []float32 {
	if i.embedder == nil {
		return nil
	}
	vec, err := i.embedder.Embed(ctx, text)
	if err != nil {
		err = &UpstreamError{Collaborator: "embedder", Err: err}
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "storing passage without embedding", "index", n, "error", err)
		return nil
	}
	return vec
}

func (i *Ingester) label(ctx context.Context, doc *storage.Document, tally *Tally) {
	if i.labeler == nil {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)

	labels, err := i.labeler.GenerateLabels(ctx, doc.RawText)
	if err != nil {
		err = &UpstreamError{Collaborator: "labeler", Err: err}
		logger.WarnContext(ctx, "skipping labels", "document_id", doc.ID, "error", err)
		tally.Skip()
		return
	}

	label := &storage.Label{
		DocumentID: doc.ID,
		FolderID:   doc.FolderID,
		Topic:      labels.Topic,
		Tags:       labels.Tags,
		Category:   labels.Category,
		Confidence: storage.DefaultConfidence,
	}
	if err := i.content.AddLabel(ctx, label); err != nil {
		logger.ErrorContext(ctx, "failed to store label", "document_id", doc.ID, "error", err)
		tally.Fail()
		return
	}
	tally.Succeed()
}

func (i *Ingester) generateQA(ctx context.Context, doc *storage.Document, count int, tally *Tally) {
	if i.qagen == nil {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)

	pairs, err := i.qagen.GenerateQA(ctx, doc.RawText, count)
	if err != nil {
		err = &UpstreamError{Collaborator: "qa generator", Err: err}
		logger.WarnContext(ctx, "skipping qa pairs", "document_id", doc.ID, "error", err)
		return
	}

	for _, pair := range pairs {
		qa := &storage.QAPair{
			DocumentID: doc.ID,
			FolderID:   doc.FolderID,
			Question:   pair.Question,
			Answer:     pair.Answer,
		}
		if err := i.content.AddQA(ctx, qa); err != nil {
			logger.WarnContext(ctx, "failed to store qa pair", "document_id", doc.ID, "error", err)
			tally.Fail()
			continue
		}
		tally.Succeed()
	}
}
