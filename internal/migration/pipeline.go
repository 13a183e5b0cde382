package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"ragstore/internal/contextutil"
	"ragstore/internal/service"
	"ragstore/internal/storage"
)

// Pipeline moves the legacy flat collections into the folder-scoped schema.
// Records are processed one at a time; a failed record is logged, counted and
// skipped. Completed stages are not rolled back when a later stage fails.
type Pipeline struct {
	db      *sql.DB
	legacy  storage.LegacySource
	folders *storage.FolderRepo
	docs    *storage.DocumentRepo
	labels  *storage.LabelRepo
	qa      *storage.QARepo
	now     func() time.Time

	mu    sync.Mutex
	stage Stage
}

// NewPipeline creates a pipeline reading legacy records from and writing
// normalized records to db.
func NewPipeline(db *sql.DB) *Pipeline {
	return &Pipeline{
		db:      db,
		legacy:  storage.NewLegacyRepo(db),
		folders: storage.NewFolderRepo(db),
		docs:    storage.NewDocumentRepo(db),
		labels:  storage.NewLabelRepo(db),
		qa:      storage.NewQARepo(db),
		now:     time.Now,
		stage:   StageNotStarted,
	}
}

// Stage returns the stage the pipeline last reached.
func (p *Pipeline) Stage() Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage
}

func (p *Pipeline) setStage(ctx context.Context, s Stage) {
	p.mu.Lock()
	p.stage = s
	p.mu.Unlock()
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "migration stage", "stage", s)
}

// Run executes every stage in order. The returned report is never nil; on
// failure it holds the stage reached and the counts so far.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Report, error) {
	logger := contextutil.LoggerFromContext(ctx)
	report := &Report{Stage: StageNotStarted, StartedAt: p.now().UTC()}

	fail := func(err error) (*Report, error) {
		p.setStage(ctx, StageFailed)
		report.Stage = StageFailed
		report.Error = err.Error()
		logger.ErrorContext(ctx, "migration failed", "error", err)
		return report, err
	}

	if err := p.checkNotMigrated(ctx, opts.Force); err != nil {
		return fail(err)
	}

	if opts.Backup {
		p.setStage(ctx, StageBackingUp)
		files, err := p.backup(ctx, opts.BackupDir)
		if err != nil {
			return fail(fmt.Errorf("backup failed: %w", err))
		}
		report.BackupFiles = files
	}

	folderID, err := p.createDefaultFolder(ctx)
	if err != nil {
		return fail(err)
	}
	report.DefaultFolderID = folderID
	p.setStage(ctx, StageDefaultFolderCreated)

	chunkMap, err := p.migrateDocuments(ctx, folderID, &report.Documents)
	if err != nil {
		return fail(err)
	}
	p.setStage(ctx, StageDocumentsMigrated)

	if err := p.migrateLabels(ctx, chunkMap, &report.Labels); err != nil {
		return fail(err)
	}
	p.setStage(ctx, StageLabelsMigrated)

	if err := p.migrateQA(ctx, chunkMap, &report.QAPairs); err != nil {
		return fail(err)
	}
	p.setStage(ctx, StageQAMigrated)

	p.buildIndexes(ctx, &report.Indexes)
	p.setStage(ctx, StageIndexesBuilt)

	verification, err := p.Verify(ctx)
	if err != nil {
		return fail(err)
	}
	verification.DefaultFolderID = folderID
	report.Verification = verification
	p.setStage(ctx, StageVerified)

	report.CompletedAt = p.now().UTC()
	report.Stage = StageDone
	p.setStage(ctx, StageDone)

	logger.InfoContext(ctx, "migration completed",
		"default_folder_id", folderID,
		"documents", report.Documents,
		"labels", report.Labels,
		"qa_pairs", report.QAPairs,
		"indexes", report.Indexes,
	)
	return report, nil
}

func (p *Pipeline) checkNotMigrated(ctx context.Context, force bool) error {
	existing, err := p.folders.FindFlagged(ctx, MetaMigrationCreated)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check for previous migration: %w", err)
	}
	if !force {
		return fmt.Errorf("%w: folder %s", ErrAlreadyMigrated, existing.ID)
	}
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "forcing migration over existing migrated folder", "folder_id", existing.ID)
	return nil
}

func (p *Pipeline) createDefaultFolder(ctx context.Context) (string, error) {
	folder := &storage.Folder{
		Title:       service.DefaultFolderTitle,
		Description: "Container folder created by migration",
		FolderType:  "general",
		Metadata: map[string]any{
			MetaMigrationCreated:      true,
			MetaMigrationDate:         p.now().UTC().Format(time.RFC3339),
			service.DefaultFolderFlag: true,
		},
	}
	if err := p.folders.Create(ctx, folder); err != nil {
		return "", fmt.Errorf("failed to create default folder: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "default folder created", "folder_id", folder.ID)
	return folder.ID, nil
}

// migrateDocuments copies every legacy chunk into folderID and returns the map
// from chunk identifier to new document ID.
func (p *Pipeline) migrateDocuments(ctx context.Context, folderID string, tally *service.Tally) (map[string]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chunks, err := p.legacy.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy chunks: %w", err)
	}
	logger.InfoContext(ctx, "migrating chunks", "count", len(chunks))

	chunkMap := make(map[string]string, len(chunks))
	for n, chunk := range chunks {
		if chunk.Undecoded != "" {
			skipUndecodable(ctx, tally, "chunk metadata", chunk.ID, chunk.ChunkID)
			continue
		}

		key := chunk.ChunkID
		if key == "" {
			key = fmt.Sprintf("chunk_%d", n)
		}

		meta := maps.Clone(chunk.Metadata)
		if meta == nil {
			meta = map[string]any{}
		}
		meta[service.MetaOriginalChunkID] = key
		meta[service.MetaMigratedFrom] = "chunks"

		doc := &storage.Document{
			FolderID:    folderID,
			SequenceKey: storage.ParseSequenceKey(key),
			RawText:     chunk.Content,
			Metadata:    meta,
			CreatedAt:   chunk.CreatedAt,
		}
		if err := p.docs.Insert(ctx, doc); err != nil {
			logger.ErrorContext(ctx, "failed to migrate chunk", "legacy_id", chunk.ID, "chunk_id", key, "error", err)
			tally.Fail()
			continue
		}
		tally.Succeed()

		if chunk.ChunkID == "" {
			continue
		}
		if _, dup := chunkMap[chunk.ChunkID]; dup {
			logger.WarnContext(ctx, "duplicate chunk id, annotations attach to the last one", "chunk_id", chunk.ChunkID)
		}
		chunkMap[chunk.ChunkID] = doc.ID
	}

	logger.InfoContext(ctx, "chunks migrated", "tally", *tally)
	return chunkMap, nil
}

func (p *Pipeline) migrateLabels(ctx context.Context, chunkMap map[string]string, tally *service.Tally) error {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := p.legacy.Labels(ctx)
	if err != nil {
		return fmt.Errorf("failed to read legacy labels: %w", err)
	}
	logger.InfoContext(ctx, "migrating labels", "count", len(records))

	for _, record := range records {
		if record.Undecoded != "" {
			skipUndecodable(ctx, tally, "label object", record.ID, record.ChunkID)
			continue
		}

		docID, ok := chunkMap[record.ChunkID]
		if !ok {
			logger.WarnContext(ctx, "no document for label", "legacy_id", record.ID, "chunk_id", record.ChunkID)
			tally.Skip()
			continue
		}

		label := flattenLabel(record)
		label.DocumentID = docID
		if err := p.labels.Insert(ctx, label); err != nil {
			logger.ErrorContext(ctx, "failed to migrate label", "legacy_id", record.ID, "chunk_id", record.ChunkID, "error", err)
			countFailure(tally, err)
			continue
		}
		tally.Succeed()
	}

	logger.InfoContext(ctx, "labels migrated", "tally", *tally)
	return nil
}

// flattenLabel maps the untyped legacy annotation object onto a Label.
func flattenLabel(record *storage.LegacyLabel) *storage.Label {
	label := &storage.Label{
		Topic:      stringField(record.Labels, "main_topic"),
		Category:   stringField(record.Labels, "category"),
		Tags:       []string{},
		Confidence: storage.DefaultConfidence,
		CreatedAt:  record.CreatedAt,
	}
	if label.Topic == "" {
		label.Topic = "unknown"
	}
	if raw, ok := record.Labels["tags"].([]any); ok {
		for _, t := range raw {
			if s, ok := t.(string); ok && s != "" {
				label.Tags = append(label.Tags, s)
			}
		}
	}
	return label
}

func (p *Pipeline) migrateQA(ctx context.Context, chunkMap map[string]string, tally *service.Tally) error {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := p.legacy.QARecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to read legacy qa records: %w", err)
	}
	logger.InfoContext(ctx, "migrating qa records", "count", len(records))

	for _, record := range records {
		if record.Undecoded != "" {
			skipUndecodable(ctx, tally, "qa array", record.ID, record.ChunkID)
			continue
		}

		docID, ok := chunkMap[record.ChunkID]
		if !ok {
			logger.WarnContext(ctx, "no document for qa record", "legacy_id", record.ID, "chunk_id", record.ChunkID, "pairs", len(record.QAPairs))
			for range record.QAPairs {
				tally.Skip()
			}
			continue
		}

		for i, raw := range record.QAPairs {
			var element map[string]any
			if err := json.Unmarshal(raw, &element); err != nil {
				err := &storage.ValidationError{Field: "qa_pairs", Message: "element is not an object"}
				logger.WarnContext(ctx, "skipping malformed qa element", "legacy_id", record.ID, "index", i, "error", err)
				tally.Skip()
				continue
			}

			question := stringField(element, "question")
			answer := stringField(element, "answer")
			if question == "" || answer == "" {
				err := &storage.ValidationError{Field: "qa_pairs", Message: "element needs a question and an answer"}
				logger.WarnContext(ctx, "skipping malformed qa element", "legacy_id", record.ID, "index", i, "error", err)
				tally.Skip()
				continue
			}

			qa := &storage.QAPair{
				DocumentID:   docID,
				Question:     question,
				Answer:       answer,
				QuestionType: storage.ClassifyQuestion(question),
				Difficulty:   storage.DifficultyMedium,
				CreatedAt:    record.CreatedAt,
			}
			if err := p.qa.Insert(ctx, qa); err != nil {
				logger.ErrorContext(ctx, "failed to migrate qa pair", "legacy_id", record.ID, "index", i, "error", err)
				countFailure(tally, err)
				continue
			}
			tally.Succeed()
		}
	}

	logger.InfoContext(ctx, "qa pairs migrated", "tally", *tally)
	return nil
}

func (p *Pipeline) buildIndexes(ctx context.Context, tally *service.Tally) {
	logger := contextutil.LoggerFromContext(ctx)

	for _, spec := range storage.IndexSpecs() {
		if err := storage.CreateIndex(ctx, p.db, spec); err != nil {
			logger.ErrorContext(ctx, "failed to create index", "collection", spec.Collection, "index", spec.Name, "error", err)
			tally.Fail()
			continue
		}
		tally.Succeed()
	}
	logger.InfoContext(ctx, "indexes built", "tally", *tally)
}

// Verify counts legacy and normalized records. DefaultFolderID is the folder
// a previous migration created, if any.
func (p *Pipeline) Verify(ctx context.Context) (*Verification, error) {
	original, err := p.legacy.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count legacy records: %w", err)
	}

	var counts Counts
	counters := []struct {
		dst *int
		fn  func(context.Context) (int, error)
	}{
		{&counts.Folders, p.folders.Count},
		{&counts.Documents, p.docs.Count},
		{&counts.Labels, p.labels.Count},
		{&counts.QAPairs, p.qa.Count},
	}
	for _, c := range counters {
		if *c.dst, err = c.fn(ctx); err != nil {
			return nil, fmt.Errorf("failed to count records: %w", err)
		}
	}

	v := &Verification{Original: original, New: counts, VerifiedAt: p.now().UTC()}
	if folder, err := p.folders.FindFlagged(ctx, MetaMigrationCreated); err == nil {
		v.DefaultFolderID = folder.ID
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "migration verified",
		"legacy_chunks", original.Chunks, "documents", counts.Documents,
		"legacy_labels", original.Labels, "labels", counts.Labels,
		"legacy_qa_records", original.QA, "qa_pairs", counts.QAPairs,
		"folders", counts.Folders,
	)
	return v, nil
}

// skipUndecodable logs and counts a legacy record whose stored JSON could not be decoded.
func skipUndecodable(ctx context.Context, tally *service.Tally, what, legacyID, chunkID string) {
	err := &storage.ValidationError{Field: what, Message: "stored value is not valid JSON of the expected shape"}
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "skipping undecodable legacy record",
		"legacy_id", legacyID, "chunk_id", chunkID, "error", err)
	tally.Skip()
}

// countFailure counts malformed input as skipped and anything else as failed.
func countFailure(tally *service.Tally, err error) {
	if errors.Is(err, storage.ErrValidation) {
		tally.Skip()
		return
	}
	tally.Fail()
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
