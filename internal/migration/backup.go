package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ragstore/internal/contextutil"
	"ragstore/internal/storage"
)

const backupTimeLayout = "20060102_150405"

// Legacy collection names as they appear in backup file names and snapshots.
const (
	CollectionChunks  = "chunks"
	CollectionLabels  = "labels"
	CollectionQAPairs = "qa_pairs"
)

// BackupFileName returns the snapshot file name for collection at the run timestamp.
func BackupFileName(collection, stamp string) string {
	return fmt.Sprintf("%s_backup_%s.json", collection, stamp)
}

// backup writes one JSON file per legacy collection into dir and returns their paths.
func (p *Pipeline) backup(ctx context.Context, dir string) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if dir == "" {
		return nil, fmt.Errorf("backup directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	chunks, err := p.legacy.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy chunks: %w", err)
	}
	labels, err := p.legacy.Labels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy labels: %w", err)
	}
	records, err := p.legacy.QARecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy qa records: %w", err)
	}

	stamp := p.now().Format(backupTimeLayout)
	collections := []struct {
		name  string
		data  any
		count int
	}{
		{CollectionChunks, chunks, len(chunks)},
		{CollectionLabels, labels, len(labels)},
		{CollectionQAPairs, records, len(records)},
	}

	files := make([]string, 0, len(collections))
	for _, c := range collections {
		path := filepath.Join(dir, BackupFileName(c.name, stamp))
		if err := writeJSON(path, c.data); err != nil {
			return files, fmt.Errorf("failed to back up %s: %w", c.name, err)
		}
		logger.InfoContext(ctx, "collection backed up", "collection", c.name, "path", path, "records", c.count)
		files = append(files, path)
	}
	return files, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteReport writes report as indented JSON, creating the parent directory.
func WriteReport(path string, report *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := writeJSON(path, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Snapshot holds legacy collections in the same shape as the backup files.
type Snapshot struct {
	Chunks  []*storage.LegacyChunk `json:"chunks"`
	Labels  []*storage.LegacyLabel `json:"labels"`
	QAPairs []*storage.LegacyQA    `json:"qa_pairs"`
}

// ReadSnapshot decodes a snapshot document.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// LegacyWriter loads records into the legacy collections.
type LegacyWriter interface {
	InsertChunk(ctx context.Context, c *storage.LegacyChunk) error
	InsertLabel(ctx context.Context, l *storage.LegacyLabel) error
	InsertQA(ctx context.Context, q *storage.LegacyQA) error
}

// Seed loads a snapshot into the legacy collections. It stops at the first failed write.
func Seed(ctx context.Context, w LegacyWriter, snap *Snapshot) (storage.LegacyCounts, error) {
	var counts storage.LegacyCounts
	for _, c := range snap.Chunks {
		if err := w.InsertChunk(ctx, c); err != nil {
			return counts, fmt.Errorf("failed to seed chunk %q: %w", c.ChunkID, err)
		}
		counts.Chunks++
	}
	for _, l := range snap.Labels {
		if err := w.InsertLabel(ctx, l); err != nil {
			return counts, fmt.Errorf("failed to seed label for chunk %q: %w", l.ChunkID, err)
		}
		counts.Labels++
	}
	for _, q := range snap.QAPairs {
		if err := w.InsertQA(ctx, q); err != nil {
			return counts, fmt.Errorf("failed to seed qa record for chunk %q: %w", q.ChunkID, err)
		}
		counts.QA++
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "legacy snapshot seeded",
		"chunks", counts.Chunks, "labels", counts.Labels, "qa_records", counts.QA)
	return counts, nil
}
