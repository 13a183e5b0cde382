package service

import (
	"context"
	"maps"

	"ragstore/internal/storage"
)

// Metadata keys written by the migration and read back by the chunk view.
const (
	MetaOriginalChunkID = "original_chunk_id"
	MetaMigratedFrom    = "migrated_from"
)

// ToLegacyChunk presents a document in the flat chunk shape older clients read.
// The chunk ID is the original chunk identifier when the document was migrated,
// and the sequence key otherwise.
func ToLegacyChunk(doc *storage.Document) *storage.LegacyChunk {
	chunkID := doc.SequenceKey.String()
	if original, ok := doc.Metadata[MetaOriginalChunkID].(string); ok && original != "" {
		chunkID = original
	}

	meta := maps.Clone(doc.Metadata)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["folder_id"] = doc.FolderID

	return &storage.LegacyChunk{
		ID:        doc.ID,
		ChunkID:   chunkID,
		Content:   doc.RawText,
		Metadata:  meta,
		CreatedAt: doc.CreatedAt,
	}
}

// LegacyChunks lists a folder's documents as chunks.
func (s *ContentService) LegacyChunks(ctx context.Context, folderID string, limit int) ([]*storage.LegacyChunk, error) {
	docs, err := s.ListDocuments(ctx, folderID, limit)
	if err != nil {
		return nil, err
	}
	chunks := make([]*storage.LegacyChunk, 0, len(docs))
	for _, doc := range docs {
		chunks = append(chunks, ToLegacyChunk(doc))
	}
	return chunks, nil
}
