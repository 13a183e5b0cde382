package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Legacy records are read without failing on bad JSON: a stored value that
// does not decode is kept verbatim in Undecoded and the decoded field is left
// empty, so one damaged row cannot stop a read of the whole collection.

// LegacyChunk is a flat content record from the pre-folder schema.
type LegacyChunk struct {
	ID        string         `json:"id"`
	ChunkID   string         `json:"chunk_id,omitempty"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Undecoded string         `json:"undecoded,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// LegacyLabel holds an untyped annotation object keyed by chunk identifier.
// The object conventionally has main_topic, tags and category keys.
type LegacyLabel struct {
	ID        string         `json:"id"`
	ChunkID   string         `json:"chunk_id"`
	Labels    map[string]any `json:"labels"`
	Undecoded string         `json:"undecoded,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// LegacyQA holds an array of question/answer elements keyed by chunk identifier.
// Elements stay raw; each one is checked for being an object when it is migrated.
type LegacyQA struct {
	ID        string            `json:"id"`
	ChunkID   string            `json:"chunk_id"`
	QAPairs   []json.RawMessage `json:"qa_pairs"`
	Undecoded string            `json:"undecoded,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// LegacyCounts is the record count of each legacy collection.
type LegacyCounts struct {
	Chunks int `json:"chunks"`
	Labels int `json:"labels"`
	QA     int `json:"qa"`
}

// LegacySource is the read side of the legacy collections.
type LegacySource interface {
	Chunks(ctx context.Context) ([]*LegacyChunk, error)
	Labels(ctx context.Context) ([]*LegacyLabel, error)
	QARecords(ctx context.Context) ([]*LegacyQA, error)
	Counts(ctx context.Context) (LegacyCounts, error)
}

// LegacyRepo reads and seeds the legacy flat collections.
type LegacyRepo struct {
	db *sql.DB
}

// NewLegacyRepo creates a new LegacyRepo.
func NewLegacyRepo(db *sql.DB) *LegacyRepo {
	return &LegacyRepo{db: db}
}

// Chunks returns every legacy chunk in insertion order.
func (r *LegacyRepo) Chunks(ctx context.Context) ([]*LegacyChunk, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, chunk_id, content, metadata, created_at FROM legacy_chunks ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	chunks := []*LegacyChunk{}
	for rows.Next() {
		var (
			c       LegacyChunk
			meta    string
			created int64
		)
		if err := rows.Scan(&c.ID, &c.ChunkID, &c.Content, &meta, &created); err != nil {
			return nil, fmt.Errorf("failed to scan legacy chunk: %w", err)
		}
		if c.Metadata, err = decodeMetadata(meta); err != nil {
			c.Undecoded = meta
		}
		c.CreatedAt = fromUnix(created)
		chunks = append(chunks, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return chunks, nil
}

// Labels returns every legacy label record in insertion order.
func (r *LegacyRepo) Labels(ctx context.Context) ([]*LegacyLabel, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, chunk_id, labels, created_at FROM legacy_labels ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy labels: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	labels := []*LegacyLabel{}
	for rows.Next() {
		var (
			l       LegacyLabel
			raw     string
			created int64
		)
		if err := rows.Scan(&l.ID, &l.ChunkID, &raw, &created); err != nil {
			return nil, fmt.Errorf("failed to scan legacy label: %w", err)
		}
		if l.Labels, err = decodeMetadata(raw); err != nil {
			l.Undecoded = raw
		}
		l.CreatedAt = fromUnix(created)
		labels = append(labels, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return labels, nil
}

// QARecords returns every legacy QA record in insertion order.
func (r *LegacyRepo) QARecords(ctx context.Context) ([]*LegacyQA, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, chunk_id, qa_pairs, created_at FROM legacy_qa ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy qa: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := []*LegacyQA{}
	for rows.Next() {
		var (
			q       LegacyQA
			raw     string
			created int64
		)
		if err := rows.Scan(&q.ID, &q.ChunkID, &raw, &created); err != nil {
			return nil, fmt.Errorf("failed to scan legacy qa: %w", err)
		}
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &q.QAPairs); err != nil {
				q.QAPairs = nil
				q.Undecoded = raw
			}
		}
		if q.QAPairs == nil {
			q.QAPairs = []json.RawMessage{}
		}
		q.CreatedAt = fromUnix(created)
		records = append(records, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

// Counts returns the size of each legacy collection.
func (r *LegacyRepo) Counts(ctx context.Context) (LegacyCounts, error) {
	var (
		c   LegacyCounts
		err error
	)
	if c.Chunks, err = count(ctx, r.db, "SELECT COUNT(*) FROM legacy_chunks"); err != nil {
		return c, err
	}
	if c.Labels, err = count(ctx, r.db, "SELECT COUNT(*) FROM legacy_labels"); err != nil {
		return c, err
	}
	if c.QA, err = count(ctx, r.db, "SELECT COUNT(*) FROM legacy_qa"); err != nil {
		return c, err
	}
	return c, nil
}

func legacyDefaults(id *string, created *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	if created.IsZero() {
		*created = time.Now().UTC()
	}
}

// InsertChunk stores a legacy chunk.
func (r *LegacyRepo) InsertChunk(ctx context.Context, c *LegacyChunk) error {
	legacyDefaults(&c.ID, &c.CreatedAt)
	meta := c.Undecoded
	if meta == "" {
		var err error
		if meta, err = encodeMetadata(c.Metadata); err != nil {
			return err
		}
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO legacy_chunks (id, chunk_id, content, metadata, created_at) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.ChunkID, c.Content, meta, toUnix(c.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert legacy chunk: %w", err)
	}
	return nil
}

// InsertLabel stores a legacy label record.
func (r *LegacyRepo) InsertLabel(ctx context.Context, l *LegacyLabel) error {
	legacyDefaults(&l.ID, &l.CreatedAt)
	raw := l.Undecoded
	if raw == "" {
		var err error
		if raw, err = encodeMetadata(l.Labels); err != nil {
			return err
		}
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO legacy_labels (id, chunk_id, labels, created_at) VALUES (?, ?, ?, ?)",
		l.ID, l.ChunkID, raw, toUnix(l.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert legacy label: %w", err)
	}
	return nil
}

// InsertQA stores a legacy QA record.
func (r *LegacyRepo) InsertQA(ctx context.Context, q *LegacyQA) error {
	legacyDefaults(&q.ID, &q.CreatedAt)
	raw := q.Undecoded
	if raw == "" {
		pairs := q.QAPairs
		if pairs == nil {
			pairs = []json.RawMessage{}
		}
		encoded, err := json.Marshal(pairs)
		if err != nil {
			return fmt.Errorf("failed to encode legacy qa: %w", err)
		}
		raw = string(encoded)
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO legacy_qa (id, chunk_id, qa_pairs, created_at) VALUES (?, ?, ?, ?)",
		q.ID, q.ChunkID, raw, toUnix(q.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert legacy qa: %w", err)
	}
	return nil
}
