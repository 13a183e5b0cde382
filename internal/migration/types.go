package migration

import (
	"errors"
	"time"

	"ragstore/internal/service"
	"ragstore/internal/storage"
)

// Stage is a step of the migration state machine.
type Stage string

const (
	StageNotStarted           Stage = "not_started"
	StageBackingUp            Stage = "backing_up"
	StageDefaultFolderCreated Stage = "default_folder_created"
	StageDocumentsMigrated    Stage = "documents_migrated"
	StageLabelsMigrated       Stage = "labels_migrated"
	StageQAMigrated           Stage = "qa_migrated"
	StageIndexesBuilt         Stage = "indexes_built"
	StageVerified             Stage = "verified"
	StageDone                 Stage = "done"
	StageFailed               Stage = "failed"
)

// Metadata keys set on the folder a migration creates.
const (
	MetaMigrationCreated = "migration_created"
	MetaMigrationDate    = "migration_date"
)

// ErrAlreadyMigrated is returned when the target already holds a migrated
// folder and the run was not forced.
var ErrAlreadyMigrated = errors.New("target already migrated")

// Options controls a migration run.
type Options struct {
	// Backup writes a snapshot of every legacy collection before anything is changed.
	Backup bool
	// BackupDir receives the snapshot files.
	BackupDir string
	// Force runs even when a previous migration's folder exists. The run then
	// creates a second default folder and duplicates the content.
	Force bool
}

// Counts is the record count of each normalized collection.
type Counts struct {
	Folders   int `json:"folders"`
	Documents int `json:"documents"`
	Labels    int `json:"labels"`
	QAPairs   int `json:"qa_pairs"`
}

// Verification compares legacy and normalized record counts. New counts below
// the legacy ones are expected when records were skipped.
type Verification struct {
	Original        storage.LegacyCounts `json:"original_counts"`
	New             Counts               `json:"new_counts"`
	DefaultFolderID string               `json:"default_folder_id"`
	VerifiedAt      time.Time            `json:"verified_at"`
}

// Report is the outcome of a migration run.
type Report struct {
	Stage           Stage         `json:"stage"`
	DefaultFolderID string        `json:"default_folder_id,omitempty"`
	BackupFiles     []string      `json:"backup_files,omitempty"`
	Documents       service.Tally `json:"documents"`
	Labels          service.Tally `json:"labels"`
	QAPairs         service.Tally `json:"qa_pairs"`
	Indexes         service.Tally `json:"indexes"`
	Verification    *Verification `json:"verification,omitempty"`
	StartedAt       time.Time     `json:"started_at"`
	CompletedAt     time.Time     `json:"completed_at,omitzero"`
	Error           string        `json:"error,omitempty"`
}
