package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragstore/internal/config"
	"ragstore/internal/migration"
)

const snapshotJSON = `{
  "chunks": [
    {"chunk_id": "0", "content": "first chunk"},
    {"chunk_id": "1", "content": "second chunk"}
  ],
  "labels": [
    {"chunk_id": "0", "labels": {"main_topic": "intro", "tags": ["a"]}},
    {"chunk_id": "missing", "labels": {"main_topic": "lost"}}
  ],
  "qa_pairs": [
    {"chunk_id": "1", "qa_pairs": [{"question": "What is it?", "answer": "A chunk."}]}
  ]
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	return &config.Config{
		DBPath:     filepath.Join(dir, "migrate.db"),
		BackupDir:  filepath.Join(dir, "backup"),
		ReportPath: filepath.Join(dir, "report", "migration_result.json"),
	}
}

func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateCLI_SeedRunVerify(t *testing.T) {
	cfg := testConfig(t)

	snapshotPath := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(snapshotPath, []byte(snapshotJSON), 0o644))

	out, err := execute(t, cfg, "seed", snapshotPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Seeded 2 chunks, 2 label records, 1 qa records")

	out, err = execute(t, cfg, "run")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Stage: done")
	assert.Contains(t, out, "Documents: 2/2 migrated")

	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)
	var report migration.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, migration.StageDone, report.Stage)
	assert.Equal(t, 1, report.Labels.Succeeded)
	assert.Equal(t, 1, report.Labels.Skipped)
	assert.Equal(t, 1, report.QAPairs.Succeeded)
	assert.Len(t, report.BackupFiles, 3)

	out, err = execute(t, cfg, "verify")
	require.NoError(t, err, out)
	var verification migration.Verification
	require.NoError(t, json.Unmarshal([]byte(out), &verification))
	assert.Equal(t, 2, verification.Original.Chunks)
	assert.Equal(t, 2, verification.New.Documents)
}

func TestMigrateCLI_RunTwiceNeedsForce(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "run", "--no-backup")
	require.NoError(t, err)

	out, err := execute(t, cfg, "run", "--no-backup")
	require.ErrorIs(t, err, migration.ErrAlreadyMigrated)
	assert.Contains(t, out, "Stage: failed")

	_, err = execute(t, cfg, "run", "--no-backup", "--force")
	require.NoError(t, err)
}

func TestMigrateCLI_SeedMissingFile(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "seed", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
