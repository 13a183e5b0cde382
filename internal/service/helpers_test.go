package service

import (
	"context"
	"path/filepath"
	"testing"

	"ragstore/internal/storage"
	"ragstore/internal/vectorstore"

	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) Repos {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, storage.Migrate(db))

	return Repos{
		Folders:   storage.NewFolderRepo(db),
		Documents: storage.NewDocumentRepo(db),
		Labels:    storage.NewLabelRepo(db),
		QA:        storage.NewQARepo(db),
	}
}

func newContent(repos Repos, mirror vectorstore.VectorStore) *ContentService {
	return NewContentService(repos, NewDefaultFolderResolver(repos.Folders), mirror)
}

func createFolder(t *testing.T, repos Repos, title, parentID string) *storage.Folder {
	t.Helper()

	folder := &storage.Folder{Title: title, ParentID: parentID}
	require.NoError(t, repos.Folders.Create(context.Background(), folder))
	return folder
}
