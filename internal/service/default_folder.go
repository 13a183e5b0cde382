package service

import (
	"context"
	"errors"
	"sync"

	"ragstore/internal/contextutil"
	"ragstore/internal/storage"
)

const (
	// DefaultFolderFlag is the metadata key marking the default folder.
	DefaultFolderFlag = "default_folder"
	// DefaultFolderTitle is the title given to a newly created default folder.
	DefaultFolderTitle = "Default Folder"
)

// DefaultFolderResolver finds or creates the folder that receives documents
// submitted without a folder.
type DefaultFolderResolver struct {
	folders storage.FolderStore
	mu      sync.Mutex
}

// NewDefaultFolderResolver creates a resolver over folders.
func NewDefaultFolderResolver(folders storage.FolderStore) *DefaultFolderResolver {
	return &DefaultFolderResolver{folders: folders}
}

// Resolve returns the default folder's ID, creating the folder on first use.
// Calls are serialized, so concurrent first calls in one process create a single folder.
func (r *DefaultFolderResolver) Resolve(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	folder, err := r.folders.FindFlagged(ctx, DefaultFolderFlag)
	if err == nil {
		return folder.ID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", WrapError(err, "failed to look up default folder")
	}

	folder = &storage.Folder{
		Title:       DefaultFolderTitle,
		Description: "Documents submitted without a folder",
		FolderType:  "general",
		Metadata:    map[string]any{DefaultFolderFlag: true},
	}
	if err := r.folders.Create(ctx, folder); err != nil {
		return "", WrapError(err, "failed to create default folder")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "created default folder", "folder_id", folder.ID)
	return folder.ID, nil
}
