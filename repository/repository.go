package repository

import (
	"context"
	"time"

	"linkstash/model"
)

// ItemFilter narrows FindItems. Zero value means "everything the
// default list shows": no trash, no archived, all types and folders.
type ItemFilter struct {
	Type     *model.ItemType
	Category *model.Category
	FolderID *string

	IncludeTrash    bool
	IncludeArchived bool

	// TrashOnly restricts results to trashed items (the trash view).
	TrashOnly bool
	// StarredOnly restricts results to starred items.
	StarredOnly bool

	// SearchText is matched case-insensitively as a substring against
	// title, content and description.
	SearchText string
}

// ItemRepository is the persistence surface for items. Implementations
// report missing records as NotFoundError and backend failures as
// StorageError; they never paginate or order beyond what the backend
// gives naturally, that is the caller's job.
type ItemRepository interface {
	InsertItem(ctx context.Context, item *model.Item) error
	FindItems(ctx context.Context, userID string, filter ItemFilter) ([]*model.Item, error)
	GetItem(ctx context.Context, userID, itemID string) (*model.Item, error)
	UpdateItem(ctx context.Context, userID, itemID string, item *model.Item) error
	DeleteItem(ctx context.Context, userID, itemID string) error

	// DeleteTrash removes every trashed item of the user and returns
	// how many were removed.
	DeleteTrash(ctx context.Context, userID string) (int, error)

	// CountFolderItems counts non-trashed items filed under a folder.
	CountFolderItems(ctx context.Context, userID, folderID string) (int, error)

	// MoveFolderItemsToRoot clears folder_id on every item filed under
	// the folder.
	MoveFolderItemsToRoot(ctx context.Context, userID, folderID string) error

	// TrashFolderItems soft-deletes every non-trashed item filed under
	// the folder, stamping deletedAt with now.
	TrashFolderItems(ctx context.Context, userID, folderID string, now time.Time) error
}

type FolderRepository interface {
	InsertFolder(ctx context.Context, folder *model.Folder) error
	FindFolders(ctx context.Context, userID string, includeArchived bool) ([]*model.Folder, error)
	GetFolder(ctx context.Context, userID, folderID string) (*model.Folder, error)
	UpdateFolder(ctx context.Context, userID, folderID string, folder *model.Folder) error
	DeleteFolder(ctx context.Context, userID, folderID string) error
}

type UserRepository interface {
	InsertUser(ctx context.Context, user *model.User) error
	// FindUserByEmail returns (nil, nil) when no user matches.
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}
