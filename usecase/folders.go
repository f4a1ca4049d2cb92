package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"linkstash/model"
	"linkstash/repository"
	"linkstash/utils"
)

// FolderService implements the folder store. Folder deletion never
// silently destroys items: the caller either moves them to root or
// accepts them being soft-deleted, and must say which.
type FolderService struct {
	FolderRepo repository.FolderRepository
	ItemRepo   repository.ItemRepository
}

// FolderList splits a user's folders into pinned and the rest, both
// ordered by most recent update.
type FolderList struct {
	Pinned []*model.Folder `json:"pinned"`
	Recent []*model.Folder `json:"recent"`
}

// FolderUpdate carries a partial update. Nil fields stay unchanged.
type FolderUpdate struct {
	Name       *string
	IsPinned   *bool
	IsArchived *bool
}

func (svc *FolderService) CreateFolder(ctx context.Context, userID, name string, isPinned bool) (*model.Folder, error) {
	if userID == "" {
		return nil, model.NewValidationError("user ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("folder name is required")
	}

	now := time.Now()
	folder := &model.Folder{
		ID:        utils.GenerateID(),
		UserID:    userID,
		Name:      name,
		IsPinned:  isPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.FolderRepo.InsertFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// ListFolders returns the user's non-archived folders grouped into
// pinned and recent, each annotated with its live item count.
func (svc *FolderService) ListFolders(ctx context.Context, userID string) (*FolderList, error) {
	if userID == "" {
		return nil, model.NewValidationError("user ID is required")
	}

	folders, err := svc.FolderRepo.FindFolders(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	for _, folder := range folders {
		count, err := svc.ItemRepo.CountFolderItems(ctx, userID, folder.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count folder items: %w", err)
		}
		folder.ItemCount = count
	}

	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].UpdatedAt.After(folders[j].UpdatedAt)
	})

	list := &FolderList{
		Pinned: []*model.Folder{},
		Recent: []*model.Folder{},
	}
	for _, folder := range folders {
		if folder.IsPinned {
			list.Pinned = append(list.Pinned, folder)
		} else {
			list.Recent = append(list.Recent, folder)
		}
	}
	return list, nil
}

func (svc *FolderService) GetFolder(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	folder, err := svc.FolderRepo.GetFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	count, err := svc.ItemRepo.CountFolderItems(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to count folder items: %w", err)
	}
	folder.ItemCount = count
	return folder, nil
}

// TogglePin flips the pinned flag.
func (svc *FolderService) TogglePin(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	folder, err := svc.FolderRepo.GetFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	folder.IsPinned = !folder.IsPinned
	folder.UpdatedAt = time.Now()

	if err := svc.FolderRepo.UpdateFolder(ctx, userID, folderID, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (svc *FolderService) UpdateFolder(ctx context.Context, userID, folderID string, update FolderUpdate) (*model.Folder, error) {
	folder, err := svc.FolderRepo.GetFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, model.NewValidationError("folder name cannot be empty")
		}
		folder.Name = name
	}
	if update.IsPinned != nil {
		folder.IsPinned = *update.IsPinned
	}
	if update.IsArchived != nil {
		folder.IsArchived = *update.IsArchived
	}
	folder.UpdatedAt = time.Now()

	if err := svc.FolderRepo.UpdateFolder(ctx, userID, folderID, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder removes a folder. When the folder still holds
// non-trashed items the caller must pass a policy: nil fails with
// ConflictError carrying the item count, true moves the items to
// root, false soft-deletes them into trash. Contained items are never
// hard-deleted here.
func (svc *FolderService) DeleteFolder(ctx context.Context, userID, folderID string, moveItemsToRoot *bool) error {
	if _, err := svc.FolderRepo.GetFolder(ctx, userID, folderID); err != nil {
		return err
	}

	count, err := svc.ItemRepo.CountFolderItems(ctx, userID, folderID)
	if err != nil {
		return fmt.Errorf("failed to count folder items: %w", err)
	}

	if count > 0 && moveItemsToRoot == nil {
		return model.NewConflictError(count,
			"folder contains %d items; pass move_items to move them to root or trash them", count)
	}

	if moveItemsToRoot != nil {
		if *moveItemsToRoot {
			if err := svc.ItemRepo.MoveFolderItemsToRoot(ctx, userID, folderID); err != nil {
				return fmt.Errorf("failed to move folder items: %w", err)
			}
		} else {
			if err := svc.ItemRepo.TrashFolderItems(ctx, userID, folderID, time.Now()); err != nil {
				return fmt.Errorf("failed to trash folder items: %w", err)
			}
		}
	}

	return svc.FolderRepo.DeleteFolder(ctx, userID, folderID)
}
