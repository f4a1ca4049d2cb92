package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"linkstash/model"
	"linkstash/repository"
	"linkstash/services"
	"linkstash/utils"
)

// ItemService implements the item store: CRUD, star/archive flags and
// the trash lifecycle (soft delete, restore, purge, empty).
type ItemService struct {
	ItemRepo   repository.ItemRepository
	FolderRepo repository.FolderRepository

	// Cache, when set, serves category counts and is invalidated on
	// every item mutation. Cache failures degrade to repository reads.
	Cache *services.QueryCache
}

// ItemListOptions filters and paginates ListItems. Trash and archived
// items are excluded unless explicitly included.
type ItemListOptions struct {
	Type            string
	Category        string
	FolderID        *string
	IncludeTrash    bool
	IncludeArchived bool
	SearchText      string
	Page            int
	Limit           int
}

// ItemUpdate carries a partial update. Nil fields stay unchanged.
// ClearFolder moves the item to root regardless of FolderID.
type ItemUpdate struct {
	Title       *string
	Content     *string
	Description *string
	FolderID    *string
	ClearFolder bool
	IsStarred   *bool
	IsArchived  *bool
	IsTrash     *bool
	Metadata    *model.ItemMetadata
}

const (
	defaultPage  = 1
	defaultLimit = 20
	maxTitleLen  = 200
)

func (svc *ItemService) validateNewItem(item *model.Item) error {
	item.Title = strings.TrimSpace(item.Title)
	if len(item.Title) > maxTitleLen {
		return model.NewValidationError("title exceeds maximum length")
	}

	if strings.TrimSpace(item.Content) == "" {
		return model.NewValidationError("content is required")
	}

	if !model.ValidItemType(item.Type) {
		return model.NewValidationError("invalid item type %q", item.Type)
	}

	expected, _ := model.CategoryFor(item.Type)
	if item.Category == "" {
		item.Category = expected
	} else if item.Category != expected {
		return model.NewValidationError("category %q does not match type %q", item.Category, item.Type)
	}

	return nil
}

// resolveFolder treats a reference to a missing or foreign folder as
// unfiled rather than failing the save.
func (svc *ItemService) resolveFolder(ctx context.Context, userID string, folderID *string) *string {
	if folderID == nil || *folderID == "" {
		return nil
	}
	if _, err := svc.FolderRepo.GetFolder(ctx, userID, *folderID); err != nil {
		return nil
	}
	return folderID
}

// CreateItem validates and stores a new item. All flags start false
// and both timestamps are set to now.
func (svc *ItemService) CreateItem(ctx context.Context, item *model.Item) error {
	if item.UserID == "" {
		return model.NewValidationError("user ID is required")
	}
	if err := svc.validateNewItem(item); err != nil {
		return err
	}

	item.ID = utils.GenerateID()
	item.FolderID = svc.resolveFolder(ctx, item.UserID, item.FolderID)
	item.IsStarred = false
	item.IsArchived = false
	item.IsTrash = false
	item.DeletedAt = nil

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := svc.ItemRepo.InsertItem(ctx, item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	svc.invalidateCounts(ctx, item.UserID)
	return nil
}

// sortItemsByCreated orders newest first. sort.SliceStable keeps the
// backend's insertion order for equal timestamps.
func sortItemsByCreated(items []*model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func paginate(items []*model.Item, page, limit int) []*model.Item {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []*model.Item{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ListItems returns one page of the user's items plus the total match
// count before pagination.
func (svc *ItemService) ListItems(ctx context.Context, userID string, opts ItemListOptions) ([]*model.Item, int, error) {
	if userID == "" {
		return nil, 0, model.NewValidationError("user ID is required")
	}

	filter := repository.ItemFilter{
		IncludeTrash:    opts.IncludeTrash,
		IncludeArchived: opts.IncludeArchived,
		FolderID:        opts.FolderID,
		SearchText:      opts.SearchText,
	}
	if opts.Type != "" {
		t := model.ItemType(opts.Type)
		if !model.ValidItemType(t) {
			return nil, 0, model.NewValidationError("invalid item type %q", opts.Type)
		}
		filter.Type = &t
	}
	if opts.Category != "" {
		c := model.Category(opts.Category)
		if _, ok := categoryValid(c); !ok {
			return nil, 0, model.NewValidationError("invalid category %q", opts.Category)
		}
		filter.Category = &c
	}

	items, err := svc.ItemRepo.FindItems(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	sortItemsByCreated(items)
	total := len(items)
	return paginate(items, opts.Page, opts.Limit), total, nil
}

func categoryValid(c model.Category) (model.Category, bool) {
	for _, known := range model.AllCategories {
		if c == known {
			return c, true
		}
	}
	return c, false
}

func (svc *ItemService) GetItem(ctx context.Context, userID, itemID string) (*model.Item, error) {
	return svc.ItemRepo.GetItem(ctx, userID, itemID)
}

// UpdateItem applies a partial update. Trashing stamps DeletedAt,
// untrashing clears it; the IsTrash/DeletedAt invariant holds after
// every path through here.
func (svc *ItemService) UpdateItem(ctx context.Context, userID, itemID string, update ItemUpdate) (*model.Item, error) {
	item, err := svc.ItemRepo.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if len(title) > maxTitleLen {
			return nil, model.NewValidationError("title exceeds maximum length")
		}
		item.Title = title
	}
	if update.Content != nil {
		if strings.TrimSpace(*update.Content) == "" {
			return nil, model.NewValidationError("content cannot be empty")
		}
		item.Content = *update.Content
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.ClearFolder {
		item.FolderID = nil
	} else if update.FolderID != nil {
		item.FolderID = svc.resolveFolder(ctx, userID, update.FolderID)
	}
	if update.IsStarred != nil {
		item.IsStarred = *update.IsStarred
	}
	if update.IsArchived != nil {
		item.IsArchived = *update.IsArchived
	}
	if update.Metadata != nil {
		item.Metadata = update.Metadata
	}
	if update.IsTrash != nil {
		item.IsTrash = *update.IsTrash
		if item.IsTrash {
			deletedAt := time.Now()
			item.DeletedAt = &deletedAt
		} else {
			item.DeletedAt = nil
		}
	}

	item.UpdatedAt = time.Now()

	if err := svc.ItemRepo.UpdateItem(ctx, userID, itemID, item); err != nil {
		return nil, err
	}
	svc.invalidateCounts(ctx, userID)
	return item, nil
}

// SoftDeleteItem moves an item to trash.
func (svc *ItemService) SoftDeleteItem(ctx context.Context, userID, itemID string) error {
	trash := true
	_, err := svc.UpdateItem(ctx, userID, itemID, ItemUpdate{IsTrash: &trash})
	return err
}

// RestoreItem brings a trashed item back. Items not in trash report
// NotFoundError, matching the "not found in trash" behavior.
func (svc *ItemService) RestoreItem(ctx context.Context, userID, itemID string) (*model.Item, error) {
	item, err := svc.ItemRepo.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsTrash {
		return nil, model.NewNotFoundError("item not found in trash")
	}

	trash := false
	return svc.UpdateItem(ctx, userID, itemID, ItemUpdate{IsTrash: &trash})
}

// PurgeItem permanently removes an item regardless of trash state.
func (svc *ItemService) PurgeItem(ctx context.Context, userID, itemID string) error {
	if err := svc.ItemRepo.DeleteItem(ctx, userID, itemID); err != nil {
		return err
	}
	svc.invalidateCounts(ctx, userID)
	return nil
}

// EmptyTrash purges every trashed item of the user and returns the
// number removed.
func (svc *ItemService) EmptyTrash(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, model.NewValidationError("user ID is required")
	}
	count, err := svc.ItemRepo.DeleteTrash(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to empty trash: %w", err)
	}
	if count > 0 {
		svc.invalidateCounts(ctx, userID)
	}
	return count, nil
}

// ToggleStar flips the starred flag.
func (svc *ItemService) ToggleStar(ctx context.Context, userID, itemID string) (*model.Item, error) {
	item, err := svc.ItemRepo.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	starred := !item.IsStarred
	return svc.UpdateItem(ctx, userID, itemID, ItemUpdate{IsStarred: &starred})
}

// SetArchived archives or unarchives an item.
func (svc *ItemService) SetArchived(ctx context.Context, userID, itemID string, archived bool) (*model.Item, error) {
	return svc.UpdateItem(ctx, userID, itemID, ItemUpdate{IsArchived: &archived})
}

// RecentItems returns the newest non-trash, non-archived items.
func (svc *ItemService) RecentItems(ctx context.Context, userID string, limit int) ([]*model.Item, error) {
	items, err := svc.ItemRepo.FindItems(ctx, userID, repository.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent items: %w", err)
	}
	sortItemsByCreated(items)
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// StarredItems returns starred items, most recently updated first.
func (svc *ItemService) StarredItems(ctx context.Context, userID string) ([]*model.Item, error) {
	items, err := svc.ItemRepo.FindItems(ctx, userID, repository.ItemFilter{StarredOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get starred items: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

// TrashItems returns the trash view, most recently deleted first.
func (svc *ItemService) TrashItems(ctx context.Context, userID string) ([]*model.Item, error) {
	items, err := svc.ItemRepo.FindItems(ctx, userID, repository.ItemFilter{TrashOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get trash: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DeletedAt, items[j].DeletedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
	return items, nil
}

// CategoryCounts counts non-trash, non-archived items per category.
// Every fixed category appears, zero counts included.
func (svc *ItemService) CategoryCounts(ctx context.Context, userID string) (map[model.Category]int, error) {
	if userID == "" {
		return nil, model.NewValidationError("user ID is required")
	}

	if svc.Cache != nil {
		if counts, ok := svc.Cache.GetCategoryCounts(ctx, userID); ok {
			return counts, nil
		}
	}

	items, err := svc.ItemRepo.FindItems(ctx, userID, repository.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	counts := make(map[model.Category]int, len(model.AllCategories))
	for _, category := range model.AllCategories {
		counts[category] = 0
	}
	for _, item := range items {
		counts[item.Category]++
	}

	if svc.Cache != nil {
		svc.Cache.SetCategoryCounts(ctx, userID, counts)
	}
	return counts, nil
}

func (svc *ItemService) invalidateCounts(ctx context.Context, userID string) {
	if svc.Cache != nil {
		svc.Cache.InvalidateCategoryCounts(ctx, userID)
	}
}
