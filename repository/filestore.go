package repository

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"linkstash/model"
)

// snapshot is the whole on-disk document. The file backend always
// loads and saves it wholesale; there is no partial write.
type snapshot struct {
	Users   []*model.User   `json:"users"`
	Items   []*model.Item   `json:"items"`
	Folders []*model.Folder `json:"folders"`
}

// FileStore persists everything in a single JSON file. A single mutex
// serializes every operation, which rules out the lost-update race the
// read-whole-file/mutate/write-whole-file pattern otherwise has under
// concurrent writers. Implements ItemRepository, FolderRepository and
// UserRepository.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads the snapshot, creating an empty one when the file does
// not exist yet.
func (s *FileStore) load() (*snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &snapshot{}, nil
		}
		return nil, model.NewStorageError("read db file", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, model.NewStorageError("decode db file", err)
	}
	return &snap, nil
}

func (s *FileStore) save(snap *snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return model.NewStorageError("encode db file", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return model.NewStorageError("write db file", err)
	}
	return nil
}

// --- ItemRepository ---

func (s *FileStore) InsertItem(ctx context.Context, item *model.Item) error {
	if item.UserID == "" {
		return model.NewValidationError("user ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	stored := *item
	snap.Items = append(snap.Items, &stored)
	return s.save(snap)
}

func matchesFilter(item *model.Item, filter ItemFilter) bool {
	switch {
	case filter.TrashOnly:
		if !item.IsTrash {
			return false
		}
	case !filter.IncludeTrash:
		if item.IsTrash {
			return false
		}
	}
	if !filter.IncludeArchived && !filter.TrashOnly && item.IsArchived {
		return false
	}
	if filter.StarredOnly && !item.IsStarred {
		return false
	}
	if filter.Type != nil && item.Type != *filter.Type {
		return false
	}
	if filter.Category != nil && item.Category != *filter.Category {
		return false
	}
	if filter.FolderID != nil && !item.InFolder(*filter.FolderID) {
		return false
	}
	if filter.SearchText != "" {
		q := strings.ToLower(filter.SearchText)
		if !strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Content), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) &&
			!tagsContain(item, q) {
			return false
		}
	}
	return true
}

func tagsContain(item *model.Item, q string) bool {
	if item.Metadata == nil {
		return false
	}
	for _, tag := range item.Metadata.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *FileStore) FindItems(ctx context.Context, userID string, filter ItemFilter) ([]*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}

	var items []*model.Item
	for _, item := range snap.Items {
		if item.UserID != userID || !matchesFilter(item, filter) {
			continue
		}
		copied := *item
		items = append(items, &copied)
	}
	return items, nil
}

func (s *FileStore) GetItem(ctx context.Context, userID, itemID string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, item := range snap.Items {
		if item.ID == itemID && item.UserID == userID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, model.NewNotFoundError("item not found")
}

func (s *FileStore) UpdateItem(ctx context.Context, userID, itemID string, item *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	for i, existing := range snap.Items {
		if existing.ID == itemID && existing.UserID == userID {
			stored := *item
			stored.ID = itemID
			stored.UserID = userID
			snap.Items[i] = &stored
			return s.save(snap)
		}
	}
	return model.NewNotFoundError("item not found")
}

func (s *FileStore) DeleteItem(ctx context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	for i, item := range snap.Items {
		if item.ID == itemID && item.UserID == userID {
			snap.Items = append(snap.Items[:i], snap.Items[i+1:]...)
			return s.save(snap)
		}
	}
	return model.NewNotFoundError("item not found")
}

func (s *FileStore) DeleteTrash(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return 0, err
	}

	kept := snap.Items[:0]
	removed := 0
	for _, item := range snap.Items {
		if item.UserID == userID && item.IsTrash {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		return 0, nil
	}
	snap.Items = kept
	if err := s.save(snap); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *FileStore) CountFolderItems(ctx context.Context, userID, folderID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range snap.Items {
		if item.UserID == userID && item.InFolder(folderID) && !item.IsTrash {
			count++
		}
	}
	return count, nil
}

func (s *FileStore) MoveFolderItemsToRoot(ctx context.Context, userID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	changed := false
	now := time.Now()
	for _, item := range snap.Items {
		if item.UserID == userID && item.InFolder(folderID) {
			item.FolderID = nil
			item.UpdatedAt = now
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(snap)
}

func (s *FileStore) TrashFolderItems(ctx context.Context, userID, folderID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	changed := false
	for _, item := range snap.Items {
		if item.UserID == userID && item.InFolder(folderID) && !item.IsTrash {
			item.IsTrash = true
			deletedAt := now
			item.DeletedAt = &deletedAt
			item.UpdatedAt = now
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(snap)
}

// --- FolderRepository ---

func (s *FileStore) InsertFolder(ctx context.Context, folder *model.Folder) error {
	if folder.UserID == "" {
		return model.NewValidationError("user ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	stored := *folder
	snap.Folders = append(snap.Folders, &stored)
	return s.save(snap)
}

func (s *FileStore) FindFolders(ctx context.Context, userID string, includeArchived bool) ([]*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}

	var folders []*model.Folder
	for _, folder := range snap.Folders {
		if folder.UserID != userID {
			continue
		}
		if !includeArchived && folder.IsArchived {
			continue
		}
		copied := *folder
		folders = append(folders, &copied)
	}
	return folders, nil
}

func (s *FileStore) GetFolder(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, folder := range snap.Folders {
		if folder.ID == folderID && folder.UserID == userID {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, model.NewNotFoundError("folder not found")
}

func (s *FileStore) UpdateFolder(ctx context.Context, userID, folderID string, folder *model.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	for i, existing := range snap.Folders {
		if existing.ID == folderID && existing.UserID == userID {
			stored := *folder
			stored.ID = folderID
			stored.UserID = userID
			snap.Folders[i] = &stored
			return s.save(snap)
		}
	}
	return model.NewNotFoundError("folder not found")
}

func (s *FileStore) DeleteFolder(ctx context.Context, userID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	for i, folder := range snap.Folders {
		if folder.ID == folderID && folder.UserID == userID {
			snap.Folders = append(snap.Folders[:i], snap.Folders[i+1:]...)
			return s.save(snap)
		}
	}
	return model.NewNotFoundError("folder not found")
}

// --- UserRepository ---

func (s *FileStore) InsertUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	stored := *user
	snap.Users = append(snap.Users, &stored)
	return s.save(snap)
}

func (s *FileStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	for _, user := range snap.Users {
		if strings.ToLower(user.Email) == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *FileStore) GetUser(ctx context.Context, userID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, user := range snap.Users {
		if user.UserID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, model.NewNotFoundError("user not found")
}
