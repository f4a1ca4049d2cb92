package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"linkstash/model"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "db.json"))
}

func testItem(userID, id string) *model.Item {
	now := time.Now()
	return &model.Item{
		ID:        id,
		UserID:    userID,
		Type:      model.TypeLink,
		Category:  model.CategoryLinks,
		Content:   "https://example.com/" + id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFileStoreItemRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	item := testItem("u1", "i1")
	if err := store.InsertItem(ctx, item); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	got, err := store.GetItem(ctx, "u1", "i1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Content != item.Content || got.Type != model.TypeLink {
		t.Errorf("stored item differs: %+v", got)
	}

	// Returned value is a copy, not shared backing state.
	got.Content = "mutated"
	again, err := store.GetItem(ctx, "u1", "i1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if again.Content == "mutated" {
		t.Error("GetItem must return a copy")
	}

	got.Content = "https://updated.example.com"
	if err := store.UpdateItem(ctx, "u1", "i1", got); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	updated, err := store.GetItem(ctx, "u1", "i1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if updated.Content != "https://updated.example.com" {
		t.Errorf("update not persisted: %q", updated.Content)
	}

	if err := store.DeleteItem(ctx, "u1", "i1"); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if _, err := store.GetItem(ctx, "u1", "i1"); !model.IsNotFound(err) {
		t.Errorf("expected NotFoundError after delete, got %v", err)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	first := NewFileStore(path)
	if err := first.InsertItem(ctx, testItem("u1", "i1")); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	second := NewFileStore(path)
	got, err := second.GetItem(ctx, "u1", "i1")
	if err != nil {
		t.Fatalf("GetItem on new instance failed: %v", err)
	}
	if got.ID != "i1" {
		t.Errorf("unexpected item %+v", got)
	}
}

func TestFileStoreFindItemsFiltering(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	plain := testItem("u1", "plain")
	if err := store.InsertItem(ctx, plain); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	trashed := testItem("u1", "trashed")
	deletedAt := time.Now()
	trashed.IsTrash = true
	trashed.DeletedAt = &deletedAt
	if err := store.InsertItem(ctx, trashed); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	archived := testItem("u1", "archived")
	archived.IsArchived = true
	if err := store.InsertItem(ctx, archived); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	starred := testItem("u1", "starred")
	starred.IsStarred = true
	if err := store.InsertItem(ctx, starred); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	t.Run("DefaultExcludesTrashAndArchived", func(t *testing.T) {
		items, err := store.FindItems(ctx, "u1", ItemFilter{})
		if err != nil {
			t.Fatalf("FindItems failed: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}
	})

	t.Run("TrashOnly", func(t *testing.T) {
		items, err := store.FindItems(ctx, "u1", ItemFilter{TrashOnly: true})
		if err != nil {
			t.Fatalf("FindItems failed: %v", err)
		}
		if len(items) != 1 || items[0].ID != "trashed" {
			t.Errorf("expected only the trashed item, got %d", len(items))
		}
	})

	t.Run("IncludeArchived", func(t *testing.T) {
		items, err := store.FindItems(ctx, "u1", ItemFilter{IncludeArchived: true})
		if err != nil {
			t.Fatalf("FindItems failed: %v", err)
		}
		if len(items) != 3 {
			t.Errorf("expected 3 items, got %d", len(items))
		}
	})

	t.Run("StarredOnly", func(t *testing.T) {
		items, err := store.FindItems(ctx, "u1", ItemFilter{StarredOnly: true})
		if err != nil {
			t.Fatalf("FindItems failed: %v", err)
		}
		if len(items) != 1 || items[0].ID != "starred" {
			t.Errorf("expected only the starred item, got %d", len(items))
		}
	})

	t.Run("OtherOwnerSeesNothing", func(t *testing.T) {
		items, err := store.FindItems(ctx, "u2", ItemFilter{IncludeTrash: true, IncludeArchived: true})
		if err != nil {
			t.Fatalf("FindItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items for other owner, got %d", len(items))
		}
	})
}

func TestFileStoreDeleteTrash(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	deletedAt := time.Now()
	for _, id := range []string{"t1", "t2"} {
		item := testItem("u1", id)
		item.IsTrash = true
		item.DeletedAt = &deletedAt
		if err := store.InsertItem(ctx, item); err != nil {
			t.Fatalf("InsertItem failed: %v", err)
		}
	}
	if err := store.InsertItem(ctx, testItem("u1", "kept")); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	removed, err := store.DeleteTrash(ctx, "u1")
	if err != nil {
		t.Fatalf("DeleteTrash failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	// Idempotent on an already empty trash.
	removed, err = store.DeleteTrash(ctx, "u1")
	if err != nil {
		t.Fatalf("DeleteTrash failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed on second pass, got %d", removed)
	}

	if _, err := store.GetItem(ctx, "u1", "kept"); err != nil {
		t.Errorf("non-trashed item should survive: %v", err)
	}
}

func TestFileStoreFolderItemOperations(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	folderID := "f1"
	if err := store.InsertFolder(ctx, &model.Folder{ID: folderID, UserID: "u1", Name: "Stuff"}); err != nil {
		t.Fatalf("InsertFolder failed: %v", err)
	}

	for _, id := range []string{"a", "b"} {
		item := testItem("u1", id)
		item.FolderID = &folderID
		if err := store.InsertItem(ctx, item); err != nil {
			t.Fatalf("InsertItem failed: %v", err)
		}
	}
	trashed := testItem("u1", "c")
	trashed.FolderID = &folderID
	deletedAt := time.Now()
	trashed.IsTrash = true
	trashed.DeletedAt = &deletedAt
	if err := store.InsertItem(ctx, trashed); err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}

	t.Run("CountSkipsTrashed", func(t *testing.T) {
		count, err := store.CountFolderItems(ctx, "u1", folderID)
		if err != nil {
			t.Fatalf("CountFolderItems failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2, got %d", count)
		}
	})

	t.Run("TrashFolderItems", func(t *testing.T) {
		now := time.Now()
		if err := store.TrashFolderItems(ctx, "u1", folderID, now); err != nil {
			t.Fatalf("TrashFolderItems failed: %v", err)
		}
		got, err := store.GetItem(ctx, "u1", "a")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if !got.IsTrash || got.DeletedAt == nil {
			t.Error("expected folder item trashed with DeletedAt set")
		}
	})

	t.Run("MoveFolderItemsToRoot", func(t *testing.T) {
		if err := store.MoveFolderItemsToRoot(ctx, "u1", folderID); err != nil {
			t.Fatalf("MoveFolderItemsToRoot failed: %v", err)
		}
		got, err := store.GetItem(ctx, "u1", "b")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got.FolderID != nil {
			t.Error("expected folder reference cleared")
		}
	})
}

func TestFileStoreFolderRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	folder := &model.Folder{ID: "f1", UserID: "u1", Name: "Reading"}
	if err := store.InsertFolder(ctx, folder); err != nil {
		t.Fatalf("InsertFolder failed: %v", err)
	}

	archived := &model.Folder{ID: "f2", UserID: "u1", Name: "Old", IsArchived: true}
	if err := store.InsertFolder(ctx, archived); err != nil {
		t.Fatalf("InsertFolder failed: %v", err)
	}

	folders, err := store.FindFolders(ctx, "u1", false)
	if err != nil {
		t.Fatalf("FindFolders failed: %v", err)
	}
	if len(folders) != 1 || folders[0].ID != "f1" {
		t.Errorf("expected archived folder hidden, got %d folders", len(folders))
	}

	folders, err = store.FindFolders(ctx, "u1", true)
	if err != nil {
		t.Fatalf("FindFolders failed: %v", err)
	}
	if len(folders) != 2 {
		t.Errorf("expected both folders, got %d", len(folders))
	}

	if err := store.DeleteFolder(ctx, "u1", "f1"); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}
	if _, err := store.GetFolder(ctx, "u1", "f1"); !model.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestFileStoreUsers(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	user := &model.User{UserID: "u1", Email: "alice@example.com", Password: "hash"}
	if err := store.InsertUser(ctx, user); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	found, err := store.FindUserByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail failed: %v", err)
	}
	if found == nil || found.UserID != "u1" {
		t.Errorf("expected case-insensitive email lookup, got %+v", found)
	}

	missing, err := store.FindUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}

	got, err := store.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("unexpected user %+v", got)
	}
}
