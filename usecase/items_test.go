package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"linkstash/model"
	"linkstash/repository"
)

func newTestStores(t *testing.T) (*ItemService, *FolderService) {
	t.Helper()
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	itemService := &ItemService{ItemRepo: store, FolderRepo: store}
	folderService := &FolderService{FolderRepo: store, ItemRepo: store}
	return itemService, folderService
}

func mustCreateItem(t *testing.T, svc *ItemService, userID string, itemType model.ItemType, content string) *model.Item {
	t.Helper()
	item := &model.Item{
		UserID:  userID,
		Type:    itemType,
		Content: content,
	}
	if err := svc.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	return item
}

func TestCreateItem(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	t.Run("DerivesCategoryFromType", func(t *testing.T) {
		item := mustCreateItem(t, svc, "u1", model.TypeLink, "https://example.com")
		if item.Category != model.CategoryLinks {
			t.Errorf("expected category Links, got %s", item.Category)
		}
		if item.ID == "" {
			t.Error("expected generated ID")
		}
		if item.IsTrash || item.IsStarred || item.IsArchived {
			t.Error("expected all flags false on creation")
		}
		if item.DeletedAt != nil {
			t.Error("expected nil DeletedAt on creation")
		}
		if !item.CreatedAt.Equal(item.UpdatedAt) {
			t.Error("expected CreatedAt == UpdatedAt on creation")
		}
	})

	t.Run("RejectsInvalidType", func(t *testing.T) {
		err := svc.CreateItem(ctx, &model.Item{
			UserID:  "u1",
			Type:    "podcast",
			Content: "something",
		})
		if !model.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("RejectsMismatchedCategory", func(t *testing.T) {
		err := svc.CreateItem(ctx, &model.Item{
			UserID:   "u1",
			Type:     model.TypeLink,
			Category: model.CategoryNotes,
			Content:  "https://example.com",
		})
		if !model.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("RejectsEmptyContent", func(t *testing.T) {
		err := svc.CreateItem(ctx, &model.Item{
			UserID:  "u1",
			Type:    model.TypeNote,
			Content: "   ",
		})
		if !model.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("UnknownFolderBecomesUnfiled", func(t *testing.T) {
		missing := "no-such-folder"
		item := &model.Item{
			UserID:   "u1",
			Type:     model.TypeNote,
			Content:  "hello",
			FolderID: &missing,
		}
		if err := svc.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		if item.FolderID != nil {
			t.Error("expected unknown folder reference to be cleared")
		}
	})
}

func TestTrashLifecycle(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	item := mustCreateItem(t, svc, "u1", model.TypeLink, "https://x.com")

	// Appears in the default list and category counts.
	items, total, err := svc.ListItems(ctx, "u1", ItemListOptions{})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 item, got total=%d len=%d", total, len(items))
	}
	counts, err := svc.CategoryCounts(ctx, "u1")
	if err != nil {
		t.Fatalf("CategoryCounts failed: %v", err)
	}
	if counts[model.CategoryLinks] != 1 {
		t.Errorf("expected Links count 1, got %d", counts[model.CategoryLinks])
	}

	// Soft delete: gone from the default list, visible with trash.
	if err := svc.SoftDeleteItem(ctx, "u1", item.ID); err != nil {
		t.Fatalf("SoftDeleteItem failed: %v", err)
	}
	got, err := svc.GetItem(ctx, "u1", item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !got.IsTrash || got.DeletedAt == nil {
		t.Error("expected IsTrash=true with DeletedAt set")
	}

	_, total, _ = svc.ListItems(ctx, "u1", ItemListOptions{})
	if total != 0 {
		t.Errorf("expected trashed item absent from default list, total=%d", total)
	}
	_, total, _ = svc.ListItems(ctx, "u1", ItemListOptions{IncludeTrash: true})
	if total != 1 {
		t.Errorf("expected trashed item visible with IncludeTrash, total=%d", total)
	}
	counts, _ = svc.CategoryCounts(ctx, "u1")
	if counts[model.CategoryLinks] != 0 {
		t.Errorf("expected Links count 0 after trash, got %d", counts[model.CategoryLinks])
	}

	// Restore: flags cleared, back in the default list.
	restored, err := svc.RestoreItem(ctx, "u1", item.ID)
	if err != nil {
		t.Fatalf("RestoreItem failed: %v", err)
	}
	if restored.IsTrash || restored.DeletedAt != nil {
		t.Error("expected restore to clear IsTrash and DeletedAt")
	}
	_, total, _ = svc.ListItems(ctx, "u1", ItemListOptions{})
	if total != 1 {
		t.Errorf("expected restored item in default list, total=%d", total)
	}
	counts, _ = svc.CategoryCounts(ctx, "u1")
	if counts[model.CategoryLinks] != 1 {
		t.Errorf("expected Links count back to 1, got %d", counts[model.CategoryLinks])
	}

	// Restoring an item that is not trashed fails.
	if _, err := svc.RestoreItem(ctx, "u1", item.ID); !model.IsNotFound(err) {
		t.Errorf("expected NotFoundError restoring non-trashed item, got %v", err)
	}

	// Purge: gone everywhere, trash included.
	if err := svc.PurgeItem(ctx, "u1", item.ID); err != nil {
		t.Fatalf("PurgeItem failed: %v", err)
	}
	if _, err := svc.GetItem(ctx, "u1", item.ID); !model.IsNotFound(err) {
		t.Errorf("expected NotFoundError after purge, got %v", err)
	}
	_, total, _ = svc.ListItems(ctx, "u1", ItemListOptions{IncludeTrash: true})
	if total != 0 {
		t.Errorf("expected nothing left, total=%d", total)
	}
}

func TestTrashDeletedAtInvariant(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	item := mustCreateItem(t, svc, "u1", model.TypeNote, "note body")

	trash := true
	updated, err := svc.UpdateItem(ctx, "u1", item.ID, ItemUpdate{IsTrash: &trash})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if !updated.IsTrash || updated.DeletedAt == nil {
		t.Error("setting IsTrash must stamp DeletedAt")
	}

	trash = false
	updated, err = svc.UpdateItem(ctx, "u1", item.ID, ItemUpdate{IsTrash: &trash})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if updated.IsTrash || updated.DeletedAt != nil {
		t.Error("clearing IsTrash must clear DeletedAt")
	}
}

func TestEmptyTrash(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	kept := mustCreateItem(t, svc, "u1", model.TypeNote, "keep me")
	trashed1 := mustCreateItem(t, svc, "u1", model.TypeLink, "https://a.com")
	trashed2 := mustCreateItem(t, svc, "u1", model.TypeLink, "https://b.com")
	other := mustCreateItem(t, svc, "u2", model.TypeLink, "https://c.com")

	for _, id := range []string{trashed1.ID, trashed2.ID} {
		if err := svc.SoftDeleteItem(ctx, "u1", id); err != nil {
			t.Fatalf("SoftDeleteItem failed: %v", err)
		}
	}
	if err := svc.SoftDeleteItem(ctx, "u2", other.ID); err != nil {
		t.Fatalf("SoftDeleteItem failed: %v", err)
	}

	count, err := svc.EmptyTrash(ctx, "u1")
	if err != nil {
		t.Fatalf("EmptyTrash failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 items removed, got %d", count)
	}

	// Untouched: u1's kept item and u2's trashed item.
	if _, err := svc.GetItem(ctx, "u1", kept.ID); err != nil {
		t.Errorf("kept item should survive empty trash: %v", err)
	}
	if _, err := svc.GetItem(ctx, "u2", other.ID); err != nil {
		t.Errorf("other owner's trash should survive: %v", err)
	}
	if _, err := svc.GetItem(ctx, "u1", trashed1.ID); !model.IsNotFound(err) {
		t.Errorf("trashed item should be purged, got %v", err)
	}
}

func TestCategoryCountsCoversAllCategories(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	mustCreateItem(t, svc, "u1", model.TypeImage, "cat.jpg")
	mustCreateItem(t, svc, "u1", model.TypeImage, "dog.jpg")
	archived := mustCreateItem(t, svc, "u1", model.TypeNote, "old note")
	if _, err := svc.SetArchived(ctx, "u1", archived.ID, true); err != nil {
		t.Fatalf("SetArchived failed: %v", err)
	}

	counts, err := svc.CategoryCounts(ctx, "u1")
	if err != nil {
		t.Fatalf("CategoryCounts failed: %v", err)
	}
	if len(counts) != len(model.AllCategories) {
		t.Errorf("expected %d categories, got %d", len(model.AllCategories), len(counts))
	}
	for _, category := range model.AllCategories {
		if _, ok := counts[category]; !ok {
			t.Errorf("missing category %s", category)
		}
	}
	if counts[model.CategoryImages] != 2 {
		t.Errorf("expected Images=2, got %d", counts[model.CategoryImages])
	}
	// Archived items never count.
	if counts[model.CategoryNotes] != 0 {
		t.Errorf("expected Notes=0 with archived item, got %d", counts[model.CategoryNotes])
	}

	sum := 0
	for _, n := range counts {
		sum += n
	}
	_, total, _ := svc.ListItems(ctx, "u1", ItemListOptions{})
	if sum != total {
		t.Errorf("count sum %d != default list total %d", sum, total)
	}
}

func TestListItemsFiltersAndPagination(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateItem(t, svc, "u1", model.TypeLink, "https://example.com/page")
	}
	mustCreateItem(t, svc, "u1", model.TypeNote, "meeting notes about budget")

	t.Run("TypeFilter", func(t *testing.T) {
		items, total, err := svc.ListItems(ctx, "u1", ItemListOptions{Type: "note"})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if total != 1 || items[0].Type != model.TypeNote {
			t.Errorf("expected single note, total=%d", total)
		}
	})

	t.Run("InvalidTypeRejected", func(t *testing.T) {
		_, _, err := svc.ListItems(ctx, "u1", ItemListOptions{Type: "bogus"})
		if !model.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("SearchText", func(t *testing.T) {
		_, total, err := svc.ListItems(ctx, "u1", ItemListOptions{SearchText: "BUDGET"})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if total != 1 {
			t.Errorf("expected case-insensitive match, total=%d", total)
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		items, total, err := svc.ListItems(ctx, "u1", ItemListOptions{Page: 2, Limit: 4})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if total != 6 {
			t.Errorf("expected total 6, got %d", total)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(items))
		}
	})

	t.Run("PageBeyondEnd", func(t *testing.T) {
		items, _, err := svc.ListItems(ctx, "u1", ItemListOptions{Page: 10, Limit: 50})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected empty page, got %d items", len(items))
		}
	})
}

func TestListItemsOrdering(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	first := mustCreateItem(t, svc, "u1", model.TypeNote, "first")
	time.Sleep(5 * time.Millisecond)
	second := mustCreateItem(t, svc, "u1", model.TypeNote, "second")

	items, _, err := svc.ListItems(ctx, "u1", ItemListOptions{})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Error("expected newest first ordering")
	}
}

func TestOwnershipScoping(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	item := mustCreateItem(t, svc, "u1", model.TypeNote, "private")

	// Another owner sees NotFound, never the record.
	if _, err := svc.GetItem(ctx, "u2", item.ID); !model.IsNotFound(err) {
		t.Errorf("expected NotFoundError for cross-owner get, got %v", err)
	}
	if _, err := svc.UpdateItem(ctx, "u2", item.ID, ItemUpdate{}); !model.IsNotFound(err) {
		t.Errorf("expected NotFoundError for cross-owner update, got %v", err)
	}
	if err := svc.PurgeItem(ctx, "u2", item.ID); !model.IsNotFound(err) {
		t.Errorf("expected NotFoundError for cross-owner purge, got %v", err)
	}
}

func TestToggleStar(t *testing.T) {
	svc, _ := newTestStores(t)
	ctx := context.Background()

	item := mustCreateItem(t, svc, "u1", model.TypeLink, "https://x.com")

	starred, err := svc.ToggleStar(ctx, "u1", item.ID)
	if err != nil {
		t.Fatalf("ToggleStar failed: %v", err)
	}
	if !starred.IsStarred {
		t.Error("expected starred after first toggle")
	}

	list, err := svc.StarredItems(ctx, "u1")
	if err != nil {
		t.Fatalf("StarredItems failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 starred item, got %d", len(list))
	}

	unstarred, err := svc.ToggleStar(ctx, "u1", item.ID)
	if err != nil {
		t.Fatalf("ToggleStar failed: %v", err)
	}
	if unstarred.IsStarred {
		t.Error("expected unstarred after second toggle")
	}
}
