package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	validation := NewValidationError("bad input")
	notFound := NewNotFoundError("item not found")
	conflict := NewConflictError(3, "folder contains %d items", 3)
	storage := NewStorageError("write", errors.New("disk full"))

	tests := []struct {
		name string
		err  error
		want func(error) bool
	}{
		{"Validation", validation, IsValidation},
		{"NotFound", notFound, IsNotFound},
		{"Conflict", conflict, IsConflict},
		{"Storage", storage, IsStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.want(tt.err) {
				t.Errorf("predicate rejected its own kind: %v", tt.err)
			}
			for _, other := range tests {
				if other.name != tt.name && other.want(tt.err) {
					t.Errorf("%s predicate accepted %s error", other.name, tt.name)
				}
			}
		})
	}
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("list failed: %w", NewNotFoundError("item not found"))
	if !IsNotFound(wrapped) {
		t.Error("expected IsNotFound through fmt.Errorf wrapping")
	}
}

func TestAsConflict(t *testing.T) {
	err := fmt.Errorf("delete failed: %w", NewConflictError(5, "folder contains 5 items"))
	conflict, ok := AsConflict(err)
	if !ok {
		t.Fatal("expected AsConflict to unwrap")
	}
	if conflict.ItemCount != 5 {
		t.Errorf("expected ItemCount 5, got %d", conflict.ItemCount)
	}

	if _, ok := AsConflict(NewNotFoundError("nope")); ok {
		t.Error("AsConflict must reject other kinds")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("write", cause)
	if !errors.Is(err, cause) {
		t.Error("expected StorageError to unwrap to its cause")
	}
}

func TestItemTypeCategoryCorrespondence(t *testing.T) {
	if len(AllCategories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(AllCategories))
	}

	seen := map[Category]bool{}
	for _, itemType := range []ItemType{TypeImage, TypeLink, TypeDocument, TypeVideo, TypeNote} {
		if !ValidItemType(itemType) {
			t.Errorf("%s should be valid", itemType)
		}
		category, ok := CategoryFor(itemType)
		if !ok {
			t.Errorf("no category for %s", itemType)
			continue
		}
		if seen[category] {
			t.Errorf("category %s mapped twice", category)
		}
		seen[category] = true
	}

	if ValidItemType("podcast") {
		t.Error("unknown type must be invalid")
	}
	if _, ok := CategoryFor("podcast"); ok {
		t.Error("unknown type must have no category")
	}
}
