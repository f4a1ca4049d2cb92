package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"linkstash/model"
	"linkstash/repository"
)

// SearchService answers cross-collection text queries: plain substring
// matching over items and folders, no ranking.
type SearchService struct {
	ItemRepo   repository.ItemRepository
	FolderRepo repository.FolderRepository
}

// SearchResults is the combined result set. Total counts both kinds
// after all filtering.
type SearchResults struct {
	Items   []*model.Item   `json:"items"`
	Folders []*model.Folder `json:"folders"`
	Total   int             `json:"total"`
	Query   string          `json:"query"`
}

// SuggestionKind tells a suggestion's source apart.
type SuggestionKind string

const (
	SuggestionFolder SuggestionKind = "folder"
	SuggestionItem   SuggestionKind = "item"
)

// Suggestion is one typeahead entry. Label is the folder name or the
// item title (content when the title is empty).
type Suggestion struct {
	SourceKind SuggestionKind `json:"source_kind"`
	Label      string         `json:"label"`
	ID         string         `json:"id"`
	ItemType   model.ItemType `json:"item_type,omitempty"`
}

const defaultSuggestionLimit = 5

// Search matches queryText case-insensitively as a substring against
// item title/content/description and folder name. Trashed and
// archived records never appear. itemType, when set, narrows items
// only; folders are never type-filtered.
func (svc *SearchService) Search(ctx context.Context, userID, queryText, itemType string, limit int) (*SearchResults, error) {
	if userID == "" {
		return nil, model.NewValidationError("user ID is required")
	}

	queryText = strings.TrimSpace(queryText)
	results := &SearchResults{
		Items:   []*model.Item{},
		Folders: []*model.Folder{},
		Query:   queryText,
	}
	if queryText == "" {
		return results, nil
	}

	filter := repository.ItemFilter{SearchText: queryText}
	if itemType != "" {
		t := model.ItemType(itemType)
		if !model.ValidItemType(t) {
			return nil, model.NewValidationError("invalid item type %q", itemType)
		}
		filter.Type = &t
	}

	items, err := svc.ItemRepo.FindItems(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("search items failed: %w", err)
	}
	sortItemsByCreated(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	folders, err := svc.matchFolders(ctx, userID, queryText)
	if err != nil {
		return nil, err
	}

	results.Items = items
	results.Folders = folders
	results.Total = len(items) + len(folders)
	return results, nil
}

func (svc *SearchService) matchFolders(ctx context.Context, userID, queryText string) ([]*model.Folder, error) {
	folders, err := svc.FolderRepo.FindFolders(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("search folders failed: %w", err)
	}

	q := strings.ToLower(queryText)
	matched := []*model.Folder{}
	for _, folder := range folders {
		if strings.Contains(strings.ToLower(folder.Name), q) {
			matched = append(matched, folder)
		}
	}

	// Pinned folders surface first, then most recently updated.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].IsPinned != matched[j].IsPinned {
			return matched[i].IsPinned
		}
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return matched, nil
}

// Suggest returns up to limit typeahead entries for the query, folders
// sorted before items.
func (svc *SearchService) Suggest(ctx context.Context, userID, queryText string, limit int) ([]Suggestion, error) {
	if userID == "" {
		return nil, model.NewValidationError("user ID is required")
	}
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	queryText = strings.TrimSpace(queryText)
	suggestions := []Suggestion{}
	if len(queryText) < 2 {
		return suggestions, nil
	}

	folders, err := svc.matchFolders(ctx, userID, queryText)
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		suggestions = append(suggestions, Suggestion{
			SourceKind: SuggestionFolder,
			Label:      folder.Name,
			ID:         folder.ID,
		})
	}

	items, err := svc.ItemRepo.FindItems(ctx, userID, repository.ItemFilter{SearchText: queryText})
	if err != nil {
		return nil, fmt.Errorf("suggest items failed: %w", err)
	}
	sortItemsByCreated(items)
	for _, item := range items {
		label := item.Title
		if label == "" {
			label = item.Content
		}
		suggestions = append(suggestions, Suggestion{
			SourceKind: SuggestionItem,
			Label:      label,
			ID:         item.ID,
			ItemType:   item.Type,
		})
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
