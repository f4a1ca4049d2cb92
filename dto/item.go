package dto

import (
	"linkstash/model"
)

type CreateItemRequest struct {
	Type        string              `json:"type" binding:"required,itemtype"`
	Category    string              `json:"category" binding:"omitempty,category"`
	Title       string              `json:"title"`
	Content     string              `json:"content" binding:"required"`
	Description string              `json:"description"`
	FolderID    *string             `json:"folder_id"`
	Metadata    *model.ItemMetadata `json:"metadata"`
}

// UpdateItemRequest is a partial update: absent fields stay unchanged.
// An empty folder_id string moves the item to root.
type UpdateItemRequest struct {
	Title       *string             `json:"title"`
	Content     *string             `json:"content"`
	Description *string             `json:"description"`
	FolderID    *string             `json:"folder_id"`
	IsStarred   *bool               `json:"is_starred"`
	IsArchived  *bool               `json:"is_archived"`
	IsTrash     *bool               `json:"is_trash"`
	Metadata    *model.ItemMetadata `json:"metadata"`
}

type ArchiveItemRequest struct {
	IsArchived *bool `json:"is_archived"`
}

type ItemsPageResponse struct {
	Items      []*model.Item `json:"items"`
	Count      int           `json:"count"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

func NewItemsPageResponse(items []*model.Item, total, page, limit int) *ItemsPageResponse {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 1
	}
	totalPages := (total + limit - 1) / limit
	return &ItemsPageResponse{
		Items:      items,
		Count:      len(items),
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

// CategoryCount is one entry of the categories view. View is the
// client's preferred rendering for the category.
type CategoryCount struct {
	Name  model.Category `json:"name"`
	Type  model.ItemType `json:"type"`
	View  string         `json:"view"`
	Count int            `json:"count"`
}

var categoryViews = map[model.Category]struct {
	itemType model.ItemType
	view     string
}{
	model.CategoryImages:    {model.TypeImage, "grid"},
	model.CategoryDocuments: {model.TypeDocument, "list"},
	model.CategoryLinks:     {model.TypeLink, "preview"},
	model.CategoryVideos:    {model.TypeVideo, "embedded"},
	model.CategoryNotes:     {model.TypeNote, "list"},
}

// NewCategoryCounts renders counts over the full fixed enumeration,
// zeroes included, in display order.
func NewCategoryCounts(counts map[model.Category]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(model.AllCategories))
	for _, category := range model.AllCategories {
		meta := categoryViews[category]
		out = append(out, CategoryCount{
			Name:  category,
			Type:  meta.itemType,
			View:  meta.view,
			Count: counts[category],
		})
	}
	return out
}
