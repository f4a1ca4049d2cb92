package dto

type CreateFolderRequest struct {
	Name     string `json:"name" binding:"required"`
	IsPinned bool   `json:"is_pinned"`
}

type UpdateFolderRequest struct {
	Name       *string `json:"name"`
	IsPinned   *bool   `json:"is_pinned"`
	IsArchived *bool   `json:"is_archived"`
}

// DeleteFolderRequest carries the explicit policy for contained
// items: true moves them to root, false trashes them, absent blocks
// the deletion when the folder is non-empty.
type DeleteFolderRequest struct {
	MoveItems *bool `json:"move_items"`
}

// FolderConflict is the 409 payload for a blocked folder deletion.
type FolderConflict struct {
	ItemCount int `json:"item_count"`
}
