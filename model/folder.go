package model

import "time"

// Folder is a user-defined grouping container for items. Folders are
// flat; there is no nesting.
type Folder struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Name       string    `bson:"name" json:"name"`
	IsPinned   bool      `bson:"is_pinned" json:"is_pinned"`
	IsArchived bool      `bson:"is_archived" json:"is_archived"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`

	// ItemCount is the number of non-trashed items filed under this
	// folder. Computed on read, never stored.
	ItemCount int `bson:"-" json:"item_count"`
}
