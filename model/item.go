package model

import (
	"time"
)

// ItemType identifies what kind of content an item holds.
type ItemType string

const (
	TypeImage    ItemType = "image"
	TypeLink     ItemType = "link"
	TypeDocument ItemType = "document"
	TypeVideo    ItemType = "video"
	TypeNote     ItemType = "note"
)

// Category is the display grouping for an item. Categories mirror
// item types 1:1 and exist as a fixed enumeration.
type Category string

const (
	CategoryImages    Category = "Images"
	CategoryLinks     Category = "Links"
	CategoryDocuments Category = "Documents"
	CategoryVideos    Category = "Videos"
	CategoryNotes     Category = "Notes"
)

// AllCategories lists every category in display order. Category counts
// always report all of them, including zeroes.
var AllCategories = []Category{
	CategoryImages,
	CategoryLinks,
	CategoryDocuments,
	CategoryVideos,
	CategoryNotes,
}

var typeToCategory = map[ItemType]Category{
	TypeImage:    CategoryImages,
	TypeLink:     CategoryLinks,
	TypeDocument: CategoryDocuments,
	TypeVideo:    CategoryVideos,
	TypeNote:     CategoryNotes,
}

// ValidItemType reports whether t is one of the fixed item types.
func ValidItemType(t ItemType) bool {
	_, ok := typeToCategory[t]
	return ok
}

// CategoryFor returns the category that corresponds to an item type.
func CategoryFor(t ItemType) (Category, bool) {
	c, ok := typeToCategory[t]
	return c, ok
}

// ItemMetadata is an optional bag of attributes attached at save time.
type ItemMetadata struct {
	Thumbnail string   `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Size      int64    `bson:"size,omitempty" json:"size,omitempty"`
	MimeType  string   `bson:"mime_type,omitempty" json:"mime_type,omitempty"`
	URL       string   `bson:"url,omitempty" json:"url,omitempty"`
	Tags      []string `bson:"tags,omitempty" json:"tags,omitempty"`
}

// Item is a saved piece of content owned by exactly one user.
//
// Invariant: IsTrash is true if and only if DeletedAt is non-nil.
type Item struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	UserID      string        `bson:"user_id" json:"user_id"`
	Type        ItemType      `bson:"type" json:"type"`
	Category    Category      `bson:"category" json:"category"`
	Title       string        `bson:"title,omitempty" json:"title,omitempty"`
	Content     string        `bson:"content" json:"content"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	FolderID    *string       `bson:"folder_id,omitempty" json:"folder_id,omitempty"`
	IsStarred   bool          `bson:"is_starred" json:"is_starred"`
	IsArchived  bool          `bson:"is_archived" json:"is_archived"`
	IsTrash     bool          `bson:"is_trash" json:"is_trash"`
	DeletedAt   *time.Time    `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	Metadata    *ItemMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// InFolder reports whether the item is filed under the given folder.
func (i *Item) InFolder(folderID string) bool {
	return i.FolderID != nil && *i.FolderID == folderID
}
