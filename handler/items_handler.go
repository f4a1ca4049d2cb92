package handler

import (
	"strconv"

	"linkstash/dto"
	"linkstash/middleware"
	"linkstash/model"
	"linkstash/usecase"
	"linkstash/utils"

	"github.com/gin-gonic/gin"
)

func CreateItemHandler(c *gin.Context, itemService *usecase.ItemService) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Type and content are required")
		return
	}

	item := &model.Item{
		UserID:      c.GetString("user_id"),
		Type:        model.ItemType(req.Type),
		Category:    model.Category(req.Category),
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		FolderID:    req.FolderID,
		Metadata:    req.Metadata,
	}

	if err := itemService.CreateItem(c.Request.Context(), item); err != nil {
		respondStoreError(c, err)
		return
	}

	middleware.TrackItemOperation("create")
	utils.Created(c, item)
}

func ListItemsHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	opts := usecase.ItemListOptions{
		Type:            c.Query("type"),
		Category:        c.Query("category"),
		IncludeTrash:    c.Query("include_trash") == "true",
		IncludeArchived: c.Query("archived") == "true",
		SearchText:      c.Query("q"),
		Page:            page,
		Limit:           limit,
	}
	if folderID := c.Query("folder_id"); folderID != "" {
		opts.FolderID = &folderID
	}

	items, total, err := itemService.ListItems(c.Request.Context(), userID, opts)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, dto.NewItemsPageResponse(items, total, page, limit))
}

func RecentItemsHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := itemService.RecentItems(c.Request.Context(), userID, limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, items)
}

func StarredItemsHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")

	items, err := itemService.StarredItems(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, items)
}

func TrashItemsHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")

	items, err := itemService.TrashItems(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, items)
}

func CategoryCountsHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")

	counts, err := itemService.CategoryCounts(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, dto.NewCategoryCounts(counts))
}

func GetItemHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	item, err := itemService.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, item)
}

func UpdateItemHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	update := usecase.ItemUpdate{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		IsStarred:   req.IsStarred,
		IsArchived:  req.IsArchived,
		IsTrash:     req.IsTrash,
		Metadata:    req.Metadata,
	}
	if req.FolderID != nil {
		if *req.FolderID == "" {
			update.ClearFolder = true
		} else {
			update.FolderID = req.FolderID
		}
	}

	item, err := itemService.UpdateItem(c.Request.Context(), userID, itemID, update)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	middleware.TrackItemOperation("update")
	utils.Success(c, item)
}

func ToggleStarHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	item, err := itemService.ToggleStar(c.Request.Context(), userID, itemID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, item)
}

func ArchiveItemHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	var req dto.ArchiveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	archived := true
	if req.IsArchived != nil {
		archived = *req.IsArchived
	}

	item, err := itemService.SetArchived(c.Request.Context(), userID, itemID, archived)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, item)
}

// DeleteItemHandler soft-deletes by default; permanent=true purges
// immediately, bypassing trash.
func DeleteItemHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	if c.Query("permanent") == "true" {
		if err := itemService.PurgeItem(c.Request.Context(), userID, itemID); err != nil {
			respondStoreError(c, err)
			return
		}
		middleware.TrackItemOperation("purge")
		utils.SuccessMessage(c, "Item permanently deleted")
		return
	}

	if err := itemService.SoftDeleteItem(c.Request.Context(), userID, itemID); err != nil {
		respondStoreError(c, err)
		return
	}
	middleware.TrackItemOperation("trash")
	utils.SuccessMessage(c, "Item moved to trash")
}

func RestoreItemHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	item, err := itemService.RestoreItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	middleware.TrackItemOperation("restore")
	utils.Success(c, item)
}

func EmptyTrashHandler(c *gin.Context, itemService *usecase.ItemService) {
	userID := c.GetString("user_id")

	count, err := itemService.EmptyTrash(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	middleware.TrackItemOperation("empty_trash")
	utils.Success(c, gin.H{"removed": count})
}
