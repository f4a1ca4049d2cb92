package handler

import (
	"linkstash/dto"
	"linkstash/middleware"
	"linkstash/usecase"
	"linkstash/utils"

	"github.com/gin-gonic/gin"
)

func ListFoldersHandler(c *gin.Context, folderService *usecase.FolderService) {
	userID := c.GetString("user_id")

	list, err := folderService.ListFolders(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, list)
}

func CreateFolderHandler(c *gin.Context, folderService *usecase.FolderService) {
	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Folder name is required")
		return
	}

	folder, err := folderService.CreateFolder(c.Request.Context(), c.GetString("user_id"), req.Name, req.IsPinned)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	middleware.TrackFolderOperation("create")
	utils.Created(c, folder)
}

func GetFolderHandler(c *gin.Context, folderService *usecase.FolderService) {
	userID := c.GetString("user_id")
	folderID := c.Param("id")

	folder, err := folderService.GetFolder(c.Request.Context(), userID, folderID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, folder)
}

func UpdateFolderHandler(c *gin.Context, folderService *usecase.FolderService) {
	userID := c.GetString("user_id")
	folderID := c.Param("id")

	var req dto.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	folder, err := folderService.UpdateFolder(c.Request.Context(), userID, folderID, usecase.FolderUpdate{
		Name:       req.Name,
		IsPinned:   req.IsPinned,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	middleware.TrackFolderOperation("update")
	utils.Success(c, folder)
}

// DeleteFolderHandler deletes a folder. The item policy comes from
// the body (move_items) or, for clients that cannot send a DELETE
// body, the move_items query parameter.
func DeleteFolderHandler(c *gin.Context, folderService *usecase.FolderService) {
	userID := c.GetString("user_id")
	folderID := c.Param("id")

	var req dto.DeleteFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if req.MoveItems == nil {
		if raw, ok := c.GetQuery("move_items"); ok {
			move := raw == "true"
			req.MoveItems = &move
		}
	}

	if err := folderService.DeleteFolder(c.Request.Context(), userID, folderID, req.MoveItems); err != nil {
		respondStoreError(c, err)
		return
	}

	middleware.TrackFolderOperation("delete")
	utils.SuccessMessage(c, "Folder deleted")
}

func TogglePinHandler(c *gin.Context, folderService *usecase.FolderService) {
	userID := c.GetString("user_id")
	folderID := c.Param("id")

	folder, err := folderService.TogglePin(c.Request.Context(), userID, folderID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	middleware.TrackFolderOperation("pin")
	utils.Success(c, folder)
}
