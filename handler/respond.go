package handler

import (
	"log"

	"linkstash/dto"
	"linkstash/middleware"
	"linkstash/model"
	"linkstash/utils"

	"github.com/gin-gonic/gin"
)

// respondStoreError maps the store error taxonomy onto the HTTP
// contract: 400 validation, 404 not found, 409 conflict (carrying the
// blocking item count), 500 for storage and anything unexpected.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case model.IsValidation(err):
		middleware.TrackError("validation")
		utils.BadRequest(c, err.Error())
	case model.IsNotFound(err):
		middleware.TrackError("not_found")
		utils.NotFound(c, err.Error())
	case model.IsConflict(err):
		middleware.TrackError("conflict")
		conflict, _ := model.AsConflict(err)
		utils.Conflict(c, err.Error(), dto.FolderConflict{ItemCount: conflict.ItemCount})
	case model.IsStorage(err):
		middleware.TrackError("storage")
		log.Printf("storage error: %v", err)
		utils.InternalError(c, "Storage failure, please retry")
	default:
		middleware.TrackError("internal")
		log.Printf("unexpected error: %v", err)
		utils.InternalError(c, "Internal server error")
	}
}
