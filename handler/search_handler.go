package handler

import (
	"strconv"

	"linkstash/usecase"
	"linkstash/utils"

	"github.com/gin-gonic/gin"
)

func SearchHandler(c *gin.Context, searchService *usecase.SearchService) {
	userID := c.GetString("user_id")
	query := c.Query("q")
	itemType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := searchService.Search(c.Request.Context(), userID, query, itemType, limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, results)
}

func SuggestionsHandler(c *gin.Context, searchService *usecase.SearchService) {
	userID := c.GetString("user_id")
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	suggestions, err := searchService.Suggest(c.Request.Context(), userID, query, limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.Success(c, suggestions)
}
