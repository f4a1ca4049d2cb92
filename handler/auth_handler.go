package handler

import (
	"log"

	"linkstash/dto"
	"linkstash/middleware"
	"linkstash/model"
	"linkstash/usecase"
	"linkstash/utils"

	"github.com/gin-gonic/gin"
	"github.com/mileusna/useragent"
)

func SignupHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Please provide email and password")
		return
	}

	user, err := userService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.TrackAuthAttempt("failure", "signup")
		if model.IsConflict(err) {
			utils.BadRequest(c, "User already exists")
			return
		}
		respondStoreError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	middleware.TrackAuthAttempt("success", "signup")
	utils.Created(c, dto.AuthResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Token:  token,
	})
}

func LoginHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Please provide email and password")
		return
	}

	user, err := userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.TrackAuthAttempt("failure", "login")
		if model.IsNotFound(err) || model.IsValidation(err) {
			utils.Unauthorized(c, "Invalid credentials")
			return
		}
		respondStoreError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	ua := useragent.Parse(c.Request.UserAgent())
	log.Printf("login: user=%s device=%s %s on %s", user.UserID, ua.Name, ua.Version, ua.OS)

	middleware.TrackAuthAttempt("success", "login")
	utils.Success(c, dto.AuthResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Token:  token,
	})
}
