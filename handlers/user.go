package handlers

import (
	"net/http"
	"time"

	userRepo "courtflow/database/repository/user"
	"courtflow/models"
	"courtflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const tokenLifetime = 72 * time.Hour

// UserHandler exposes account registration and push-token maintenance.
type UserHandler struct {
	Users userRepo.UserRepository
}

func NewUserHandler(users userRepo.UserRepository) *UserHandler {
	return &UserHandler{Users: users}
}

// RegisterHandler creates an account and returns a signed token for it.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role" binding:"required,oneof=attorney admin juror"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create user", err.Error())
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// UpdateFCMTokenHandler stores the caller's push token for notifications.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	userID := c.GetString("userID")
	if err := h.Users.UpdateFCMToken(c.Request.Context(), userID, input.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update push token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
