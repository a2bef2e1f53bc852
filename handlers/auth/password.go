package auth

import (
	"log"
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ChangePassword updates the authenticated user's own password and
// clears the forced-change flag set when an admin provisions or resets
// the account.
func ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide your current and new password."})
		return
	}

	if len(input.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 6 characters."})
		return
	}

	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	updates := map[string]interface{}{
		"password":             string(hashedPassword),
		"must_change_password": 0,
	}
	if err := utils.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update password for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue updating your password. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your password has been changed successfully."})
}

// ResetUserPassword lets an admin set a temporary password for another
// user. The user must change it on next login.
func ResetUserPassword(c *gin.Context) {
	var input struct {
		NewPassword string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a new password."})
		return
	}

	var user models.User
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the password."})
		return
	}

	updates := map[string]interface{}{
		"password":             string(hashedPassword),
		"must_change_password": 1,
	}
	if err := utils.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to reset password for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset. The user must change it on next login."})
}
