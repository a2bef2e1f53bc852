package auth

import (
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid username and password."})
		return
	}

	var user models.User
	if err := utils.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
		return
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
		return
	}

	tokenString, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   tokenString,
		"user": gin.H{
			"id":                   user.ID,
			"username":             user.Username,
			"full_name":            user.FullName,
			"role":                 user.Role,
			"must_change_password": user.MustChangePassword == 1,
		},
	})
}

// Logout handles user sign-out
func Logout(c *gin.Context) {
	// JWT tokens are stateless; the client discards the token.
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful.",
	})
}

// CheckAuth returns the authenticated user for session restoration.
func CheckAuth(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"username":             user.Username,
		"full_name":            user.FullName,
		"phone":                user.Phone,
		"role":                 user.Role,
		"must_change_password": user.MustChangePassword == 1,
	})
}
