package auth

import (
	"log"
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser provisions an account. New users log in with the
// temporary password and are forced to change it.
func CreateUser(c *gin.Context) {
	var input struct {
		Username      string `json:"username"`
		Password      string `json:"password"`
		FullName      string `json:"full_name"`
		Phone         string `json:"phone"`
		IDNumber      string `json:"id_number"`
		Role          string `json:"role"`
		PropertyLimit int    `json:"property_limit"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Username and password are required."})
		return
	}

	var existing models.User
	if err := utils.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the password."})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleAdmin
	}

	user := models.User{
		Username:           input.Username,
		Password:           string(hashedPassword),
		FullName:           input.FullName,
		Phone:              input.Phone,
		IDNumber:           input.IDNumber,
		Role:               role,
		MustChangePassword: 1,
		PropertyLimit:      input.PropertyLimit,
	}

	if err := utils.DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user %s: %v", input.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"full_name": user.FullName,
		"role":      user.Role,
	})
}

func GetUsers(c *gin.Context) {
	var users []models.User
	if err := utils.DB.Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users."})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetLandlords lists client-role users for property assignment
// dropdowns.
func GetLandlords(c *gin.Context) {
	var users []models.User
	if err := utils.DB.Where("role = ?", models.RoleClient).Order("full_name asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve landlords."})
		return
	}

	c.JSON(http.StatusOK, users)
}

func UpdateUser(c *gin.Context) {
	var user models.User
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		FullName      *string `json:"full_name"`
		Phone         *string `json:"phone"`
		Role          *string `json:"role"`
		PropertyLimit *int    `json:"property_limit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.PropertyLimit != nil {
		updates["property_limit"] = *input.PropertyLimit
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user."})
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	userInterface, _ := c.Get("user")
	actor := userInterface.(models.User)
	if actor.ID == c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account."})
		return
	}

	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.User{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}
