package properties

import (
	"log"
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

func GetProperties(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	query := utils.DB.Order("created_at desc")
	// Clients only see their own properties; agents see assigned ones.
	switch user.Role {
	case models.RoleClient:
		query = query.Where("landlord_id = ?", user.ID)
	case models.RoleAgent:
		query = query.Where("agent_id = ?", user.ID)
	}

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		log.Printf("Error fetching properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve properties."})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func GetProperty(c *gin.Context) {
	var property models.Property
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&property).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func CreateProperty(c *gin.Context) {
	var input struct {
		Name          string `json:"name"`
		Address       string `json:"address"`
		LandlordName  string `json:"landlord_name"`
		LandlordPhone string `json:"landlord_phone"`
		LandlordEmail string `json:"landlord_email"`
		LandlordID    string `json:"landlord_id"`
		AgentID       string `json:"agent_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Name and address are required."})
		return
	}

	userInterface, _ := c.Get("user")
	user := userInterface.(models.User)

	// Client accounts with a property limit cannot exceed it.
	if user.Role == models.RoleClient && user.PropertyLimit > 0 {
		var count int64
		utils.DB.Model(&models.Property{}).Where("landlord_id = ?", user.ID).Count(&count)
		if count >= int64(user.PropertyLimit) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Property limit reached for this account."})
			return
		}
	}

	property := models.Property{
		Name:          input.Name,
		Address:       input.Address,
		LandlordName:  input.LandlordName,
		LandlordPhone: input.LandlordPhone,
		LandlordEmail: input.LandlordEmail,
		LandlordID:    input.LandlordID,
		AgentID:       input.AgentID,
		Status:        "active",
	}
	if user.Role == models.RoleClient {
		property.LandlordID = user.ID
	}

	if err := utils.DB.Create(&property).Error; err != nil {
		log.Printf("Error creating property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property."})
		return
	}

	c.JSON(http.StatusCreated, property)
}

func UpdateProperty(c *gin.Context) {
	var property models.Property
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&property).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	var input struct {
		Name          *string `json:"name"`
		Address       *string `json:"address"`
		LandlordName  *string `json:"landlord_name"`
		LandlordPhone *string `json:"landlord_phone"`
		LandlordEmail *string `json:"landlord_email"`
		AgentID       *string `json:"agent_id"`
		Status        *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.LandlordName != nil {
		updates["landlord_name"] = *input.LandlordName
	}
	if input.LandlordPhone != nil {
		updates["landlord_phone"] = *input.LandlordPhone
	}
	if input.LandlordEmail != nil {
		updates["landlord_email"] = *input.LandlordEmail
	}
	if input.AgentID != nil {
		updates["agent_id"] = *input.AgentID
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&property).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property."})
			return
		}
	}

	c.JSON(http.StatusOK, property)
}

// setPropertyStatus backs the enable and disable endpoints.
func setPropertyStatus(c *gin.Context, status string) {
	var property models.Property
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&property).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if err := utils.DB.Model(&property).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property status."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property " + status + "."})
}

func EnableProperty(c *gin.Context) {
	setPropertyStatus(c, "active")
}

func DisableProperty(c *gin.Context) {
	setPropertyStatus(c, "inactive")
}

func DeleteProperty(c *gin.Context) {
	var count int64
	utils.DB.Model(&models.Unit{}).Where("property_id = ?", c.Param("id")).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Property still has units. Remove them first."})
		return
	}

	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.Property{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted."})
}
