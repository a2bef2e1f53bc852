package messaging

import (
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

func GetTemplates(c *gin.Context) {
	var templates []models.MessageTemplate
	if err := utils.DB.Order("is_system desc, created_at desc").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve templates."})
		return
	}

	c.JSON(http.StatusOK, templates)
}

func CreateTemplate(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Channel string `json:"channel"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Name and body are required."})
		return
	}

	channel := input.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}

	template := models.MessageTemplate{
		Name:    input.Name,
		Channel: channel,
		Subject: input.Subject,
		Body:    input.Body,
	}

	if err := utils.DB.Create(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template."})
		return
	}

	c.JSON(http.StatusCreated, template)
}

func UpdateTemplate(c *gin.Context) {
	var template models.MessageTemplate
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	var input struct {
		Name    *string `json:"name"`
		Subject *string `json:"subject"`
		Body    *string `json:"body"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Subject != nil {
		updates["subject"] = *input.Subject
	}
	if input.Body != nil {
		updates["body"] = *input.Body
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&template).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template."})
			return
		}
	}

	c.JSON(http.StatusOK, template)
}

func DeleteTemplate(c *gin.Context) {
	var template models.MessageTemplate
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	if template.IsSystem == 1 {
		c.JSON(http.StatusForbidden, gin.H{"error": "System templates cannot be deleted."})
		return
	}

	if err := utils.DB.Delete(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted."})
}
