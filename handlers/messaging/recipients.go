package messaging

import (
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

// GetMessageRecipients lists delivery rows across bulk sends, filtered
// by bulk message, tenant or status.
func GetMessageRecipients(c *gin.Context) {
	query := utils.DB.Order("created_at desc").Limit(500)
	if bulkID := c.Query("bulk_message_id"); bulkID != "" {
		query = query.Where("bulk_message_id = ?", bulkID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var recipients []models.MessageRecipient
	if err := query.Find(&recipients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipients."})
		return
	}

	c.JSON(http.StatusOK, recipients)
}

func GetMessageRecipient(c *gin.Context) {
	var recipient models.MessageRecipient
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&recipient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	c.JSON(http.StatusOK, recipient)
}

// UpdateMessageRecipient corrects a delivery row, typically when a
// gateway report arrives through support channels rather than the DLR
// callback.
func UpdateMessageRecipient(c *gin.Context) {
	var recipient models.MessageRecipient
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&recipient).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	var input struct {
		Status      *string `json:"status"`
		ProviderRef *string `json:"provider_ref"`
		Error       *string `json:"error"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.ProviderRef != nil {
		updates["provider_ref"] = *input.ProviderRef
	}
	if input.Error != nil {
		updates["error"] = *input.Error
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&recipient).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipient."})
			return
		}
	}

	c.JSON(http.StatusOK, recipient)
}

func DeleteMessageRecipient(c *gin.Context) {
	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.MessageRecipient{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipient."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipient deleted."})
}
