package messaging

import (
	"net/http"
	"time"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

func GetMessages(c *gin.Context) {
	query := utils.DB.Order("created_at desc").Limit(200)
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if channel := c.Query("channel"); channel != "" {
		query = query.Where("channel = ?", channel)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages."})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// UpdateMessage corrects a logged message's status or content. Sent
// messages cannot be rewritten, only their delivery status moved.
func UpdateMessage(c *gin.Context) {
	var message models.Message
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	var input struct {
		Subject *string `json:"subject"`
		Body    *string `json:"body"`
		Status  *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if message.Status == models.MessageQueued {
		if input.Subject != nil {
			updates["subject"] = *input.Subject
		}
		if input.Body != nil {
			updates["body"] = *input.Body
		}
	} else if input.Subject != nil || input.Body != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Only queued messages can be edited."})
		return
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&message).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message."})
			return
		}
	}

	c.JSON(http.StatusOK, message)
}

func DeleteMessage(c *gin.Context) {
	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.Message{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted."})
}

// SendMessage delivers one SMS or email to a tenant. SMS uses the
// property account when a property is given.
func SendMessage(c *gin.Context) {
	var input struct {
		TenantID   string `json:"tenant_id"`
		PropertyID string `json:"property_id"`
		Channel    string `json:"channel"`
		Subject    string `json:"subject"`
		Body       string `json:"body"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.TenantID == "" || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Tenant and message body are required."})
		return
	}

	var tenant models.Tenant
	if err := utils.DB.Where("id = ?", input.TenantID).First(&tenant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	channel := input.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}

	recipient := tenant.Phone
	if channel == models.ChannelEmail {
		recipient = tenant.Email
	}
	if recipient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The tenant has no contact for this channel."})
		return
	}

	message := models.Message{
		TenantID:  tenant.ID,
		Channel:   channel,
		Recipient: recipient,
		Subject:   input.Subject,
		Body:      input.Body,
		Status:    models.MessageQueued,
	}
	if err := utils.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue the message."})
		return
	}

	var sendErr error
	var providerRef string
	if channel == models.ChannelEmail {
		sendErr = utils.SendEmail(recipient, input.Subject, input.Body)
	} else {
		providerRef, sendErr = utils.SendSMS(CredentialsForProperty(input.PropertyID), recipient, input.Body)
	}

	if sendErr != nil {
		utils.DB.Model(&message).Updates(map[string]interface{}{
			"status": models.MessageFailed,
			"error":  sendErr.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send the message."})
		return
	}

	utils.DB.Model(&message).Updates(map[string]interface{}{
		"status":       models.MessageSent,
		"provider_ref": providerRef,
		"sent_at":      time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Message sent to " + recipient})
}
