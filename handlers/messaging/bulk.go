package messaging

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"leasemaster-server/handlers/activity"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

func GetBulkMessages(c *gin.Context) {
	query := utils.DB.Order("created_at desc").Limit(100)
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var bulks []models.BulkMessage
	if err := query.Find(&bulks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bulk messages."})
		return
	}

	c.JSON(http.StatusOK, bulks)
}

func GetBulkMessageRecipients(c *gin.Context) {
	var recipients []models.MessageRecipient
	if err := utils.DB.Where("bulk_message_id = ?", c.Param("id")).Order("created_at asc").Find(&recipients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipients."})
		return
	}

	c.JSON(http.StatusOK, recipients)
}

// SendBulkMessage fans one body out to the selected tenants. Tenant
// placeholders like {name} and {unit} are filled per recipient. The
// fan-out runs in the background; progress lands on the bulk row.
func SendBulkMessage(c *gin.Context) {
	var input struct {
		PropertyID string   `json:"property_id"`
		TenantIDs  []string `json:"tenant_ids"`
		Channel    string   `json:"channel"`
		Subject    string   `json:"subject"`
		Body       string   `json:"body"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || len(input.TenantIDs) == 0 || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Recipients and message body are required."})
		return
	}

	userInterface, _ := c.Get("user")
	user := userInterface.(models.User)

	channel := input.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}

	var tenantList []models.Tenant
	if err := utils.DB.Where("id IN ?", input.TenantIDs).Find(&tenantList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tenants."})
		return
	}
	if len(tenantList) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No matching tenants found."})
		return
	}

	bulk := models.BulkMessage{
		PropertyID: input.PropertyID,
		SenderID:   user.ID,
		Channel:    channel,
		Subject:    input.Subject,
		Body:       input.Body,
		Status:     models.BulkProcessing,
		TotalCount: len(tenantList),
	}
	if err := utils.DB.Create(&bulk).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bulk message."})
		return
	}

	activity.Record(user.ID, "bulk_message_sent", "bulk_message", bulk.ID,
		fmt.Sprintf("%s to %d recipients", channel, len(tenantList)))

	go processBulkMessage(bulk, tenantList)

	c.JSON(http.StatusAccepted, gin.H{
		"id":      bulk.ID,
		"status":  bulk.Status,
		"message": "Bulk send started.",
	})
}

func processBulkMessage(bulk models.BulkMessage, tenantList []models.Tenant) {
	creds := CredentialsForProperty(bulk.PropertyID)

	var sent, failed int
	for _, tenant := range tenantList {
		recipient := tenant.Phone
		if bulk.Channel == models.ChannelEmail {
			recipient = tenant.Email
		}

		row := models.MessageRecipient{
			BulkMessageID: bulk.ID,
			TenantID:      tenant.ID,
			Recipient:     recipient,
			Status:        models.MessageQueued,
		}
		if err := utils.DB.Create(&row).Error; err != nil {
			log.Printf("Failed to record bulk recipient for tenant %s: %v", tenant.ID, err)
			failed++
			continue
		}

		if recipient == "" {
			utils.DB.Model(&row).Updates(map[string]interface{}{
				"status": models.MessageFailed,
				"error":  "no contact for channel",
			})
			failed++
			continue
		}

		body := FillPlaceholders(bulk.Body, &tenant)

		var sendErr error
		var providerRef string
		if bulk.Channel == models.ChannelEmail {
			sendErr = utils.SendEmail(recipient, bulk.Subject, body)
		} else {
			providerRef, sendErr = utils.SendSMS(creds, recipient, body)
		}

		if sendErr != nil {
			utils.DB.Model(&row).Updates(map[string]interface{}{
				"status": models.MessageFailed,
				"error":  sendErr.Error(),
			})
			failed++
			continue
		}

		utils.DB.Model(&row).Updates(map[string]interface{}{
			"status":       models.MessageSent,
			"provider_ref": providerRef,
			"sent_at":      time.Now(),
		})
		sent++
	}

	status := models.BulkCompleted
	if sent == 0 {
		status = models.BulkFailed
	}
	utils.DB.Model(&models.BulkMessage{}).Where("id = ?", bulk.ID).Updates(map[string]interface{}{
		"status":       status,
		"sent_count":   sent,
		"failed_count": failed,
		"completed_at": time.Now(),
	})
}

// FillPlaceholders substitutes tenant details into a message body.
func FillPlaceholders(body string, tenant *models.Tenant) string {
	r := strings.NewReplacer(
		"{name}", tenant.FullName,
		"{phone}", tenant.Phone,
		"{email}", tenant.Email,
	)
	return r.Replace(body)
}
