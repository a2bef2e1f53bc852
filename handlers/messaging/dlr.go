package messaging

import (
	"log"
	"net/http"
	"strings"
	"time"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeliveryReport receives the gateway's delivery callback and updates
// the matching recipient and message rows by provider reference. The
// endpoint is unauthenticated; unknown references are acknowledged and
// dropped.
func DeliveryReport(c *gin.Context) {
	var input struct {
		MessageID string `json:"messageid"`
		Status    string `json:"status"`
		Mobile    string `json:"mobile"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.MessageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery report payload."})
		return
	}

	status := models.MessageDelivered
	if !delivered(input.Status) {
		status = models.MessageFailed
	}

	var recipient models.MessageRecipient
	if err := utils.DB.Where("provider_ref = ?", input.MessageID).First(&recipient).Error; err == nil {
		updates := map[string]interface{}{"status": status}
		if status == models.MessageDelivered {
			updates["delivered_at"] = time.Now()
		}
		utils.DB.Model(&recipient).Updates(updates)

		if status == models.MessageDelivered {
			utils.DB.Model(&models.BulkMessage{}).Where("id = ?", recipient.BulkMessageID).
				UpdateColumn("delivered_count", gorm.Expr("delivered_count + 1"))
		}
	} else {
		result := utils.DB.Model(&models.Message{}).Where("provider_ref = ?", input.MessageID).
			Update("status", status)
		if result.RowsAffected == 0 {
			log.Printf("Delivery report for unknown message %s", input.MessageID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery report processed."})
}

func delivered(status string) bool {
	switch strings.ToLower(status) {
	case "delivered", "deliveredtoterminal", "success":
		return true
	}
	return false
}
