package activity

import (
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

// Record writes one audit entry. Failures are logged by gorm and never
// interrupt the request that triggered them.
func Record(userID, action, entityType, entityID, details string) {
	entry := models.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	utils.DB.Create(&entry)
}

func GetActivityLogs(c *gin.Context) {
	query := utils.DB.Order("created_at desc").Limit(200)
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	var logs []models.ActivityLog
	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity logs."})
		return
	}

	c.JSON(http.StatusOK, logs)
}
