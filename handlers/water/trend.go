package water

import (
	"net/http"
	"strconv"
	"time"

	"leasemaster-server/billing"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

// GetWaterTrend returns monthly consumption totals for the recent
// months, optionally scoped to one property. The month param anchors
// the window; it defaults to the current month.
func GetWaterTrend(c *gin.Context) {
	months := 6
	if m := c.Query("months"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 24 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Months must be between 1 and 24."})
			return
		}
		months = parsed
	}

	end := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Month must be in YYYY-MM format."})
			return
		}
		end = parsed
	}

	query := utils.DB.Model(&models.WaterReading{})
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Select("water_readings.*").
			Joins("JOIN units ON units.id = water_readings.unit_id").
			Where("units.property_id = ?", propertyID)
	}

	var readingList []models.WaterReading
	if err := query.Find(&readingList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve water readings."})
		return
	}

	c.JSON(http.StatusOK, billing.ConsumptionTrend(readingList, end, months))
}
