package water

import (
	"log"
	"net/http"
	"time"

	"leasemaster-server/billing"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func GetWaterReadings(c *gin.Context) {
	query := utils.DB.Order("reading_date desc, created_at desc")
	if unitID := c.Query("unit_id"); unitID != "" {
		query = query.Where("unit_id = ?", unitID)
	}
	if month := c.Query("month"); month != "" {
		query = query.Where("reading_date LIKE ?", month+"%")
	}

	var readings []models.WaterReading
	if err := query.Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve water readings."})
		return
	}

	c.JSON(http.StatusOK, readings)
}

// GetUnitWaterReadings lists one unit's readings, newest first.
func GetUnitWaterReadings(c *gin.Context) {
	var readingList []models.WaterReading
	if err := utils.DB.Where("unit_id = ?", c.Param("id")).
		Order("reading_date desc, created_at desc").Find(&readingList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve water readings."})
		return
	}

	c.JSON(http.StatusOK, readingList)
}

// GetWaterReadingsByStatus filters readings on billing state: pending
// readings are not yet on an invoice, invoiced ones are.
func GetWaterReadingsByStatus(c *gin.Context) {
	var invoiced int
	switch c.Param("status") {
	case "pending":
		invoiced = 0
	case "invoiced":
		invoiced = 1
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be pending or invoiced."})
		return
	}

	var readingList []models.WaterReading
	if err := utils.DB.Where("invoiced = ?", invoiced).
		Order("reading_date desc").Find(&readingList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve water readings."})
		return
	}

	c.JSON(http.StatusOK, readingList)
}

// CreateWaterReading records a meter reading. The server looks up the
// previous reading and the billing rate itself; a current reading
// below the previous one is rejected.
func CreateWaterReading(c *gin.Context) {
	var input struct {
		UnitID         string          `json:"unit_id"`
		ReadingDate    string          `json:"reading_date"`
		CurrentReading decimal.Decimal `json:"current_reading"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.UnitID == "" || input.ReadingDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Unit and reading date are required."})
		return
	}

	var unit models.Unit
	if err := utils.DB.Where("id = ?", input.UnitID).First(&unit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		return
	}

	previous := latestCurrentReading(input.UnitID)
	if input.CurrentReading.LessThan(previous) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current reading cannot be lower than the previous reading."})
		return
	}

	rate := resolveRate(&unit)
	consumption := billing.Consumption(input.CurrentReading, previous)

	reading := models.WaterReading{
		UnitID:          input.UnitID,
		ReadingDate:     input.ReadingDate,
		PreviousReading: previous,
		CurrentReading:  input.CurrentReading,
		Consumption:     consumption,
		RatePerUnit:     rate,
		TotalAmount:     billing.WaterCharge(consumption, rate),
		LastModifiedAt:  time.Now(),
	}

	if err := utils.DB.Create(&reading).Error; err != nil {
		log.Printf("Error creating water reading: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create water reading."})
		return
	}

	c.JSON(http.StatusCreated, reading)
}

// UpdateWaterReading corrects a reading's current value and recomputes
// the derived figures.
func UpdateWaterReading(c *gin.Context) {
	var reading models.WaterReading
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&reading).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Water reading not found"})
		return
	}

	if reading.Invoiced == 1 {
		c.JSON(http.StatusConflict, gin.H{"error": "This reading is already invoiced and cannot be changed."})
		return
	}

	var input struct {
		CurrentReading decimal.Decimal `json:"current_reading"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	if input.CurrentReading.LessThan(reading.PreviousReading) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current reading cannot be lower than the previous reading."})
		return
	}

	consumption := billing.Consumption(input.CurrentReading, reading.PreviousReading)
	updates := map[string]interface{}{
		"current_reading":  input.CurrentReading,
		"consumption":      consumption,
		"total_amount":     billing.WaterCharge(consumption, reading.RatePerUnit),
		"last_modified_at": time.Now(),
	}

	if err := utils.DB.Model(&reading).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update water reading."})
		return
	}

	c.JSON(http.StatusOK, reading)
}

func DeleteWaterReading(c *gin.Context) {
	var reading models.WaterReading
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&reading).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Water reading not found"})
		return
	}

	if reading.Invoiced == 1 {
		c.JSON(http.StatusConflict, gin.H{"error": "This reading is already invoiced and cannot be deleted."})
		return
	}

	if err := utils.DB.Delete(&reading).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete water reading."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Water reading deleted."})
}

// latestCurrentReading returns the newest reading's current value for
// a unit, or zero for a fresh meter. Newest means the most recently
// modified, falling back to creation time.
func latestCurrentReading(unitID string) decimal.Decimal {
	var readings []models.WaterReading
	if err := utils.DB.Where("unit_id = ?", unitID).Find(&readings).Error; err != nil {
		return decimal.Zero
	}
	latest := billing.LatestReadingPerUnit(readings)
	if r, ok := latest[unitID]; ok {
		return r.CurrentReading
	}
	return decimal.Zero
}

// resolveRate applies the unit override, then the active lease, then
// the default rate.
func resolveRate(unit *models.Unit) decimal.Decimal {
	var leases []models.Lease
	utils.DB.Where("unit_id = ?", unit.ID).Find(&leases)
	return billing.ResolveWaterRate(unit, leases, time.Now().Format("2006-01-02"))
}
