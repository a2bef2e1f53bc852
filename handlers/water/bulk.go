package water

import (
	"log"
	"net/http"
	"time"

	"leasemaster-server/billing"
	"leasemaster-server/models"
	"leasemaster-server/readings"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BulkUpsertWaterReadings saves meter values for many units in one
// call. Unlike the single-reading endpoint, a value below the previous
// reading is clamped to zero consumption rather than rejected, so one
// bad meter never blocks the whole sheet.
func BulkUpsertWaterReadings(c *gin.Context) {
	var input struct {
		ReadingDate string `json:"reading_date"`
		Entries     []struct {
			UnitID         string          `json:"unit_id"`
			CurrentReading decimal.Decimal `json:"current_reading"`
		} `json:"entries"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.ReadingDate == "" || len(input.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Reading date and entries are required."})
		return
	}

	var saved, failed int
	results := make([]gin.H, 0, len(input.Entries))
	for _, entry := range input.Entries {
		reading, err := upsertReading(entry.UnitID, input.ReadingDate, entry.CurrentReading)
		if err != nil {
			log.Printf("Bulk reading failed for unit %s: %v", entry.UnitID, err)
			failed++
			results = append(results, gin.H{"unit_id": entry.UnitID, "error": err.Error()})
			continue
		}
		saved++
		results = append(results, gin.H{"unit_id": entry.UnitID, "reading": reading})
	}

	c.JSON(http.StatusOK, gin.H{
		"saved":   saved,
		"failed":  failed,
		"results": results,
	})
}

// upsertReading updates the unit's reading for the date if one exists,
// otherwise creates it. Consumption is clamped at zero.
func upsertReading(unitID, readingDate string, current decimal.Decimal) (*models.WaterReading, error) {
	var unit models.Unit
	if err := utils.DB.Where("id = ?", unitID).First(&unit).Error; err != nil {
		return nil, err
	}

	rate := resolveRate(&unit)

	var existing models.WaterReading
	if err := utils.DB.Where("unit_id = ? AND reading_date = ?", unitID, readingDate).First(&existing).Error; err == nil {
		consumption := billing.ClampedConsumption(current, existing.PreviousReading)
		updates := map[string]interface{}{
			"current_reading":  current,
			"consumption":      consumption,
			"rate_per_unit":    rate,
			"total_amount":     billing.WaterCharge(consumption, rate),
			"last_modified_at": time.Now(),
		}
		if err := utils.DB.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	previous := latestCurrentReading(unitID)
	consumption := billing.ClampedConsumption(current, previous)

	reading := models.WaterReading{
		UnitID:          unitID,
		ReadingDate:     readingDate,
		PreviousReading: previous,
		CurrentReading:  current,
		Consumption:     consumption,
		RatePerUnit:     rate,
		TotalAmount:     billing.WaterCharge(consumption, rate),
		LastModifiedAt:  time.Now(),
	}
	if err := utils.DB.Create(&reading).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

// autoSaver coalesces per-unit keystrokes from the bulk entry sheet.
// Values land through the same clamped upsert as the bulk endpoint.
var autoSaver = readings.NewAutoSaver(func(unitID, value string) error {
	current, err := decimal.NewFromString(value)
	if err != nil {
		return err
	}
	_, err = upsertReading(unitID, time.Now().Format("2006-01-02"), current)
	return err
})

// AutoSaveInput feeds one keystroke or blur event into the debounced
// saver and reports the unit's save state.
func AutoSaveInput(c *gin.Context) {
	var input struct {
		UnitID string `json:"unit_id"`
		Value  string `json:"value"`
		Event  string `json:"event"` // input or blur
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.UnitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. A unit is required."})
		return
	}

	switch input.Event {
	case "blur":
		autoSaver.Blur(input.UnitID)
	default:
		if input.Value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A value is required for input events."})
			return
		}
		autoSaver.Input(input.UnitID, input.Value)
	}

	c.JSON(http.StatusOK, gin.H{
		"unit_id": input.UnitID,
		"state":   autoSaver.State(input.UnitID),
	})
}

// BulkEntryStatus reports the save state of every unit on the entry
// sheet so the client can render per-row indicators after a reload.
func BulkEntryStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": autoSaver.States()})
}

// AutoSaveState reports the save state for a unit on the entry sheet.
func AutoSaveState(c *gin.Context) {
	unitID := c.Param("id")
	state := autoSaver.State(unitID)

	resp := gin.H{"unit_id": unitID, "state": state}
	if pending, ok := autoSaver.Pending(unitID); ok {
		resp["pending_value"] = pending
	}
	c.JSON(http.StatusOK, resp)
}
