package properties

import (
	"log"
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func GetUnits(c *gin.Context) {
	query := utils.DB.Order("unit_number asc")
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve units."})
		return
	}

	c.JSON(http.StatusOK, units)
}

func GetUnit(c *gin.Context) {
	var unit models.Unit
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&unit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		return
	}

	c.JSON(http.StatusOK, unit)
}

// CreateUnit adds a unit under a house type. Rent and deposit default
// to the house type's amounts when not given.
func CreateUnit(c *gin.Context) {
	var input struct {
		PropertyID        string          `json:"property_id"`
		HouseTypeID       string          `json:"house_type_id"`
		UnitNumber        string          `json:"unit_number"`
		RentAmount        decimal.Decimal `json:"rent_amount"`
		RentDepositAmount decimal.Decimal `json:"rent_deposit_amount"`
		WaterRateAmount   decimal.Decimal `json:"water_rate_amount"`
		ChargeAmounts     datatypes.JSON  `json:"charge_amounts"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.PropertyID == "" || input.HouseTypeID == "" || input.UnitNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Property, house type and unit number are required."})
		return
	}

	var houseType models.HouseType
	if err := utils.DB.Where("id = ? AND property_id = ?", input.HouseTypeID, input.PropertyID).First(&houseType).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "House type not found for this property"})
		return
	}

	var existing models.Unit
	if err := utils.DB.Where("property_id = ? AND unit_number = ?", input.PropertyID, input.UnitNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A unit with this number already exists in the property."})
		return
	}

	if input.RentAmount.IsZero() {
		input.RentAmount = houseType.BaseRentAmount
	}
	if input.RentDepositAmount.IsZero() {
		input.RentDepositAmount = houseType.RentDepositAmount
	}

	unit := models.Unit{
		PropertyID:        input.PropertyID,
		HouseTypeID:       input.HouseTypeID,
		UnitNumber:        input.UnitNumber,
		RentAmount:        input.RentAmount,
		RentDepositAmount: input.RentDepositAmount,
		WaterRateAmount:   input.WaterRateAmount,
		ChargeAmounts:     input.ChargeAmounts,
		Status:            models.UnitVacant,
	}

	if err := utils.DB.Create(&unit).Error; err != nil {
		log.Printf("Error creating unit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create unit."})
		return
	}

	c.JSON(http.StatusCreated, unit)
}

func UpdateUnit(c *gin.Context) {
	var unit models.Unit
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&unit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		return
	}

	var input struct {
		UnitNumber        *string          `json:"unit_number"`
		RentAmount        *decimal.Decimal `json:"rent_amount"`
		RentDepositAmount *decimal.Decimal `json:"rent_deposit_amount"`
		WaterRateAmount   *decimal.Decimal `json:"water_rate_amount"`
		ChargeAmounts     *datatypes.JSON  `json:"charge_amounts"`
		Status            *string          `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.UnitNumber != nil {
		updates["unit_number"] = *input.UnitNumber
	}
	if input.RentAmount != nil {
		updates["rent_amount"] = *input.RentAmount
	}
	if input.RentDepositAmount != nil {
		updates["rent_deposit_amount"] = *input.RentDepositAmount
	}
	if input.WaterRateAmount != nil {
		updates["water_rate_amount"] = *input.WaterRateAmount
	}
	if input.ChargeAmounts != nil {
		updates["charge_amounts"] = *input.ChargeAmounts
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&unit).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update unit."})
			return
		}
	}

	c.JSON(http.StatusOK, unit)
}

func DeleteUnit(c *gin.Context) {
	var count int64
	utils.DB.Model(&models.Lease{}).Where("unit_id = ? AND status = ?", c.Param("id"), models.LeaseActive).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Unit has an active lease and cannot be deleted."})
		return
	}

	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.Unit{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete unit."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted."})
}

// BulkDeleteUnits removes several vacant units at once. Units with an
// active lease are skipped and reported back.
func BulkDeleteUnits(c *gin.Context) {
	var input struct {
		UnitIDs []string `json:"unit_ids"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || len(input.UnitIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Provide at least one unit ID."})
		return
	}

	var deleted, skipped []string
	for _, unitID := range input.UnitIDs {
		var count int64
		utils.DB.Model(&models.Lease{}).Where("unit_id = ? AND status = ?", unitID, models.LeaseActive).Count(&count)
		if count > 0 {
			skipped = append(skipped, unitID)
			continue
		}
		if err := utils.DB.Where("id = ?", unitID).Delete(&models.Unit{}).Error; err != nil {
			log.Printf("Error deleting unit %s: %v", unitID, err)
			skipped = append(skipped, unitID)
			continue
		}
		deleted = append(deleted, unitID)
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"skipped": skipped,
	})
}
