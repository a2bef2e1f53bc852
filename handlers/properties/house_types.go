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

func GetHouseTypes(c *gin.Context) {
	query := utils.DB.Order("created_at desc")
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var houseTypes []models.HouseType
	if err := query.Find(&houseTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve house types."})
		return
	}

	c.JSON(http.StatusOK, houseTypes)
}

func CreateHouseType(c *gin.Context) {
	var input struct {
		PropertyID        string          `json:"property_id"`
		Name              string          `json:"name"`
		Description       string          `json:"description"`
		BaseRentAmount    decimal.Decimal `json:"base_rent_amount"`
		RentDepositAmount decimal.Decimal `json:"rent_deposit_amount"`
		WaterRatePerUnit  decimal.Decimal `json:"water_rate_per_unit"`
		WaterRateType     string          `json:"water_rate_type"`
		WaterFlatRate     decimal.Decimal `json:"water_flat_rate"`
		ChargeAmounts     datatypes.JSON  `json:"charge_amounts"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.PropertyID == "" || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Property and name are required."})
		return
	}

	var property models.Property
	if err := utils.DB.Where("id = ?", input.PropertyID).First(&property).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if input.WaterRatePerUnit.IsZero() {
		input.WaterRatePerUnit = decimal.NewFromFloat(15.50)
	}
	if input.WaterRateType == "" {
		input.WaterRateType = models.WaterRateUnitBased
	}

	houseType := models.HouseType{
		PropertyID:        input.PropertyID,
		Name:              input.Name,
		Description:       input.Description,
		BaseRentAmount:    input.BaseRentAmount,
		RentDepositAmount: input.RentDepositAmount,
		WaterRatePerUnit:  input.WaterRatePerUnit,
		WaterRateType:     input.WaterRateType,
		WaterFlatRate:     input.WaterFlatRate,
		ChargeAmounts:     input.ChargeAmounts,
		IsActive:          true,
	}

	if err := utils.DB.Create(&houseType).Error; err != nil {
		log.Printf("Error creating house type: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create house type."})
		return
	}

	c.JSON(http.StatusCreated, houseType)
}

func UpdateHouseType(c *gin.Context) {
	var houseType models.HouseType
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&houseType).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "House type not found"})
		return
	}

	var input struct {
		Name              *string          `json:"name"`
		Description       *string          `json:"description"`
		BaseRentAmount    *decimal.Decimal `json:"base_rent_amount"`
		RentDepositAmount *decimal.Decimal `json:"rent_deposit_amount"`
		WaterRatePerUnit  *decimal.Decimal `json:"water_rate_per_unit"`
		WaterRateType     *string          `json:"water_rate_type"`
		WaterFlatRate     *decimal.Decimal `json:"water_flat_rate"`
		ChargeAmounts     *datatypes.JSON  `json:"charge_amounts"`
		IsActive          *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.BaseRentAmount != nil {
		updates["base_rent_amount"] = *input.BaseRentAmount
	}
	if input.RentDepositAmount != nil {
		updates["rent_deposit_amount"] = *input.RentDepositAmount
	}
	if input.WaterRatePerUnit != nil {
		updates["water_rate_per_unit"] = *input.WaterRatePerUnit
	}
	if input.WaterRateType != nil {
		updates["water_rate_type"] = *input.WaterRateType
	}
	if input.WaterFlatRate != nil {
		updates["water_flat_rate"] = *input.WaterFlatRate
	}
	if input.ChargeAmounts != nil {
		updates["charge_amounts"] = *input.ChargeAmounts
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&houseType).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update house type."})
			return
		}
	}

	c.JSON(http.StatusOK, houseType)
}

func DeleteHouseType(c *gin.Context) {
	var count int64
	utils.DB.Model(&models.Unit{}).Where("house_type_id = ?", c.Param("id")).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "House type still has units. Remove them first."})
		return
	}

	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.HouseType{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete house type."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "House type deleted."})
}
