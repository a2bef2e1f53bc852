package properties

import (
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

func GetChargeCodes(c *gin.Context) {
	query := utils.DB.Order("created_at desc")
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var chargeCodes []models.ChargeCode
	if err := query.Find(&chargeCodes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve charge codes."})
		return
	}

	c.JSON(http.StatusOK, chargeCodes)
}

func CreateChargeCode(c *gin.Context) {
	var input struct {
		PropertyID  string `json:"property_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.PropertyID == "" || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Property and name are required."})
		return
	}

	chargeCode := models.ChargeCode{
		PropertyID:  input.PropertyID,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}

	if err := utils.DB.Create(&chargeCode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create charge code."})
		return
	}

	c.JSON(http.StatusCreated, chargeCode)
}

func UpdateChargeCode(c *gin.Context) {
	var chargeCode models.ChargeCode
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&chargeCode).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Charge code not found"})
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
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
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&chargeCode).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update charge code."})
			return
		}
	}

	c.JSON(http.StatusOK, chargeCode)
}

func DeleteChargeCode(c *gin.Context) {
	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.ChargeCode{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete charge code."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Charge code deleted."})
}
