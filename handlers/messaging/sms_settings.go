package messaging

import (
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

// CredentialsForProperty returns the property's own SMS account when
// one is configured and active, otherwise the environment defaults.
func CredentialsForProperty(propertyID string) utils.SmsCredentials {
	if propertyID != "" {
		var settings models.PropertySmsSettings
		if err := utils.DB.Where("property_id = ? AND is_active = 1", propertyID).First(&settings).Error; err == nil {
			return utils.SmsCredentials{
				APIKey:    settings.APIKey,
				PartnerID: settings.PartnerID,
				ShortCode: settings.ShortCode,
			}
		}
	}
	return utils.DefaultSmsCredentials()
}

func GetSmsSettings(c *gin.Context) {
	var settings models.PropertySmsSettings
	if err := utils.DB.Where("property_id = ?", c.Param("id")).First(&settings).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No SMS settings for this property"})
		return
	}

	// The API key stays server-side.
	c.JSON(http.StatusOK, gin.H{
		"id":          settings.ID,
		"property_id": settings.PropertyID,
		"partner_id":  settings.PartnerID,
		"short_code":  settings.ShortCode,
		"is_active":   settings.IsActive == 1,
	})
}

// UpsertSmsSettings creates or replaces a property's SMS account.
func UpsertSmsSettings(c *gin.Context) {
	propertyID := c.Param("id")

	var property models.Property
	if err := utils.DB.Where("id = ?", propertyID).First(&property).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	var input struct {
		APIKey    string `json:"api_key"`
		PartnerID string `json:"partner_id"`
		ShortCode string `json:"short_code"`
		IsActive  *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.APIKey == "" || input.PartnerID == "" || input.ShortCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. API key, partner ID and short code are required."})
		return
	}

	isActive := 1
	if input.IsActive != nil && !*input.IsActive {
		isActive = 0
	}

	var settings models.PropertySmsSettings
	if err := utils.DB.Where("property_id = ?", propertyID).First(&settings).Error; err == nil {
		updates := map[string]interface{}{
			"api_key":    input.APIKey,
			"partner_id": input.PartnerID,
			"short_code": input.ShortCode,
			"is_active":  isActive,
		}
		if err := utils.DB.Model(&settings).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update SMS settings."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "SMS settings updated."})
		return
	}

	settings = models.PropertySmsSettings{
		PropertyID: propertyID,
		APIKey:     input.APIKey,
		PartnerID:  input.PartnerID,
		ShortCode:  input.ShortCode,
		IsActive:   isActive,
	}
	if err := utils.DB.Create(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save SMS settings."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "SMS settings saved."})
}

// GetSmsBalance reports the remaining gateway credit for a property's
// account, or the default account when none is set.
func GetSmsBalance(c *gin.Context) {
	creds := CredentialsForProperty(c.Query("property_id"))

	balance, err := utils.GetSMSBalance(creds)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch SMS balance."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
