package tenants

import (
	"log"
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

func GetTenants(c *gin.Context) {
	var tenantList []models.Tenant
	if err := utils.DB.Order("created_at desc").Find(&tenantList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tenants."})
		return
	}

	c.JSON(http.StatusOK, tenantList)
}

func GetTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&tenant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func CreateTenant(c *gin.Context) {
	var input struct {
		FullName         string `json:"full_name"`
		Email            string `json:"email"`
		Phone            string `json:"phone"`
		IDNumber         string `json:"id_number"`
		EmergencyContact string `json:"emergency_contact"`
		EmergencyPhone   string `json:"emergency_phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.FullName == "" || input.Phone == "" || input.IDNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Name, phone and ID number are required."})
		return
	}

	var existing models.Tenant
	if err := utils.DB.Where("id_number = ? OR email = ?", input.IDNumber, input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A tenant with this ID number or email already exists."})
		return
	}

	tenant := models.Tenant{
		FullName:         input.FullName,
		Email:            input.Email,
		Phone:            input.Phone,
		IDNumber:         input.IDNumber,
		EmergencyContact: input.EmergencyContact,
		EmergencyPhone:   input.EmergencyPhone,
	}

	if err := utils.DB.Create(&tenant).Error; err != nil {
		log.Printf("Error creating tenant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant."})
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

func UpdateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&tenant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	var input struct {
		FullName         *string `json:"full_name"`
		Email            *string `json:"email"`
		Phone            *string `json:"phone"`
		EmergencyContact *string `json:"emergency_contact"`
		EmergencyPhone   *string `json:"emergency_phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.EmergencyContact != nil {
		updates["emergency_contact"] = *input.EmergencyContact
	}
	if input.EmergencyPhone != nil {
		updates["emergency_phone"] = *input.EmergencyPhone
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&tenant).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant."})
			return
		}
	}

	c.JSON(http.StatusOK, tenant)
}

func DeleteTenant(c *gin.Context) {
	var count int64
	utils.DB.Model(&models.Lease{}).Where("tenant_id = ? AND status = ?", c.Param("id"), models.LeaseActive).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Tenant has an active lease and cannot be deleted."})
		return
	}

	if err := utils.DB.Where("id = ?", c.Param("id")).Delete(&models.Tenant{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tenant."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted."})
}
