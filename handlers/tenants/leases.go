package tenants

import (
	"log"
	"net/http"
	"time"

	"leasemaster-server/handlers/activity"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func GetLeases(c *gin.Context) {
	query := utils.DB.Preload("Unit").Preload("Tenant").Order("created_at desc")
	if unitID := c.Query("unit_id"); unitID != "" {
		query = query.Where("unit_id = ?", unitID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var leases []models.Lease
	if err := query.Find(&leases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leases."})
		return
	}

	c.JSON(http.StatusOK, leases)
}

func GetLease(c *gin.Context) {
	var lease models.Lease
	if err := utils.DB.Preload("Unit").Preload("Tenant").Where("id = ?", c.Param("id")).First(&lease).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	c.JSON(http.StatusOK, lease)
}

// CreateLease signs a tenant onto a unit. A unit can only hold one
// active lease at a time; the unit flips to occupied.
func CreateLease(c *gin.Context) {
	var input struct {
		UnitID          string          `json:"unit_id"`
		TenantID        string          `json:"tenant_id"`
		StartDate       string          `json:"start_date"`
		EndDate         string          `json:"end_date"`
		MonthlyRent     decimal.Decimal `json:"monthly_rent"`
		DepositAmount   decimal.Decimal `json:"deposit_amount"`
		WaterRateAmount decimal.Decimal `json:"water_rate_amount"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.UnitID == "" || input.TenantID == "" || input.StartDate == "" || input.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Unit, tenant and lease period are required."})
		return
	}

	if input.StartDate >= input.EndDate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lease end date must be after the start date."})
		return
	}

	var unit models.Unit
	if err := utils.DB.Where("id = ?", input.UnitID).First(&unit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		return
	}

	var tenant models.Tenant
	if err := utils.DB.Where("id = ?", input.TenantID).First(&tenant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	var activeCount int64
	utils.DB.Model(&models.Lease{}).Where("unit_id = ? AND status = ?", input.UnitID, models.LeaseActive).Count(&activeCount)
	if activeCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This unit already has an active lease."})
		return
	}

	if input.MonthlyRent.IsZero() {
		input.MonthlyRent = unit.RentAmount
	}
	if input.DepositAmount.IsZero() {
		input.DepositAmount = unit.RentDepositAmount
	}

	lease := models.Lease{
		UnitID:          input.UnitID,
		TenantID:        input.TenantID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		MonthlyRent:     input.MonthlyRent,
		DepositAmount:   input.DepositAmount,
		WaterRateAmount: input.WaterRateAmount,
		Status:          models.LeaseActive,
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lease).Error; err != nil {
			return err
		}
		return tx.Model(&models.Unit{}).Where("id = ?", input.UnitID).Update("status", models.UnitOccupied).Error
	})
	if err != nil {
		log.Printf("Error creating lease: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lease."})
		return
	}

	if userInterface, exists := c.Get("user"); exists {
		user := userInterface.(models.User)
		activity.Record(user.ID, "lease_created", "lease", lease.ID, "Unit "+unit.UnitNumber+" leased to "+tenant.FullName)
	}

	c.JSON(http.StatusCreated, lease)
}

func UpdateLease(c *gin.Context) {
	var lease models.Lease
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&lease).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	var input struct {
		EndDate         *string          `json:"end_date"`
		MonthlyRent     *decimal.Decimal `json:"monthly_rent"`
		WaterRateAmount *decimal.Decimal `json:"water_rate_amount"`
		Status          *string          `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if input.MonthlyRent != nil {
		updates["monthly_rent"] = *input.MonthlyRent
	}
	if input.WaterRateAmount != nil {
		updates["water_rate_amount"] = *input.WaterRateAmount
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&lease).Updates(updates).Error; err != nil {
				return err
			}
		}
		// Ending the lease frees the unit.
		if input.Status != nil && *input.Status != models.LeaseActive {
			return syncUnitStatus(tx, lease.UnitID)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating lease: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lease."})
		return
	}

	c.JSON(http.StatusOK, lease)
}

// TerminateLease ends a lease early and frees the unit.
func TerminateLease(c *gin.Context) {
	var lease models.Lease
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&lease).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	if lease.Status != models.LeaseActive {
		c.JSON(http.StatusConflict, gin.H{"error": "Only active leases can be terminated."})
		return
	}

	today := time.Now().Format("2006-01-02")
	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&lease).Updates(map[string]interface{}{
			"status":   models.LeaseTerminated,
			"end_date": today,
		}).Error; err != nil {
			return err
		}
		return syncUnitStatus(tx, lease.UnitID)
	})
	if err != nil {
		log.Printf("Error terminating lease: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to terminate lease."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lease terminated."})
}

// DeleteLease removes a lease outright. Leases with billing history
// keep their records and can only be terminated.
func DeleteLease(c *gin.Context) {
	var lease models.Lease
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&lease).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	var invoiceCount int64
	utils.DB.Model(&models.Invoice{}).Where("lease_id = ?", lease.ID).Count(&invoiceCount)
	var paymentCount int64
	utils.DB.Model(&models.Payment{}).Where("lease_id = ?", lease.ID).Count(&paymentCount)
	if invoiceCount > 0 || paymentCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This lease has invoices or payments and cannot be deleted. Terminate it instead."})
		return
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&lease).Error; err != nil {
			return err
		}
		return syncUnitStatus(tx, lease.UnitID)
	})
	if err != nil {
		log.Printf("Error deleting lease: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lease."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lease deleted."})
}

// syncUnitStatus sets the unit occupied when it still has an active
// lease, vacant otherwise. Maintenance units are left alone.
func syncUnitStatus(tx *gorm.DB, unitID string) error {
	var unit models.Unit
	if err := tx.Where("id = ?", unitID).First(&unit).Error; err != nil {
		return err
	}
	if unit.Status == models.UnitMaintenance {
		return nil
	}

	var activeCount int64
	if err := tx.Model(&models.Lease{}).Where("unit_id = ? AND status = ?", unitID, models.LeaseActive).Count(&activeCount).Error; err != nil {
		return err
	}

	status := models.UnitVacant
	if activeCount > 0 {
		status = models.UnitOccupied
	}
	return tx.Model(&models.Unit{}).Where("id = ?", unitID).Update("status", status).Error
}
