package reports

import (
	"net/http"

	"leasemaster-server/billing"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetTenantStatement lists charges and payments in date order with a
// running balance. Scope by lease_id for one lease or tenant_id for
// everything the tenant holds; from/to bound the period.
func GetTenantStatement(c *gin.Context) {
	leaseID := c.Query("lease_id")
	tenantID := c.Query("tenant_id")
	if leaseID == "" && tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A lease or tenant is required."})
		return
	}

	var leaseIDs []string
	resp := gin.H{}

	if leaseID != "" {
		var lease models.Lease
		if err := utils.DB.Preload("Unit").Preload("Tenant").Where("id = ?", leaseID).First(&lease).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
			return
		}
		leaseIDs = []string{lease.ID}
		if lease.Tenant != nil {
			resp["tenant_name"] = lease.Tenant.FullName
		}
		if lease.Unit != nil {
			resp["unit_number"] = lease.Unit.UnitNumber
		}
	} else {
		var tenant models.Tenant
		if err := utils.DB.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		resp["tenant_name"] = tenant.FullName

		var leases []models.Lease
		if err := utils.DB.Where("tenant_id = ?", tenantID).Find(&leases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leases."})
			return
		}
		for _, l := range leases {
			leaseIDs = append(leaseIDs, l.ID)
		}
	}

	from := c.Query("from")
	to := c.Query("to")

	invoiceQuery := utils.DB.Preload("Items").Where("lease_id IN ?", leaseIDs)
	paymentQuery := utils.DB.Where("lease_id IN ?", leaseIDs)
	if from != "" {
		invoiceQuery = invoiceQuery.Where("issue_date >= ?", from)
		paymentQuery = paymentQuery.Where("payment_date >= ?", from)
	}
	if to != "" {
		invoiceQuery = invoiceQuery.Where("issue_date <= ?", to)
		paymentQuery = paymentQuery.Where("payment_date <= ?", to)
	}

	var invoiceList []models.Invoice
	if err := invoiceQuery.Find(&invoiceList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices."})
		return
	}

	var paymentList []models.Payment
	if err := paymentQuery.Find(&paymentList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments."})
		return
	}

	lines := billing.Statement(invoiceList, paymentList)
	closing := decimal.Zero
	if len(lines) > 0 {
		closing = lines[len(lines)-1].Balance
	}

	resp["lines"] = lines
	resp["closing_balance"] = closing
	c.JSON(http.StatusOK, resp)
}
