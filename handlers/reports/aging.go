package reports

import (
	"net/http"
	"time"

	"leasemaster-server/billing"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

// GetAgingReport buckets outstanding balances per tenant by how long
// they are overdue, optionally scoped to one property.
func GetAgingReport(c *gin.Context) {
	query := utils.DB.Preload("Lease").Preload("Lease.Unit").Preload("Lease.Tenant").
		Where("invoices.status <> ?", models.InvoiceDraft)
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Select("invoices.*").
			Joins("JOIN leases ON leases.id = invoices.lease_id").
			Joins("JOIN units ON units.id = leases.unit_id").
			Where("units.property_id = ?", propertyID)
	}

	var invoiceList []models.Invoice
	if err := query.Find(&invoiceList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices."})
		return
	}

	var paymentList []models.Payment
	if err := utils.DB.Find(&paymentList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments."})
		return
	}

	rows := billing.AgingReport(invoiceList, paymentList, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"as_of": time.Now().Format("2006-01-02"),
		"rows":  rows,
	})
}
