package reports

import (
	"net/http"
	"time"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardStats aggregates the portfolio numbers the dashboard
// shows: occupancy, monthly billing, collections and the collection
// rate.
func GetDashboardStats(c *gin.Context) {
	var totalProperties, totalUnits, occupiedUnits, vacantUnits, activeLeases, totalTenants int64
	utils.DB.Model(&models.Property{}).Count(&totalProperties)
	utils.DB.Model(&models.Unit{}).Count(&totalUnits)
	utils.DB.Model(&models.Unit{}).Where("status = ?", models.UnitOccupied).Count(&occupiedUnits)
	utils.DB.Model(&models.Unit{}).Where("status = ?", models.UnitVacant).Count(&vacantUnits)
	utils.DB.Model(&models.Lease{}).Where("status = ?", models.LeaseActive).Count(&activeLeases)
	utils.DB.Model(&models.Tenant{}).Count(&totalTenants)

	month := time.Now().Format("2006-01")

	var monthInvoices []models.Invoice
	utils.DB.Where("issue_date LIKE ? AND status <> ?", month+"%", models.InvoiceDraft).Find(&monthInvoices)

	invoiced := decimal.Zero
	for _, inv := range monthInvoices {
		invoiced = invoiced.Add(inv.TotalAmount)
	}

	var monthPayments []models.Payment
	utils.DB.Where("payment_date LIKE ?", month+"%").Find(&monthPayments)

	collected := decimal.Zero
	for _, p := range monthPayments {
		if p.Counts() {
			collected = collected.Add(p.Amount)
		}
	}

	// Collection rate is collected over invoiced for the month, capped
	// at 100.
	collectionRate := decimal.Zero
	if invoiced.IsPositive() {
		collectionRate = collected.Div(invoiced).Mul(decimal.NewFromInt(100)).Round(1)
		if collectionRate.GreaterThan(decimal.NewFromInt(100)) {
			collectionRate = decimal.NewFromInt(100)
		}
	}

	occupancyRate := decimal.Zero
	if totalUnits > 0 {
		occupancyRate = decimal.NewFromInt(occupiedUnits).
			Div(decimal.NewFromInt(totalUnits)).Mul(decimal.NewFromInt(100)).Round(1)
	}

	var pendingPayments int64
	utils.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentPending).Count(&pendingPayments)

	c.JSON(http.StatusOK, gin.H{
		"total_properties": totalProperties,
		"total_units":      totalUnits,
		"occupied_units":   occupiedUnits,
		"vacant_units":     vacantUnits,
		"occupancy_rate":   occupancyRate,
		"active_leases":    activeLeases,
		"total_tenants":    totalTenants,
		"month":            month,
		"invoiced":         invoiced,
		"collected":        collected,
		"collection_rate":  collectionRate,
		"pending_payments": pendingPayments,
	})
}
