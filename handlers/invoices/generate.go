package invoices

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GenerateMonthlyInvoices creates one invoice per active lease for a
// billing month. Issue date is the 1st, due date the 5th. Leases that
// already have an invoice for the month are skipped, so the endpoint
// can run repeatedly.
func GenerateMonthlyInvoices(c *gin.Context) {
	var input struct {
		Month      string `json:"month"` // YYYY-MM, defaults to the current month
		PropertyID string `json:"property_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	month := input.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month. Use the YYYY-MM format."})
		return
	}

	issueDate := month + "-01"
	dueDate := month + "-05"

	query := utils.DB.Preload("Unit").Where("leases.status = ?", models.LeaseActive)
	if input.PropertyID != "" {
		query = query.Select("leases.*").
			Joins("JOIN units ON units.id = leases.unit_id").
			Where("units.property_id = ?", input.PropertyID)
	}

	var leases []models.Lease
	if err := query.Find(&leases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leases."})
		return
	}

	var created, skipped int
	for _, lease := range leases {
		invoiceNumber := NextInvoiceNumber(issueDate, lease.ID)

		var existing models.Invoice
		if err := utils.DB.Where("invoice_number = ?", invoiceNumber).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		err := utils.DB.Transaction(func(tx *gorm.DB) error {
			return generateLeaseInvoice(tx, &lease, invoiceNumber, issueDate, dueDate, month)
		})
		if err != nil {
			log.Printf("Error generating invoice for lease %s: %v", lease.ID, err)
			continue
		}
		created++
	}

	c.JSON(http.StatusOK, gin.H{
		"month":   month,
		"created": created,
		"skipped": skipped,
	})
}

func generateLeaseInvoice(tx *gorm.DB, lease *models.Lease, invoiceNumber, issueDate, dueDate, month string) error {
	invoice := models.Invoice{
		InvoiceNumber: invoiceNumber,
		LeaseID:       lease.ID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Status:        models.InvoicePending,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		return err
	}

	items := []models.InvoiceItem{{
		InvoiceID:   invoice.ID,
		Description: fmt.Sprintf("Monthly rent for %s", month),
		Category:    models.ItemRent,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   lease.MonthlyRent,
		Amount:      lease.MonthlyRent,
	}}

	if lease.Unit != nil {
		// Pull in water readings for the unit that have not been billed.
		var readings []models.WaterReading
		if err := tx.Where("unit_id = ? AND invoiced = 0", lease.UnitID).Find(&readings).Error; err != nil {
			return err
		}
		water := decimal.Zero
		consumption := decimal.Zero
		for _, r := range readings {
			water = water.Add(r.TotalAmount)
			consumption = consumption.Add(r.Consumption)
		}
		if water.IsPositive() {
			items = append(items, models.InvoiceItem{
				InvoiceID:   invoice.ID,
				Description: fmt.Sprintf("Water charges (%s units)", consumption.String()),
				Category:    models.ItemWater,
				Quantity:    consumption,
				UnitPrice:   decimal.Zero,
				Amount:      water,
			})
			if err := tx.Model(&models.WaterReading{}).Where("unit_id = ? AND invoiced = 0", lease.UnitID).
				Update("invoiced", 1).Error; err != nil {
				return err
			}
		}

		items = append(items, recurringChargeItems(invoice.ID, lease.Unit.ChargeAmounts)...)
	}

	for i := range items {
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}

	return RecalculateTotal(tx, invoice.ID)
}

// recurringChargeItems expands a unit's charge amounts JSON (charge
// name to amount) into invoice lines. Zero amounts are skipped.
func recurringChargeItems(invoiceID string, raw []byte) []models.InvoiceItem {
	if len(raw) == 0 {
		return nil
	}

	var charges map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &charges); err != nil {
		log.Printf("Skipping malformed charge amounts: %v", err)
		return nil
	}

	var items []models.InvoiceItem
	for name, amount := range charges {
		if !amount.IsPositive() {
			continue
		}
		items = append(items, models.InvoiceItem{
			InvoiceID:   invoiceID,
			Description: name,
			Category:    models.ItemCharge,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   amount,
			Amount:      amount,
		})
	}
	return items
}
