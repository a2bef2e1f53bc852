package invoices

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"leasemaster-server/billing"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func GetInvoices(c *gin.Context) {
	query := utils.DB.Preload("Lease").Preload("Lease.Unit").Preload("Lease.Tenant").Preload("Items").Order("issue_date desc")
	if leaseID := c.Query("lease_id"); leaseID != "" {
		query = query.Where("lease_id = ?", leaseID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	overdue := c.Query("overdue") == "true"
	if overdue {
		today := time.Now().Format("2006-01-02")
		query = query.Where("due_date <= ? AND status NOT IN ?", today,
			[]string{models.InvoiceDraft, models.InvoicePaid})
	}

	var invoiceList []models.Invoice
	if err := query.Find(&invoiceList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices."})
		return
	}

	// Overdue means past due with money still owed, so drop invoices
	// whose payments already cover the total even if the status row has
	// not been refreshed.
	if overdue && len(invoiceList) > 0 {
		ids := make([]string, 0, len(invoiceList))
		for _, inv := range invoiceList {
			ids = append(ids, inv.ID)
		}
		var paymentList []models.Payment
		if err := utils.DB.Where("invoice_id IN ?", ids).Find(&paymentList).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments."})
			return
		}
		paid := billing.PaymentsByInvoice(paymentList)
		unpaid := invoiceList[:0]
		for _, inv := range invoiceList {
			if inv.TotalAmount.Sub(paid[inv.ID]).IsPositive() {
				unpaid = append(unpaid, inv)
			}
		}
		invoiceList = unpaid
	}

	c.JSON(http.StatusOK, invoiceList)
}

func GetInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := utils.DB.Preload("Lease").Preload("Lease.Unit").Preload("Lease.Tenant").Preload("Items").
		Where("id = ?", c.Param("id")).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func CreateInvoice(c *gin.Context) {
	var input struct {
		LeaseID     string          `json:"lease_id"`
		IssueDate   string          `json:"issue_date"`
		DueDate     string          `json:"due_date"`
		TotalAmount decimal.Decimal `json:"total_amount"`
		Status      string          `json:"status"`
		Notes       string          `json:"notes"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.LeaseID == "" || input.IssueDate == "" || input.DueDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Lease and invoice dates are required."})
		return
	}

	var lease models.Lease
	if err := utils.DB.Where("id = ?", input.LeaseID).First(&lease).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	status := input.Status
	if status == "" {
		status = models.InvoiceDraft
	}

	invoice := models.Invoice{
		InvoiceNumber: NextInvoiceNumber(input.IssueDate, lease.ID),
		LeaseID:       input.LeaseID,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		TotalAmount:   input.TotalAmount,
		Status:        status,
		Notes:         input.Notes,
	}

	if err := utils.DB.Create(&invoice).Error; err != nil {
		log.Printf("Error creating invoice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice."})
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

func UpdateInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var input struct {
		DueDate *string `json:"due_date"`
		Status  *string `json:"status"`
		Notes   *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := utils.DB.Model(&invoice).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice."})
			return
		}
	}

	c.JSON(http.StatusOK, invoice)
}

func DeleteInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var paymentCount int64
	utils.DB.Model(&models.Payment{}).Where("invoice_id = ?", invoice.ID).Count(&paymentCount)
	if paymentCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Invoice has payments recorded and cannot be deleted."})
		return
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted."})
}

// NextInvoiceNumber builds INV-YYYY-MM-XXXXXX from the issue month and
// the last six characters of the lease ID.
func NextInvoiceNumber(issueDate, leaseID string) string {
	month := time.Now().Format("2006-01")
	if len(issueDate) >= 7 {
		month = issueDate[:7]
	}
	suffix := leaseID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	if suffix == "" {
		suffix = uuid.NewString()[:6]
	}
	return fmt.Sprintf("INV-%s-%s", month, suffix)
}

// RecalculateTotal sets the invoice total to the sum of its items and
// refreshes the payment status.
func RecalculateTotal(tx *gorm.DB, invoiceID string) error {
	var items []models.InvoiceItem
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	if err := tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).Update("total_amount", total).Error; err != nil {
		return err
	}
	return RefreshPaymentStatus(tx, invoiceID)
}

// RefreshPaymentStatus rolls verified allocated payments up against the
// invoice total and sets paid, partial or pending accordingly. Draft
// invoices are untouched.
func RefreshPaymentStatus(tx *gorm.DB, invoiceID string) error {
	var invoice models.Invoice
	if err := tx.Where("id = ?", invoiceID).First(&invoice).Error; err != nil {
		return err
	}
	if invoice.Status == models.InvoiceDraft {
		return nil
	}

	var payments []models.Payment
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&payments).Error; err != nil {
		return err
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.Counts() {
			paid = paid.Add(p.Amount)
		}
	}

	status := models.InvoicePending
	switch {
	case invoice.TotalAmount.IsPositive() && paid.GreaterThanOrEqual(invoice.TotalAmount):
		status = models.InvoicePaid
	case paid.IsPositive():
		status = models.InvoicePartial
	}

	return tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).Update("status", status).Error
}
