package payments

import (
	"log"
	"net/http"

	"leasemaster-server/handlers/activity"
	"leasemaster-server/handlers/invoices"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func GetPayments(c *gin.Context) {
	query := utils.DB.Preload("Lease").Preload("Lease.Tenant").Order("payment_date desc, created_at desc")
	if leaseID := c.Query("lease_id"); leaseID != "" {
		query = query.Where("lease_id = ?", leaseID)
	}
	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		query = query.Where("invoice_id = ?", invoiceID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments."})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// RecordPayment stores a payment against a lease. When an invoice is
// named, the payment is allocated to it and the invoice status rolls
// up immediately.
func RecordPayment(c *gin.Context) {
	var input struct {
		LeaseID         string          `json:"lease_id"`
		InvoiceID       string          `json:"invoice_id"`
		Amount          decimal.Decimal `json:"amount"`
		PaymentDate     string          `json:"payment_date"`
		PaymentMethod   string          `json:"payment_method"`
		ReferenceNumber string          `json:"reference_number"`
		Status          string          `json:"status"`
		Notes           string          `json:"notes"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.LeaseID == "" || input.PaymentDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Lease and payment date are required."})
		return
	}

	if !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be positive."})
		return
	}

	var lease models.Lease
	if err := utils.DB.Where("id = ?", input.LeaseID).First(&lease).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	if input.InvoiceID != "" {
		var invoice models.Invoice
		if err := utils.DB.Where("id = ? AND lease_id = ?", input.InvoiceID, input.LeaseID).First(&invoice).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found for this lease"})
			return
		}
	}

	status := input.Status
	if status == "" {
		status = models.PaymentPending
	}
	allocation := models.AllocationUnallocated
	if input.InvoiceID != "" {
		allocation = models.AllocationAllocated
	}

	payment := models.Payment{
		LeaseID:          input.LeaseID,
		InvoiceID:        input.InvoiceID,
		Amount:           input.Amount,
		PaymentDate:      input.PaymentDate,
		PaymentMethod:    input.PaymentMethod,
		ReferenceNumber:  input.ReferenceNumber,
		Status:           status,
		AllocationStatus: allocation,
		Notes:            input.Notes,
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if payment.InvoiceID != "" {
			return invoices.RefreshPaymentStatus(tx, payment.InvoiceID)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error recording payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment."})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// UpdatePayment corrects a payment's details. Status and allocation
// move through the verify and allocate endpoints, not here.
func UpdatePayment(c *gin.Context) {
	var payment models.Payment
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	var input struct {
		Amount          *decimal.Decimal `json:"amount"`
		PaymentDate     *string          `json:"payment_date"`
		PaymentMethod   *string          `json:"payment_method"`
		ReferenceNumber *string          `json:"reference_number"`
		Notes           *string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	if input.Amount != nil && !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be positive."})
		return
	}

	updates := map[string]interface{}{}
	if input.Amount != nil {
		updates["amount"] = *input.Amount
	}
	if input.PaymentDate != nil {
		updates["payment_date"] = *input.PaymentDate
	}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}
	if input.ReferenceNumber != nil {
		updates["reference_number"] = *input.ReferenceNumber
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&payment).Updates(updates).Error; err != nil {
				return err
			}
		}
		// A changed amount moves the invoice's paid/partial line.
		if input.Amount != nil && payment.InvoiceID != "" {
			return invoices.RefreshPaymentStatus(tx, payment.InvoiceID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment."})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// VerifyPayment marks a pending payment verified or rejected.
func VerifyPayment(c *gin.Context) {
	var payment models.Payment
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil ||
		(input.Status != models.PaymentVerified && input.Status != models.PaymentRejected) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be verified or rejected."})
		return
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Update("status", input.Status).Error; err != nil {
			return err
		}
		if payment.InvoiceID != "" {
			return invoices.RefreshPaymentStatus(tx, payment.InvoiceID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment."})
		return
	}

	if userInterface, exists := c.Get("user"); exists {
		user := userInterface.(models.User)
		activity.Record(user.ID, "payment_"+input.Status, "payment", payment.ID, "Amount "+payment.Amount.StringFixed(2))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment " + input.Status + "."})
}

// AllocatePayment ties an unallocated payment to one of the lease's
// invoices.
func AllocatePayment(c *gin.Context) {
	var payment models.Payment
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	var input struct {
		InvoiceID string `json:"invoice_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.InvoiceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. An invoice is required."})
		return
	}

	var invoice models.Invoice
	if err := utils.DB.Where("id = ? AND lease_id = ?", input.InvoiceID, payment.LeaseID).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found for this lease"})
		return
	}

	previousInvoiceID := payment.InvoiceID
	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"invoice_id":        input.InvoiceID,
			"allocation_status": models.AllocationAllocated,
		}).Error; err != nil {
			return err
		}
		if previousInvoiceID != "" && previousInvoiceID != input.InvoiceID {
			if err := invoices.RefreshPaymentStatus(tx, previousInvoiceID); err != nil {
				return err
			}
		}
		return invoices.RefreshPaymentStatus(tx, input.InvoiceID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate payment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment allocated to invoice " + invoice.InvoiceNumber + "."})
}

func DeletePayment(c *gin.Context) {
	var payment models.Payment
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		if payment.InvoiceID != "" {
			return invoices.RefreshPaymentStatus(tx, payment.InvoiceID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted."})
}

// GetLeaseBalance reports what a lease still owes: invoiced totals
// less verified allocated payments.
func GetLeaseBalance(c *gin.Context) {
	leaseID := c.Param("id")

	var lease models.Lease
	if err := utils.DB.Where("id = ?", leaseID).First(&lease).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	var invoiceList []models.Invoice
	if err := utils.DB.Where("lease_id = ? AND status <> ?", leaseID, models.InvoiceDraft).Find(&invoiceList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices."})
		return
	}

	var paymentList []models.Payment
	if err := utils.DB.Where("lease_id = ?", leaseID).Find(&paymentList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments."})
		return
	}

	invoiced := decimal.Zero
	for _, inv := range invoiceList {
		invoiced = invoiced.Add(inv.TotalAmount)
	}
	paid := decimal.Zero
	for _, p := range paymentList {
		if p.Counts() {
			paid = paid.Add(p.Amount)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"lease_id": leaseID,
		"invoiced": invoiced,
		"paid":     paid,
		"balance":  invoiced.Sub(paid),
	})
}
