package invoices

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"leasemaster-server/handlers/messaging"
	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
)

// SendInvoiceEmail mails the invoice summary to the tenant.
func SendInvoiceEmail(c *gin.Context) {
	var invoice models.Invoice
	if err := utils.DB.Preload("Lease").Preload("Lease.Unit").Preload("Lease.Tenant").Preload("Items").
		Where("id = ?", c.Param("id")).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	if invoice.Lease == nil || invoice.Lease.Tenant == nil || invoice.Lease.Tenant.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The tenant has no email address on file."})
		return
	}
	tenant := invoice.Lease.Tenant

	subject := fmt.Sprintf("Invoice %s", invoice.InvoiceNumber)
	if err := utils.SendEmail(tenant.Email, subject, invoiceBody(&invoice)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send the invoice email."})
		return
	}

	message := models.Message{
		TenantID:  tenant.ID,
		Channel:   models.ChannelEmail,
		Recipient: tenant.Email,
		Subject:   subject,
		Body:      invoiceBody(&invoice),
		Status:    models.MessageSent,
		SentAt:    time.Now(),
	}
	utils.DB.Create(&message)

	c.JSON(http.StatusOK, gin.H{"message": "Invoice emailed to " + tenant.Email})
}

// SendInvoiceSMS texts the invoice total and due date to the tenant
// using the property's SMS account.
func SendInvoiceSMS(c *gin.Context) {
	var invoice models.Invoice
	if err := utils.DB.Preload("Lease").Preload("Lease.Unit").Preload("Lease.Tenant").
		Where("id = ?", c.Param("id")).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	if invoice.Lease == nil || invoice.Lease.Tenant == nil || invoice.Lease.Tenant.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The tenant has no phone number on file."})
		return
	}
	tenant := invoice.Lease.Tenant

	propertyID := ""
	if invoice.Lease.Unit != nil {
		propertyID = invoice.Lease.Unit.PropertyID
	}
	creds := messaging.CredentialsForProperty(propertyID)

	text := fmt.Sprintf("Dear %s, invoice %s of KES %s is due on %s. Thank you.",
		tenant.FullName, invoice.InvoiceNumber, invoice.TotalAmount.StringFixed(2), invoice.DueDate)

	message := models.Message{
		TenantID:  tenant.ID,
		Channel:   models.ChannelSMS,
		Recipient: tenant.Phone,
		Body:      text,
		Status:    models.MessageQueued,
	}
	utils.DB.Create(&message)

	providerRef, err := utils.SendSMS(creds, tenant.Phone, text)
	if err != nil {
		utils.DB.Model(&message).Updates(map[string]interface{}{
			"status": models.MessageFailed,
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send the invoice SMS."})
		return
	}

	utils.DB.Model(&message).Updates(map[string]interface{}{
		"status":       models.MessageSent,
		"provider_ref": providerRef,
		"sent_at":      time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Invoice SMS sent to " + tenant.Phone})
}

func invoiceBody(invoice *models.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invoice %s\n", invoice.InvoiceNumber)
	fmt.Fprintf(&b, "Issue date: %s\nDue date: %s\n\n", invoice.IssueDate, invoice.DueDate)
	for _, item := range invoice.Items {
		fmt.Fprintf(&b, "%s: KES %s\n", item.Description, item.Amount.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal due: KES %s\n", invoice.TotalAmount.StringFixed(2))
	if invoice.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", invoice.Notes)
	}
	return b.String()
}
