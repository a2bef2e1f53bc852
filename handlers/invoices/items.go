package invoices

import (
	"log"
	"net/http"

	"leasemaster-server/models"
	"leasemaster-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func GetInvoiceItems(c *gin.Context) {
	var items []models.InvoiceItem
	if err := utils.DB.Where("invoice_id = ?", c.Param("id")).Order("created_at asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice items."})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddInvoiceItem appends a line and recalculates the invoice total.
// Amount defaults to quantity times unit price when omitted.
func AddInvoiceItem(c *gin.Context) {
	var invoice models.Invoice
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var input struct {
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Quantity    decimal.Decimal `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unit_price"`
		Amount      decimal.Decimal `json:"amount"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. A description is required."})
		return
	}

	if input.Quantity.IsZero() {
		input.Quantity = decimal.NewFromInt(1)
	}
	if input.Amount.IsZero() {
		input.Amount = input.Quantity.Mul(input.UnitPrice).Round(2)
	}
	if input.Category == "" {
		input.Category = models.ItemOther
	}

	item := models.InvoiceItem{
		InvoiceID:   invoice.ID,
		Description: input.Description,
		Category:    input.Category,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		Amount:      input.Amount,
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return RecalculateTotal(tx, invoice.ID)
	})
	if err != nil {
		log.Printf("Error adding invoice item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add invoice item."})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func UpdateInvoiceItem(c *gin.Context) {
	var item models.InvoiceItem
	if err := utils.DB.Where("id = ?", c.Param("item_id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice item not found"})
		return
	}

	var input struct {
		Description *string          `json:"description"`
		Category    *string          `json:"category"`
		Quantity    *decimal.Decimal `json:"quantity"`
		UnitPrice   *decimal.Decimal `json:"unit_price"`
		Amount      *decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.UnitPrice != nil {
		updates["unit_price"] = *input.UnitPrice
	}
	if input.Amount != nil {
		updates["amount"] = *input.Amount
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&item).Updates(updates).Error; err != nil {
				return err
			}
		}
		return RecalculateTotal(tx, item.InvoiceID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice item."})
		return
	}

	c.JSON(http.StatusOK, item)
}

func DeleteInvoiceItem(c *gin.Context) {
	var item models.InvoiceItem
	if err := utils.DB.Where("id = ?", c.Param("item_id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice item not found"})
		return
	}

	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return RecalculateTotal(tx, item.InvoiceID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice item."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice item deleted."})
}
