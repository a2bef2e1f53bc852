package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice item categories.
const (
	ItemRent    = "rent"
	ItemWater   = "water"
	ItemDeposit = "deposit"
	ItemCharge  = "charge"
	ItemOther   = "other"
)

type InvoiceItem struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	InvoiceID   string          `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	Description string          `gorm:"not null" json:"description"`
	Category    string          `gorm:"not null;default:other" json:"category"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
