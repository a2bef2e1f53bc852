package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice statuses. Draft invoices are excluded from tenant-facing
// reports and from aging.
const (
	InvoiceDraft   = "draft"
	InvoicePending = "pending"
	InvoicePartial = "partial"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

type Invoice struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"column:invoice_number;unique;not null" json:"invoice_number"`
	LeaseID       string          `gorm:"column:lease_id;not null;index" json:"lease_id"`
	IssueDate     string          `gorm:"column:issue_date;type:date;not null" json:"issue_date"`
	DueDate       string          `gorm:"column:due_date;type:date;not null" json:"due_date"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	Status        string          `gorm:"not null;default:draft" json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`

	Lease *Lease        `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
