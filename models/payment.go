package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment verification statuses.
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentRejected = "rejected"
)

// Payment allocation statuses. Only verified, allocated payments count
// toward invoice balances.
const (
	AllocationUnallocated = "unallocated"
	AllocationAllocated   = "allocated"
)

// Payment methods.
const (
	MethodMpesa  = "mpesa"
	MethodBank   = "bank_transfer"
	MethodCash   = "cash"
	MethodCheque = "cheque"
)

type Payment struct {
	ID               string          `gorm:"primaryKey" json:"id"`
	InvoiceID        string          `gorm:"column:invoice_id;index" json:"invoice_id"`
	LeaseID          string          `gorm:"column:lease_id;not null;index" json:"lease_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate      string          `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	PaymentMethod    string          `gorm:"column:payment_method;not null" json:"payment_method"`
	ReferenceNumber  string          `gorm:"column:reference_number" json:"reference_number"`
	Status           string          `gorm:"not null;default:pending" json:"status"`
	AllocationStatus string          `gorm:"column:allocation_status;not null;default:unallocated" json:"allocation_status"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`

	Lease *Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Counts reports whether the payment reduces an invoice balance.
func (p *Payment) Counts() bool {
	return p.Status == PaymentVerified && p.AllocationStatus == AllocationAllocated
}
