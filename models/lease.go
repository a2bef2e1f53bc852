package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lease statuses.
const (
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
)

type Lease struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	UnitID        string          `gorm:"column:unit_id;not null;index" json:"unit_id"`
	TenantID      string          `gorm:"column:tenant_id;not null;index" json:"tenant_id"`
	StartDate     string          `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate       string          `gorm:"column:end_date;type:date;not null" json:"end_date"`
	MonthlyRent   decimal.Decimal `gorm:"column:monthly_rent;type:decimal(12,2);not null" json:"monthly_rent"`
	DepositAmount decimal.Decimal `gorm:"column:deposit_amount;type:decimal(12,2);not null" json:"deposit_amount"`
	// WaterRateAmount is an optional per-lease override; zero means unset.
	WaterRateAmount decimal.Decimal `gorm:"column:water_rate_amount;type:decimal(12,2)" json:"water_rate_amount"`
	Status          string          `gorm:"not null;default:active" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`

	Unit   *Unit   `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

func (Lease) TableName() string {
	return "leases"
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// CoversDate reports whether the lease period includes day, which must be
// in YYYY-MM-DD form. Date strings compare lexicographically.
func (l *Lease) CoversDate(day string) bool {
	return l.StartDate <= day && day <= l.EndDate
}
