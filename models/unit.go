package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unit statuses.
const (
	UnitVacant      = "vacant"
	UnitOccupied    = "occupied"
	UnitMaintenance = "maintenance"
)

type Unit struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	PropertyID        string          `gorm:"column:property_id;not null;index" json:"property_id"`
	HouseTypeID       string          `gorm:"column:house_type_id;not null;index" json:"house_type_id"`
	UnitNumber        string          `gorm:"column:unit_number;not null" json:"unit_number"`
	RentAmount        decimal.Decimal `gorm:"column:rent_amount;type:decimal(12,2);not null" json:"rent_amount"`
	RentDepositAmount decimal.Decimal `gorm:"column:rent_deposit_amount;type:decimal(12,2);not null" json:"rent_deposit_amount"`
	// WaterRateAmount, when positive, overrides any lease or default rate.
	WaterRateAmount decimal.Decimal `gorm:"column:water_rate_amount;type:decimal(12,2);not null" json:"water_rate_amount"`
	ChargeAmounts   datatypes.JSON  `gorm:"column:charge_amounts" json:"charge_amounts"`
	Status          string          `gorm:"not null;default:vacant" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
