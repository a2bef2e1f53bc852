package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Water billing modes for a house type.
const (
	WaterRateUnitBased = "unit_based"
	WaterRateFlat      = "flat_rate"
)

// HouseType groups units of the same kind within a property (bedsitter,
// 1 bedroom, ...) and carries their default billing amounts.
type HouseType struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	PropertyID        string          `gorm:"column:property_id;not null;index" json:"property_id"`
	Name              string          `gorm:"not null" json:"name"`
	Description       string          `json:"description"`
	BaseRentAmount    decimal.Decimal `gorm:"column:base_rent_amount;type:decimal(12,2);not null" json:"base_rent_amount"`
	RentDepositAmount decimal.Decimal `gorm:"column:rent_deposit_amount;type:decimal(12,2);not null" json:"rent_deposit_amount"`
	WaterRatePerUnit  decimal.Decimal `gorm:"column:water_rate_per_unit;type:decimal(8,2);not null" json:"water_rate_per_unit"`
	WaterRateType     string          `gorm:"column:water_rate_type;not null;default:unit_based" json:"water_rate_type"`
	WaterFlatRate     decimal.Decimal `gorm:"column:water_flat_rate;type:decimal(8,2);not null" json:"water_flat_rate"`
	ChargeAmounts     datatypes.JSON  `gorm:"column:charge_amounts" json:"charge_amounts"`
	IsActive          bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (HouseType) TableName() string {
	return "house_types"
}

func (h *HouseType) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
