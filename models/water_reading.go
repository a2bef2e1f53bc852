package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WaterReading struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	UnitID          string          `gorm:"column:unit_id;not null;index" json:"unit_id"`
	ReadingDate     string          `gorm:"column:reading_date;type:date;not null" json:"reading_date"`
	PreviousReading decimal.Decimal `gorm:"column:previous_reading;type:decimal(10,2);not null" json:"previous_reading"`
	CurrentReading  decimal.Decimal `gorm:"column:current_reading;type:decimal(10,2);not null" json:"current_reading"`
	Consumption     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consumption"`
	RatePerUnit     decimal.Decimal `gorm:"column:rate_per_unit;type:decimal(8,2);not null" json:"rate_per_unit"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	Invoiced        int             `gorm:"not null;default:0" json:"invoiced"`
	LastModifiedAt  time.Time       `gorm:"column:last_modified_at" json:"last_modified_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (WaterReading) TableName() string {
	return "water_readings"
}

func (w *WaterReading) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.LastModifiedAt.IsZero() {
		w.LastModifiedAt = time.Now()
	}
	return nil
}
