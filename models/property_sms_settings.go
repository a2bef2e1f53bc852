package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertySmsSettings carries per-property SMS gateway credentials.
// Properties without a row fall back to the global environment config.
type PropertySmsSettings struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"column:property_id;unique;not null" json:"property_id"`
	APIKey     string    `gorm:"column:api_key;not null" json:"api_key"`
	PartnerID  string    `gorm:"column:partner_id;not null" json:"partner_id"`
	ShortCode  string    `gorm:"column:short_code;not null" json:"short_code"`
	IsActive   int       `gorm:"column:is_active;not null;default:1" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PropertySmsSettings) TableName() string {
	return "property_sms_settings"
}

func (p *PropertySmsSettings) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
