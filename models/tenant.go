package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	FullName         string    `gorm:"column:full_name;not null" json:"full_name"`
	Email            string    `gorm:"unique;not null" json:"email"`
	Phone            string    `gorm:"not null" json:"phone"`
	IDNumber         string    `gorm:"column:id_number;unique;not null" json:"id_number"`
	EmergencyContact string    `gorm:"column:emergency_contact" json:"emergency_contact"`
	EmergencyPhone   string    `gorm:"column:emergency_phone" json:"emergency_phone"`
	CreatedAt        time.Time `json:"created_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
