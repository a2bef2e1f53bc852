package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enquiry statuses.
const (
	EnquiryOpen     = "open"
	EnquiryResolved = "resolved"
	EnquiryClosed   = "closed"
)

// Enquiry is a prospective tenant's interest in a unit or property.
type Enquiry struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"column:property_id;index" json:"property_id"`
	UnitID     string    `gorm:"column:unit_id" json:"unit_id"`
	FullName   string    `gorm:"column:full_name;not null" json:"full_name"`
	Phone      string    `gorm:"not null" json:"phone"`
	Email      string    `json:"email"`
	Note       string    `json:"note"`
	Status     string    `gorm:"not null;default:open" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Enquiry) TableName() string {
	return "enquiries"
}

func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
