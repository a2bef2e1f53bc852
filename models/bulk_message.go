package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bulk message statuses.
const (
	BulkPending    = "pending"
	BulkProcessing = "processing"
	BulkCompleted  = "completed"
	BulkFailed     = "failed"
)

// BulkMessage fans one body out to every selected recipient. Progress
// counters are updated as recipients resolve.
type BulkMessage struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	PropertyID     string    `gorm:"column:property_id;index" json:"property_id"`
	SenderID       string    `gorm:"column:sender_id;not null" json:"sender_id"`
	Channel        string    `gorm:"not null;default:sms" json:"channel"`
	Subject        string    `json:"subject"`
	Body           string    `gorm:"not null" json:"body"`
	Status         string    `gorm:"not null;default:pending" json:"status"`
	TotalCount     int       `gorm:"column:total_count;not null;default:0" json:"total_count"`
	SentCount      int       `gorm:"column:sent_count;not null;default:0" json:"sent_count"`
	DeliveredCount int       `gorm:"column:delivered_count;not null;default:0" json:"delivered_count"`
	FailedCount    int       `gorm:"column:failed_count;not null;default:0" json:"failed_count"`
	CreatedAt      time.Time `json:"created_at"`
	CompletedAt    time.Time `gorm:"column:completed_at" json:"completed_at"`

	Recipients []MessageRecipient `gorm:"foreignKey:BulkMessageID" json:"recipients,omitempty"`
}

func (BulkMessage) TableName() string {
	return "bulk_messages"
}

func (b *BulkMessage) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
