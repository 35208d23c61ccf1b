package models

import "time"

// OutboxStatus tracks the lifecycle of a queued channel delivery
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "PENDING"
	OutboxProcessing OutboxStatus = "PROCESSING"
	OutboxSent       OutboxStatus = "SENT"
	OutboxFailed     OutboxStatus = "FAILED"
)

// Outbox is one queued delivery for one channel. Rows are written in the
// same flow that creates the notification record and drained by the
// delivery worker. FAILED is terminal: sends are never retried.
type Outbox struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	NotificationID uint         `json:"notification_id" gorm:"index"`
	Channel        string       `json:"channel" gorm:"size:10"` // push, mail, sms
	Payload        string       `json:"payload"`                // JSON-encoded Delivery
	Status         OutboxStatus `json:"status" gorm:"size:12;index"`
	LastError      string       `json:"last_error,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
