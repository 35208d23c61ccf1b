package models

import "time"

// Notification represents a persisted user notification (PostgreSQL).
// Contact data for delivery (devices, email, phone) is snapshotted into the
// outbox payload at enqueue time rather than stored on the record.
type Notification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"size:30;index"` // water, comment, reply, follow, mention, feed, tagfeed, chatMessage
	ActorID      uint      `json:"actor_id" gorm:"index"`
	RecipientID  uint      `json:"recipient_id" gorm:"index"`
	ResourceName string    `json:"resource_name" gorm:"size:20"` // post, user, tag
	ResourceID   string    `json:"resource_id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Unread       bool      `json:"unread" gorm:"default:true;index"`
	DeleteFlag   bool      `json:"-" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}
