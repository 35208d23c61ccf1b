package repositories

import (
	"fmt"

	"github.com/seedit-social/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationListQuery carries the normalized filter/sort/pagination
// parameters for listing notifications.
type NotificationListQuery struct {
	RecipientID uint
	Type        string
	Unread      *bool
	OrderBy     string // created_at or actor_id
	Sort        string // asc or desc
	Page        int
	PerPage     int
}

// Normalize applies the documented defaults: page 1, 10 per page,
// newest first.
func (q *NotificationListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 10
	}
	if q.OrderBy != "created_at" && q.OrderBy != "actor_id" {
		q.OrderBy = "created_at"
	}
	if q.Sort != "asc" && q.Sort != "desc" {
		q.Sort = "desc"
	}
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	List(query NotificationListQuery) ([]models.Notification, error)
	Count(query NotificationListQuery) (int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(recipientID, notificationID uint) error
	MarkAllAsRead(recipientID uint) error
	SoftDelete(recipientID, notificationID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a PostgreSQL-backed
// NotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) scoped(query NotificationListQuery) *gorm.DB {
	tx := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND delete_flag = false", query.RecipientID)
	if query.Type != "" {
		tx = tx.Where("type = ?", query.Type)
	}
	if query.Unread != nil {
		tx = tx.Where("unread = ?", *query.Unread)
	}
	return tx
}

// List returns one page of notifications for the query's recipient
func (r *postgresNotificationRepository) List(query NotificationListQuery) ([]models.Notification, error) {
	query.Normalize()

	var notifications []models.Notification
	offset := (query.Page - 1) * query.PerPage
	err := r.scoped(query).
		Order(fmt.Sprintf("%s %s", query.OrderBy, query.Sort)).
		Offset(offset).Limit(query.PerPage).
		Find(&notifications).Error
	return notifications, err
}

// Count returns the total number of records matching the query's filter
func (r *postgresNotificationRepository) Count(query NotificationListQuery) (int64, error) {
	var total int64
	err := r.scoped(query).Count(&total).Error
	return total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND unread = true AND delete_flag = false", recipientID).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(recipientID, notificationID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("unread", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND unread = true", recipientID).
		Update("unread", false).Error
}

// SoftDelete flags a notification as deleted without removing the row
func (r *postgresNotificationRepository) SoftDelete(recipientID, notificationID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("delete_flag", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
