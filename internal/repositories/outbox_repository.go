package repositories

import (
	"time"

	"github.com/seedit-social/backend/internal/models"
	"gorm.io/gorm"
)

// OutboxRepository defines the interface for delivery outbox operations
type OutboxRepository interface {
	Enqueue(entries []models.Outbox) error
	ClaimBatch(limit int) ([]models.Outbox, error)
	MarkSent(id uint) error
	MarkFailed(id uint, sendErr error) error
}

type postgresOutboxRepository struct {
	db *gorm.DB
}

// NewPostgresOutboxRepository creates a PostgreSQL-backed OutboxRepository
func NewPostgresOutboxRepository(db *gorm.DB) OutboxRepository {
	return &postgresOutboxRepository{db: db}
}

// Enqueue inserts one row per channel delivery, all PENDING
func (r *postgresOutboxRepository) Enqueue(entries []models.Outbox) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].Status = models.OutboxPending
	}
	return r.db.Create(&entries).Error
}

// ClaimBatch picks up to limit PENDING rows and flips them to PROCESSING in
// one transaction, so two workers never claim the same row.
func (r *postgresOutboxRepository) ClaimBatch(limit int) ([]models.Outbox, error) {
	var jobs []models.Outbox
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Outbox{}).
			Where("status = ?", models.OutboxPending).
			Order("created_at ASC").
			Limit(limit).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Model(&models.Outbox{}).
			Where("id IN ? AND status = ?", ids, models.OutboxPending).
			Updates(map[string]any{"status": models.OutboxProcessing, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", ids).Find(&jobs).Error
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkSent records a successful delivery
func (r *postgresOutboxRepository) MarkSent(id uint) error {
	return r.db.Model(&models.Outbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": models.OutboxSent, "updated_at": time.Now()}).Error
}

// MarkFailed records a failed delivery. FAILED is terminal: there is no
// retry scheduling.
func (r *postgresOutboxRepository) MarkFailed(id uint, sendErr error) error {
	msg := ""
	if sendErr != nil {
		msg = sendErr.Error()
	}
	return r.db.Model(&models.Outbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": models.OutboxFailed, "last_error": msg, "updated_at": time.Now()}).Error
}
