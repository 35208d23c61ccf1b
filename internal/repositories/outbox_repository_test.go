package repositories

import (
	"errors"
	"testing"

	"github.com/seedit-social/backend/internal/models"
)

func TestEnqueueSetsPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresOutboxRepository(db)

	entries := []models.Outbox{
		{NotificationID: 1, Channel: "push", Payload: `{"title":"t"}`},
		{NotificationID: 1, Channel: "mail", Payload: `{"title":"t"}`},
	}
	if err := repo.Enqueue(entries); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	var rows []models.Outbox
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("find outbox: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Status != models.OutboxPending {
			t.Errorf("entry %d status = %s, want %s", r.ID, r.Status, models.OutboxPending)
		}
	}
}

func TestEnqueueEmptyIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresOutboxRepository(db)

	if err := repo.Enqueue(nil); err != nil {
		t.Fatalf("Enqueue(nil): %v", err)
	}
	var count int64
	db.Model(&models.Outbox{}).Count(&count)
	if count != 0 {
		t.Errorf("rows = %d, want 0", count)
	}
}

func TestClaimBatchFlipsToProcessing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresOutboxRepository(db)

	var entries []models.Outbox
	for i := 0; i < 5; i++ {
		entries = append(entries, models.Outbox{NotificationID: uint(i + 1), Channel: "push", Payload: `{}`})
	}
	if err := repo.Enqueue(entries); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	jobs, err := repo.ClaimBatch(3)
	if err != nil {
		t.Fatalf("ClaimBatch: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("claimed = %d, want 3", len(jobs))
	}
	for _, j := range jobs {
		if j.Status != models.OutboxProcessing {
			t.Errorf("claimed entry %d status = %s, want %s", j.ID, j.Status, models.OutboxProcessing)
		}
	}

	// The same rows are never handed out twice.
	rest, err := repo.ClaimBatch(10)
	if err != nil {
		t.Fatalf("second ClaimBatch: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("second claim = %d, want 2", len(rest))
	}
	claimed := map[uint]bool{}
	for _, j := range jobs {
		claimed[j.ID] = true
	}
	for _, j := range rest {
		if claimed[j.ID] {
			t.Errorf("entry %d claimed twice", j.ID)
		}
	}
}

func TestClaimBatchEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresOutboxRepository(db)

	jobs, err := repo.ClaimBatch(10)
	if err != nil {
		t.Fatalf("ClaimBatch: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("claimed = %d, want 0", len(jobs))
	}
}

func TestMarkSentAndFailed(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresOutboxRepository(db)

	if err := repo.Enqueue([]models.Outbox{
		{NotificationID: 1, Channel: "push", Payload: `{}`},
		{NotificationID: 1, Channel: "mail", Payload: `{}`},
	}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	jobs, err := repo.ClaimBatch(2)
	if err != nil {
		t.Fatalf("ClaimBatch: %v", err)
	}

	if err := repo.MarkSent(jobs[0].ID); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if err := repo.MarkFailed(jobs[1].ID, errors.New("mailbox full")); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	var sent, failed models.Outbox
	if err := db.First(&sent, jobs[0].ID).Error; err != nil {
		t.Fatalf("find sent: %v", err)
	}
	if sent.Status != models.OutboxSent {
		t.Errorf("sent status = %s", sent.Status)
	}
	if err := db.First(&failed, jobs[1].ID).Error; err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if failed.Status != models.OutboxFailed {
		t.Errorf("failed status = %s", failed.Status)
	}
	if failed.LastError != "mailbox full" {
		t.Errorf("last_error = %q", failed.LastError)
	}

	// FAILED is terminal: a later claim pass must not pick it up.
	again, err := repo.ClaimBatch(10)
	if err != nil {
		t.Fatalf("ClaimBatch: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("reclaimed terminal rows: %+v", again)
	}
}
