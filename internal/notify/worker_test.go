package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/notify/channel"
	"github.com/seedit-social/backend/internal/repositories"
)

type fakeChannel struct {
	name    string
	sendErr error
	sent    []channel.Delivery
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(ctx context.Context, d channel.Delivery) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, d)
	return nil
}

func TestWorkerDrainSendsAndMarks(t *testing.T) {
	db := newTestDB(t)
	outbox := repositories.NewPostgresOutboxRepository(db)
	push := &fakeChannel{name: "push"}
	w := NewWorker(outbox, []channel.Channel{push}, time.Second, 10)

	entries := []models.Outbox{
		{NotificationID: 1, Channel: "push", Payload: `{"title":"t","message":"m","devices":["tok-1"]}`},
	}
	if err := outbox.Enqueue(entries); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	w.Drain(context.Background())

	if len(push.sent) != 1 {
		t.Fatalf("sends = %d, want 1", len(push.sent))
	}
	if push.sent[0].Title != "t" || len(push.sent[0].Devices) != 1 {
		t.Fatalf("unexpected delivery: %+v", push.sent[0])
	}

	var row models.Outbox
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("find outbox: %v", err)
	}
	if row.Status != models.OutboxSent {
		t.Errorf("status = %s, want %s", row.Status, models.OutboxSent)
	}
}

func TestWorkerDrainFailureIsTerminal(t *testing.T) {
	db := newTestDB(t)
	outbox := repositories.NewPostgresOutboxRepository(db)
	mail := &fakeChannel{name: "mail", sendErr: errors.New("smtp unreachable")}
	w := NewWorker(outbox, []channel.Channel{mail}, time.Second, 10)

	if err := outbox.Enqueue([]models.Outbox{
		{NotificationID: 1, Channel: "mail", Payload: `{"title":"t","message":"m","email":"bob@example.com"}`},
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	w.Drain(context.Background())

	var row models.Outbox
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("find outbox: %v", err)
	}
	if row.Status != models.OutboxFailed {
		t.Errorf("status = %s, want %s", row.Status, models.OutboxFailed)
	}
	if row.LastError != "smtp unreachable" {
		t.Errorf("last_error = %q", row.LastError)
	}

	// A second pass must not pick the failed row back up.
	w.Drain(context.Background())
	if len(mail.sent) != 0 {
		t.Errorf("failed entry was retried")
	}
}

func TestWorkerDrainUnknownChannel(t *testing.T) {
	db := newTestDB(t)
	outbox := repositories.NewPostgresOutboxRepository(db)
	w := NewWorker(outbox, []channel.Channel{&fakeChannel{name: "push"}}, time.Second, 10)

	if err := outbox.Enqueue([]models.Outbox{
		{NotificationID: 1, Channel: "pigeon", Payload: `{}`},
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	w.Drain(context.Background())

	var row models.Outbox
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("find outbox: %v", err)
	}
	if row.Status != models.OutboxFailed {
		t.Errorf("status = %s, want %s", row.Status, models.OutboxFailed)
	}
}

func TestWorkerDrainMalformedPayload(t *testing.T) {
	db := newTestDB(t)
	outbox := repositories.NewPostgresOutboxRepository(db)
	push := &fakeChannel{name: "push"}
	w := NewWorker(outbox, []channel.Channel{push}, time.Second, 10)

	if err := outbox.Enqueue([]models.Outbox{
		{NotificationID: 1, Channel: "push", Payload: `{not json`},
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	w.Drain(context.Background())

	if len(push.sent) != 0 {
		t.Errorf("malformed payload was sent")
	}
	var row models.Outbox
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("find outbox: %v", err)
	}
	if row.Status != models.OutboxFailed {
		t.Errorf("status = %s, want %s", row.Status, models.OutboxFailed)
	}
}
