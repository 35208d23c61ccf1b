package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/notify/channel"
	"github.com/seedit-social/backend/internal/repositories"
)

// Worker drains the delivery outbox: it periodically claims a batch of
// PENDING rows and sends each through its channel. A failed send is marked
// FAILED with the error recorded; there is no retry.
type Worker struct {
	outbox   repositories.OutboxRepository
	channels map[string]channel.Channel
	interval time.Duration
	batch    int
}

// NewWorker creates an outbox worker over the given channels
func NewWorker(outbox repositories.OutboxRepository, channels []channel.Channel, interval time.Duration, batch int) *Worker {
	byName := make(map[string]channel.Channel, len(channels))
	for _, ch := range channels {
		byName[ch.Name()] = ch
	}
	return &Worker{outbox: outbox, channels: byName, interval: interval, batch: batch}
}

// Start runs the polling loop until the context is cancelled
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain claims and processes one batch. Exposed so tests can step the
// worker without the ticker.
func (w *Worker) Drain(ctx context.Context) {
	jobs, err := w.outbox.ClaimBatch(w.batch)
	if err != nil {
		log.Printf("outbox: claim failed: %v", err)
		return
	}
	for _, job := range jobs {
		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job models.Outbox) {
	ch, ok := w.channels[job.Channel]
	if !ok {
		log.Printf("outbox: entry %d has unknown channel %q", job.ID, job.Channel)
		w.markFailed(job.ID, errUnknownChannel(job.Channel))
		return
	}

	var d channel.Delivery
	if err := json.Unmarshal([]byte(job.Payload), &d); err != nil {
		log.Printf("outbox: entry %d has malformed payload: %v", job.ID, err)
		w.markFailed(job.ID, err)
		return
	}

	if err := ch.Send(ctx, d); err != nil {
		log.Printf("outbox: %s send for entry %d failed: %v", job.Channel, job.ID, err)
		w.markFailed(job.ID, err)
		return
	}

	if err := w.outbox.MarkSent(job.ID); err != nil {
		log.Printf("outbox: entry %d sent but not marked: %v", job.ID, err)
	}
}

func (w *Worker) markFailed(id uint, sendErr error) {
	if err := w.outbox.MarkFailed(id, sendErr); err != nil {
		log.Printf("outbox: entry %d not marked failed: %v", id, err)
	}
}

type errUnknownChannel string

func (e errUnknownChannel) Error() string {
	return "unknown channel " + string(e)
}
