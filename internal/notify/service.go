package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/seedit-social/backend/internal/models"
	"github.com/seedit-social/backend/internal/notify/channel"
	"github.com/seedit-social/backend/internal/repositories"
)

// Service is the entry point of the notification pipeline. Mutation
// handlers hand it an Event; it resolves recipients, filters channels,
// persists records and enqueues outbox deliveries. Actual channel sends
// happen later in the outbox worker.
type Service struct {
	resolver      *Resolver
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	outbox        repositories.OutboxRepository
}

// NewService creates the notification pipeline service
func NewService(resolver *Resolver, users repositories.UserRepository, follows repositories.FollowRepository, notifications repositories.NotificationRepository, outbox repositories.OutboxRepository) *Service {
	return &Service{
		resolver:      resolver,
		users:         users,
		follows:       follows,
		notifications: notifications,
		outbox:        outbox,
	}
}

// Notify runs the pipeline synchronously for one event. Zero resolved
// recipients is a no-op.
func (s *Service) Notify(ctx context.Context, ev Event) error {
	recipients, err := s.resolver.Resolve(ctx, ev)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}
	return s.deliver(ctx, ev, recipients)
}

// NotifyFollowers fans the event out to every follower of the acting user,
// regardless of the event type.
func (s *Service) NotifyFollowers(ctx context.Context, ev Event) error {
	ids, err := s.follows.GetFollowerIDs(ev.ActorID)
	if err != nil {
		return fmt.Errorf("resolve followers: %w", err)
	}
	return s.deliver(ctx, ev, dedupeExcluding(ids, ev.ActorID))
}

// Dispatch runs Notify on a detached goroutine so the triggering HTTP
// request never waits on fan-out. Failures are logged and dropped.
func (s *Service) Dispatch(ev Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Notify(ctx, ev); err != nil {
			log.Printf("notify: %s event dropped: %v", ev.Type, err)
		}
	}()
}

// DispatchFollowers is the detached variant of NotifyFollowers
func (s *Service) DispatchFollowers(ev Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.NotifyFollowers(ctx, ev); err != nil {
			log.Printf("notify: %s follower fan-out dropped: %v", ev.Type, err)
		}
	}()
}

func (s *Service) deliver(ctx context.Context, ev Event, recipients []uint) error {
	if len(recipients) == 0 {
		return nil
	}

	actor, err := s.users.GetUserByID(ev.ActorID)
	if err != nil {
		return fmt.Errorf("load actor %d: %w", ev.ActorID, err)
	}
	title, message := Render(ev.Type, actor.DisplayName())

	users, err := s.users.GetUsersByIDs(recipients)
	if err != nil {
		return fmt.Errorf("load recipients: %w", err)
	}

	var entries []models.Outbox
	for i := range users {
		u := &users[i]

		var notificationID uint
		if !ev.Config.SystemLevel {
			record := &models.Notification{
				Type:         string(ev.Type),
				ActorID:      ev.ActorID,
				RecipientID:  u.ID,
				ResourceName: ev.Resource.Name,
				ResourceID:   ev.Resource.ID,
				Title:        title,
				Message:      message,
				Unread:       true,
			}
			if err := s.notifications.CreateNotification(record); err != nil {
				log.Printf("notify: record for user %d not created: %v", u.ID, err)
				continue
			}
			notificationID = record.ID
		}

		for _, name := range ActiveChannels(u, ev.Config) {
			d, err := s.buildDelivery(name, u, title, message)
			if err != nil {
				log.Printf("notify: %s delivery for user %d skipped: %v", name, u.ID, err)
				continue
			}
			payload, err := json.Marshal(d)
			if err != nil {
				log.Printf("notify: %s payload for user %d skipped: %v", name, u.ID, err)
				continue
			}
			entries = append(entries, models.Outbox{
				NotificationID: notificationID,
				Channel:        name,
				Payload:        string(payload),
			})
		}
	}

	return s.outbox.Enqueue(entries)
}

func (s *Service) buildDelivery(channelName string, u *models.User, title, message string) (channel.Delivery, error) {
	d := channel.Delivery{Title: title, Message: message}
	switch channelName {
	case "push":
		devices, err := s.users.GetDevices(u.ID)
		if err != nil {
			return d, err
		}
		for _, dev := range devices {
			d.Devices = append(d.Devices, dev.DeviceID)
		}
	case "mail":
		d.Email = u.Email
	case "sms":
		d.Phone = u.Phone
	}
	return d, nil
}
