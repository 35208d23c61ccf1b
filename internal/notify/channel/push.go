package channel

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"
)

// PushChannel delivers notifications to registered devices through Firebase
// Cloud Messaging.
type PushChannel struct {
	client *messaging.Client
}

// NewPushChannel creates a PushChannel backed by an FCM messaging client
func NewPushChannel(client *messaging.Client) *PushChannel {
	return &PushChannel{client: client}
}

func (c *PushChannel) Name() string {
	return "push"
}

// Send pushes the delivery to every device token. A recipient with no
// registered devices is a logged no-op, not an error.
func (c *PushChannel) Send(ctx context.Context, d Delivery) error {
	if len(d.Devices) == 0 {
		log.Println("push: no devices found, skipping")
		return nil
	}

	msg := &messaging.MulticastMessage{
		Tokens: d.Devices,
		Notification: &messaging.Notification{
			Title: d.Title,
			Body:  d.Message,
		},
	}

	resp, err := c.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return err
	}
	if resp.FailureCount > 0 {
		log.Printf("push: %d of %d device sends failed", resp.FailureCount, len(d.Devices))
	}
	return nil
}
