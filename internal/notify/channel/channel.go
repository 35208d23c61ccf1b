// Package channel defines the delivery channel abstraction and the push,
// mail and SMS implementations behind the notification outbox.
package channel

import "context"

// Delivery is the payload handed to a channel. It snapshots the rendered
// text and the recipient's contact data at enqueue time.
type Delivery struct {
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Devices []string `json:"devices,omitempty"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
}

// Channel sends a single delivery through one transport. Implementations
// report failure through the returned error; the caller logs it and moves
// on, there is no retry.
type Channel interface {
	Name() string
	Send(ctx context.Context, d Delivery) error
}
