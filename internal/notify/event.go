// Package notify implements the notification fan-out pipeline: resolving
// the recipient set for an event, filtering channels by user preference,
// persisting notification records and enqueueing channel deliveries for the
// outbox worker.
package notify

// Type identifies what kind of action triggered a notification
type Type string

const (
	TypeWater       Type = "water"
	TypeUnwater     Type = "unwater"
	TypeComment     Type = "comment"
	TypeReply       Type = "reply"
	TypeFollow      Type = "follow"
	TypeMention     Type = "mention"
	TypeFeed        Type = "feed"
	TypeTagfeed     Type = "tagfeed"
	TypeChatMessage Type = "chatMessage"
)

// Resource points at the entity a notification is about
type Resource struct {
	Name string // post, user, tag
	ID   string
}

// Config carries per-event suppression flags. Avoid flags drop a channel
// even when the recipient has opted in. SystemLevel skips the persisted
// unread-visible record but still allows push delivery.
type Config struct {
	AvoidEmail  bool
	AvoidPush   bool
	AvoidSms    bool
	SystemLevel bool
}

// Event is the canonical schema handed to the pipeline by mutation
// handlers.
type Event struct {
	Type     Type
	ActorID  uint
	Resource Resource
	Text     string // post text for mention/tagfeed resolution
	Config   Config
}
