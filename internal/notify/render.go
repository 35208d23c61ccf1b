package notify

import "fmt"

// Render produces the title/message pair for an event type, interpolating
// the actor's display name. Unknown types render a generic pair rather than
// erroring, so a malformed event still produces a well-formed record.
func Render(t Type, actorName string) (title, message string) {
	switch t {
	case TypeWater:
		return "New water", fmt.Sprintf("%s watered your post", actorName)
	case TypeUnwater:
		return "Water removed", fmt.Sprintf("%s removed their water from your post", actorName)
	case TypeComment:
		return "New comment", fmt.Sprintf("%s commented on your post", actorName)
	case TypeReply:
		return "New reply", fmt.Sprintf("%s replied to a comment on your post", actorName)
	case TypeFollow:
		return "New follower", fmt.Sprintf("%s is now following you", actorName)
	case TypeMention:
		return "You were mentioned", fmt.Sprintf("%s mentioned you in a post", actorName)
	case TypeFeed:
		return "New post", fmt.Sprintf("%s shared a new post", actorName)
	case TypeTagfeed:
		return "New tag activity", fmt.Sprintf("%s posted in a tag you follow", actorName)
	case TypeChatMessage:
		return "New message", fmt.Sprintf("%s sent you a message", actorName)
	default:
		return "Invalid event", "You have a new notification"
	}
}
