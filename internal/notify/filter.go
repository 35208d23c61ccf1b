package notify

import "github.com/seedit-social/backend/internal/models"

// ActiveChannels computes which channels an event actually uses for a
// recipient: the recipient's opt-in AND NOT the event's suppression flag.
// Pure function over its inputs.
func ActiveChannels(user *models.User, cfg Config) []string {
	var channels []string
	if user.NotifyPush && !cfg.AvoidPush {
		channels = append(channels, "push")
	}
	if user.NotifyMail && !cfg.AvoidEmail {
		channels = append(channels, "mail")
	}
	if user.NotifySms && !cfg.AvoidSms {
		channels = append(channels, "sms")
	}
	return channels
}
