package channel

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// MailChannel delivers notifications over SMTP
type MailChannel struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailChannel creates a MailChannel using the given SMTP settings
func NewMailChannel(host string, port int, username, password, from string) *MailChannel {
	return &MailChannel{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (c *MailChannel) Name() string {
	return "mail"
}

func (c *MailChannel) Send(ctx context.Context, d Delivery) error {
	if d.Email == "" {
		return fmt.Errorf("mail: delivery has no email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", d.Email)
	m.SetHeader("Subject", d.Title)
	m.SetBody("text/plain", d.Message)
	m.AddAlternative("text/html", d.Message)

	return c.dialer.DialAndSend(m)
}
