package channel

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SmsChannel delivers notifications as text messages through Twilio
type SmsChannel struct {
	client *twilio.RestClient
	from   string
}

// NewSmsChannel creates an SmsChannel using the given Twilio credentials
func NewSmsChannel(accountSid, authToken, from string) *SmsChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return &SmsChannel{client: client, from: from}
}

func (c *SmsChannel) Name() string {
	return "sms"
}

func (c *SmsChannel) Send(ctx context.Context, d Delivery) error {
	if d.Phone == "" {
		return fmt.Errorf("sms: delivery has no phone number")
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(d.Phone)
	params.SetFrom(c.from)
	params.SetBody(d.Message)

	_, err := c.client.Api.CreateMessage(params)
	return err
}
