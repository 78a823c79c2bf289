package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSMSSender sends messages from the clinic's Twilio number.
type TwilioSMSSender struct {
	api  messageCreator
	from string
}

func NewTwilioSMSSender(client *twilio.RestClient, from string) *TwilioSMSSender {
	return &TwilioSMSSender{api: client.Api, from: from}
}

func (s *TwilioSMSSender) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return errors.New("SendSMS: empty destination number")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("SendSMS: twilio create message to %s: %w", to, err)
	}
	return nil
}
