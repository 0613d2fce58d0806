package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"jobboard/internal/config"
)

// TwilioSender delivers SMS and WhatsApp messages through Twilio. The same
// sender handles both kinds; WhatsApp destinations get the provider's
// address prefix.
type TwilioSender struct {
	client       *twilio.RestClient
	fromNumber   string
	whatsAppFrom string
}

// NewTwilioSender builds a sender from config.
func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{
		client:       client,
		fromNumber:   cfg.FromNumber,
		whatsAppFrom: cfg.WhatsAppFrom,
	}
}

var _ Sender = (*TwilioSender)(nil)

func (s *TwilioSender) Send(_ context.Context, msg Message) error {
	to, from := msg.To, s.fromNumber
	if msg.Kind == KindWhatsApp {
		to = "whatsapp:" + msg.To
		from = "whatsapp:" + s.whatsAppFrom
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(msg.Body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}
