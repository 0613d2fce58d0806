package notify

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"jobboard/internal/auth"
)

// GmailSender delivers email through the Gmail API using the delegated
// OAuth2 account.
type GmailSender struct {
	auth *auth.GoogleAuth
	from string
}

// NewGmailSender builds a sender for the configured delegated account.
func NewGmailSender(googleAuth *auth.GoogleAuth, from string) *GmailSender {
	return &GmailSender{auth: googleAuth, from: from}
}

var _ Sender = (*GmailSender)(nil)

func (s *GmailSender) Send(ctx context.Context, msg Message) error {
	client, err := s.auth.Client(ctx)
	if err != nil {
		return fmt.Errorf("gmail client: %w", err)
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("gmail service: %w", err)
	}

	raw := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, msg.To, msg.Subject, msg.Body,
	)
	_, err = srv.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}
