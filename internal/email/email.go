// Package email delivers outbound mail. The service is a black-box
// collaborator: callers hand it a recipient and content and never inspect
// delivery state.
package email

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Service interface {
	Send(to, subject, body string) error
}

type sendgridService struct {
	client *sendgrid.Client
	from   string
}

// NewSendgrid returns a Service backed by the SendGrid API.
func NewSendgrid(apiKey, from string) Service {
	return &sendgridService{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (s *sendgridService) Send(to, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", s.from), subject,
		mail.NewEmail("", to), body, body,
	)
	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	return nil
}

type consoleService struct{}

// NewConsole returns a Service that logs instead of sending, for local
// runs without a SendGrid key.
func NewConsole() Service {
	return consoleService{}
}

func (consoleService) Send(to, subject, body string) error {
	log.Printf("email to %s [%s]: %s", to, subject, body)
	return nil
}
