package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

const emailSubject = "New order received"

// EmailNotifier mails the order summary to the shop owner over SMTP
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewEmailNotifier(host string, port int, user, pass, to string) *EmailNotifier {
	if host == "" || user == "" || pass == "" || to == "" {
		return &EmailNotifier{to: to}
	}
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
		to:     to,
	}
}

func (e *EmailNotifier) Name() string { return "email" }

func (e *EmailNotifier) Enabled() bool {
	return e.dialer != nil
}

// Send delivers text as a plain-text mail. gomail has no context support, so a
// cancelled ctx only prevents the dial from starting.
func (e *EmailNotifier) Send(ctx context.Context, text string) error {
	if !e.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", e.to)
	m.SetHeader("Subject", emailSubject)
	m.SetBody("text/plain", text)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order email: %w", err)
	}
	return nil
}
