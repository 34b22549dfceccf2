// Package mailer sends outbound mail for the contact-email form.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Message is one outbound email, built from validated form fields.
type Message struct {
	Name string
	From string
	To   string
	Body string
}

// Subject derives the subject line from the sender's name.
func (m Message) Subject() string {
	return fmt.Sprintf("Message from %s", m.Name)
}

// Mailer delivers messages over SMTP.
type Mailer interface {
	Send(msg Message) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
}

// New returns an SMTP-backed mailer.
func New(host string, port int, username, password string) Mailer {
	return &smtpMailer{dialer: gomail.NewDialer(host, port, username, password)}
}

func (m *smtpMailer) Send(msg Message) error {
	out := gomail.NewMessage()
	out.SetAddressHeader("From", msg.From, msg.Name)
	out.SetHeader("To", msg.To)
	out.SetHeader("Subject", msg.Subject())
	out.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(out); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
