package mailer

import "log"

// ConsoleMailer logs messages instead of sending them. Used in development
// when no SendGrid API key is configured.
type ConsoleMailer struct{}

var _ Mailer = (*ConsoleMailer)(nil)

// NewConsoleMailer creates a log-only Mailer.
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// Send logs the message.
func (m *ConsoleMailer) Send(msg Message) error {
	log.Printf("mail to %s <%s>: %s\n%s", msg.ToName, msg.ToAddr, msg.Subject, msg.Body)
	return nil
}
