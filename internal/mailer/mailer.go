package mailer

// Message is a single outbound plain-text email.
type Message struct {
	ToName  string
	ToAddr  string
	Subject string
	Body    string
}

// Mailer is any collaborator that can deliver a message.
type Mailer interface {
	Send(msg Message) error
}
