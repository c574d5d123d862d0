package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/MilanBhattarai77/intern-management-api/internal/mailer"
	"github.com/MilanBhattarai77/intern-management-api/internal/repository"
)

// Notifier runs the daily notification batches over the active-user set.
type Notifier struct {
	userRepo repository.UserRepository
	mailer   mailer.Mailer
}

// NewNotifier creates a Notifier.
func NewNotifier(userRepo repository.UserRepository, m mailer.Mailer) *Notifier {
	return &Notifier{
		userRepo: userRepo,
		mailer:   m,
	}
}

// SendBirthdayGreetings emails every active user whose birth month and day
// match the given date. A failed send is logged and counted but does not stop
// the batch; the error reports the aggregate outcome.
func (n *Notifier) SendBirthdayGreetings(now time.Time) error {
	users, err := n.userRepo.ListActive()
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	var sent, failed int
	for _, user := range users {
		if user.BirthDate == nil {
			continue
		}
		if user.BirthDate.Month() != now.Month() || user.BirthDate.Day() != now.Day() {
			continue
		}

		msg := mailer.Message{
			ToName:  user.Username,
			ToAddr:  user.Email,
			Subject: "Happy Birthday!",
			Body: fmt.Sprintf("Dear %s,\n\nWishing you a very Happy Birthday from the team! Have a fantastic day!\n\nBest regards,\nYour App Team",
				user.Username),
		}
		if err := n.mailer.Send(msg); err != nil {
			log.Printf("birthday greeting to %s failed: %v", user.Email, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("birthday greetings: %d sent, %d failed", sent, failed)
	if failed > 0 {
		return fmt.Errorf("birthday greetings: %d of %d sends failed", failed, sent+failed)
	}
	return nil
}

// SendMorningGreetings emails every active user. Failure handling matches
// SendBirthdayGreetings.
func (n *Notifier) SendMorningGreetings() error {
	users, err := n.userRepo.ListActive()
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	var sent, failed int
	for _, user := range users {
		msg := mailer.Message{
			ToName:  user.Username,
			ToAddr:  user.Email,
			Subject: "Good Morning!",
			Body: fmt.Sprintf("Good Morning, %s!\n\nWe hope you have a great day ahead!\n\nBest regards,\nYour App Team",
				user.Username),
		}
		if err := n.mailer.Send(msg); err != nil {
			log.Printf("morning greeting to %s failed: %v", user.Email, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("morning greetings: %d sent, %d failed", sent, failed)
	if failed > 0 {
		return fmt.Errorf("morning greetings: %d of %d sends failed", failed, sent+failed)
	}
	return nil
}
