package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MilanBhattarai77/intern-management-api/internal/config"
)

// StartScheduler registers the daily notification jobs and starts the cron
// runner. The returned cron can be stopped on shutdown.
func StartScheduler(cfg *config.Config, notifier *Notifier) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(cfg.BirthdayCron, func() {
		if err := notifier.SendBirthdayGreetings(time.Now()); err != nil {
			log.Printf("birthday job: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(cfg.MorningCron, func() {
		if err := notifier.SendMorningGreetings(); err != nil {
			log.Printf("morning job: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("Notification scheduler started (birthday %q, morning %q)", cfg.BirthdayCron, cfg.MorningCron)
	return c, nil
}
