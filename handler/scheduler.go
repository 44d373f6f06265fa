package handler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const notificationRetention = 30 * 24 * time.Hour

// StartNotificationCleanup purges old read notifications nightly.
func StartNotificationCleanup() *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		removed, err := notifySvc.PurgeReadOlderThan(notificationRetention)
		if err != nil {
			log.Printf("notification cleanup failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("notification cleanup removed %d rows", removed)
		}
	})
	if err != nil {
		log.Printf("failed to schedule notification cleanup: %v", err)
	}
	c.Start()
	return c
}
