package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gapgenie/gapgenie-back/internal/db"
)

func StartJobs() {
	c := cron.New()

	// Tasks pushed to "tomorrow" by the triple-skip rule rejoin the pending
	// pool once that day arrives.
	c.AddFunc("@daily", func() {
		log.Println("Running rescheduled-task release job...")
		if err := ReleaseDueTasks(context.Background(), time.Now()); err != nil {
			log.Println("❌ Failed to release rescheduled tasks:", err)
		}
	})

	c.Start()
}

// ReleaseDueTasks flips rescheduled tasks whose date has arrived back to
// pending. Split out of the cron closure so it can be tested directly.
func ReleaseDueTasks(ctx context.Context, now time.Time) error {
	today := now.Format("2006-01-02")

	tasks, err := db.GetRescheduledDue(ctx, today)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		if err := db.ReleaseRescheduled(ctx, t.ID); err != nil {
			return err
		}
	}

	if len(tasks) > 0 {
		log.Printf("✅ Released %d rescheduled task(s)\n", len(tasks))
	}
	return nil
}
