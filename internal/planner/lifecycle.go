package planner

import (
	"time"

	"github.com/gapgenie/gapgenie-back/internal/models"
)

// A task is auto-rescheduled once it has been skipped this many times.
const maxSkips = 3

// Complete marks a task done. Completed is terminal; the caller persists the
// returned copy.
func Complete(task models.Task, now time.Time) models.Task {
	task.Status = models.StatusCompleted
	task.CompletedAt = &now
	task.UpdatedAt = now
	return task
}

// Skip defers a task once. The skip that brings the counter to maxSkips
// resets it, moves the task to the next calendar day and marks it
// rescheduled; the second return value reports that. Pulling the task back
// into the pending pool on its new date is the caller's job.
func Skip(task models.Task, now time.Time) (models.Task, bool) {
	task.SkipCount++
	task.UpdatedAt = now

	if task.SkipCount >= maxSkips {
		task.SkipCount = 0
		task.Status = models.StatusRescheduled
		task.Date = now.AddDate(0, 0, 1).Format("2006-01-02")
		return task, true
	}

	return task, false
}
