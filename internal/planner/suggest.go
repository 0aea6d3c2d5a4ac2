package planner

import (
	"fmt"

	"github.com/gapgenie/gapgenie-back/internal/models"
)

// Suggestion is a single recommendation for the gap the user is in. TaskID is
// nil when no concrete task is recommended.
type Suggestion struct {
	Suggestion string `json:"suggestion"`
	Tip        string `json:"tip,omitempty"`
	TaskID     *uint  `json:"taskId"`
}

// SuggestTask picks the single best task for a gap of the given length.
// Deadline-category tasks that fit win, then the highest-ranked task that
// fits. Deterministic for a given input; any generative decoration happens
// on top of this and may only change the wording, never the pick.
func SuggestTask(tasks []models.Task, gapMinutes int) Suggestion {
	ranked := RankPending(tasks)

	if len(ranked) == 0 {
		return Suggestion{Suggestion: "All tasks completed! Take a well-deserved break."}
	}

	for _, t := range ranked {
		if t.Category == models.CategoryDeadline && t.EstimatedMinutes <= gapMinutes {
			id := t.ID
			return Suggestion{
				Suggestion: fmt.Sprintf("Work on %q - deadline approaching!", t.Title),
				TaskID:     &id,
			}
		}
	}

	for _, t := range ranked {
		if t.EstimatedMinutes <= gapMinutes {
			id := t.ID
			return Suggestion{
				Suggestion: fmt.Sprintf("Try %q - it fits in your %d min gap!", t.Title, gapMinutes),
				TaskID:     &id,
			}
		}
	}

	return Suggestion{Suggestion: fmt.Sprintf("Nothing fits in %d minutes - use the time to recharge.", gapMinutes)}
}
