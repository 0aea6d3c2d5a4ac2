package planner

import (
	"sort"

	"github.com/gapgenie/gapgenie-back/internal/models"
)

var priorityWeight = map[string]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

var categoryWeight = map[string]int{
	models.CategoryDeadline: 4,
	models.CategoryClasses:  3,
	models.CategoryLabs:     3,
	models.CategoryTuts:     2,
	models.CategoryExtra:    1,
}

// Assignment pairs a gap with the tasks packed into it.
type Assignment struct {
	Gap              Gap           `json:"gap"`
	Tasks            []models.Task `json:"tasks"`
	RemainingMinutes int           `json:"remainingMinutes"`
}

func score(t models.Task) int {
	p, ok := priorityWeight[t.Priority]
	if !ok {
		p = 1
	}
	c, ok := categoryWeight[t.Category]
	if !ok {
		c = 1
	}
	return p + c
}

// RankPending filters tasks down to pending ones and orders them by urgency:
// composite priority+category score descending, earlier deadline first on
// equal score. The sort is stable, so tasks equal on both keep their input
// order across repeated calls.
func RankPending(tasks []models.Task) []models.Task {
	ranked := []models.Task{}
	for _, t := range tasks {
		if t.Status == models.StatusPending {
			ranked = append(ranked, t)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si > sj
		}
		// Deadlines are "YYYY-MM-DD", so string order is date order.
		return ranked[i].Deadline < ranked[j].Deadline
	})

	return ranked
}

// MatchTasksToGaps greedily packs the ranked pending tasks into the gaps,
// walking gaps in chronological order and the ranking top to bottom. Each
// task lands in at most one gap per run and a gap never takes more minutes
// than it has. Deliberately greedy rather than optimal: a large task skipped
// for an early gap is only reconsidered for later gaps, never the other way
// around.
func MatchTasksToGaps(tasks []models.Task, gaps []Gap) []Assignment {
	ranked := RankPending(tasks)
	used := make(map[uint]bool)

	assignments := make([]Assignment, 0, len(gaps))
	for _, gap := range gaps {
		remaining := gap.DurationMinutes
		picked := []models.Task{}

		for _, t := range ranked {
			if used[t.ID] {
				continue
			}
			if t.EstimatedMinutes <= remaining {
				picked = append(picked, t)
				used[t.ID] = true
				remaining -= t.EstimatedMinutes
			}
		}

		assignments = append(assignments, Assignment{
			Gap:              gap,
			Tasks:            picked,
			RemainingMinutes: remaining,
		})
	}

	return assignments
}
