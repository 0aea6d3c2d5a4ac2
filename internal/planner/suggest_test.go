package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapgenie/gapgenie-back/internal/models"
)

func TestSuggestTaskNoPending(t *testing.T) {
	done := task(1, "done", models.CategoryDeadline, models.PriorityHigh, "2025-09-01", 30)
	done.Status = models.StatusCompleted

	s := SuggestTask([]models.Task{done}, 60)
	assert.Nil(t, s.TaskID)
	assert.Contains(t, s.Suggestion, "break")
}

func TestSuggestTaskPrefersDeadlineCategory(t *testing.T) {
	tasks := []models.Task{
		task(1, "watch lecture", models.CategoryClasses, models.PriorityHigh, "2025-09-01", 30),
		task(2, "submit assignment", models.CategoryDeadline, models.PriorityLow, "2025-09-05", 45),
	}

	s := SuggestTask(tasks, 60)
	require.NotNil(t, s.TaskID)
	assert.Equal(t, uint(2), *s.TaskID)
	assert.Contains(t, s.Suggestion, "submit assignment")
}

func TestSuggestTaskFallsBackToFittingTask(t *testing.T) {
	tasks := []models.Task{
		task(1, "submit assignment", models.CategoryDeadline, models.PriorityHigh, "2025-09-01", 120),
		task(2, "flashcards", models.CategoryExtra, models.PriorityLow, "2025-09-09", 15),
	}

	// The deadline task does not fit a 30 minute gap.
	s := SuggestTask(tasks, 30)
	require.NotNil(t, s.TaskID)
	assert.Equal(t, uint(2), *s.TaskID)
}

func TestSuggestTaskNothingFits(t *testing.T) {
	tasks := []models.Task{
		task(1, "project", models.CategoryDeadline, models.PriorityHigh, "2025-09-01", 120),
	}

	s := SuggestTask(tasks, 20)
	assert.Nil(t, s.TaskID)
	assert.NotEmpty(t, s.Suggestion)
}

func TestSuggestTaskDeterministic(t *testing.T) {
	tasks := []models.Task{
		task(1, "a", models.CategoryLabs, models.PriorityMedium, "2025-09-03", 25),
		task(2, "b", models.CategoryDeadline, models.PriorityMedium, "2025-09-04", 25),
	}

	first := SuggestTask(tasks, 40)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SuggestTask(tasks, 40))
	}
}
