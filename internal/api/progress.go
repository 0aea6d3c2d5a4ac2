package api

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/models"
)

// TaskStats summarises one day's tasks.
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Skipped        int `json:"skipped"`
	Pending        int `json:"pending"`
	Rescheduled    int `json:"rescheduled"`
	CompletionRate int `json:"completionRate"`
}

func statsFor(tasks []models.Task) TaskStats {
	s := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusPending:
			s.Pending++
		case models.StatusRescheduled:
			s.Rescheduled++
		}
		if t.Status == models.StatusSkipped || t.SkipCount > 0 {
			s.Skipped++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// DailyProgress godoc
// @Summary      Daily task progress
// @Tags         progress
// @Produce      json
// @Param        date  query  string  false  "Date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} map[string]string
// @Security     BearerAuth
// @Router       /progress/daily [get]
func DailyProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tasks, err := db.GetTasks(c.Request.Context(), user.ID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(200, gin.H{
		"date":  date,
		"tasks": statsFor(tasks),
	})
}

// WeeklyProgress godoc
// @Summary      Weekly task progress
// @Description  Per-day completion rates from the start of the current week (Sunday)
// @Tags         progress
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} map[string]string
// @Security     BearerAuth
// @Router       /progress/weekly [get]
func WeeklyProgress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	today := time.Now()
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	daily := gin.H{}
	for d := weekStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		tasks, err := db.GetTasks(c.Request.Context(), user.ID, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}
		s := statsFor(tasks)
		daily[date] = gin.H{
			"total":     s.Total,
			"completed": s.Completed,
			"rate":      s.CompletionRate,
		}
	}

	c.JSON(200, gin.H{"dailyData": daily})
}
