package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gapgenie/gapgenie-back/internal/config"
	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/gemini"
	"github.com/gapgenie/gapgenie-back/internal/planner"
	"github.com/gapgenie/gapgenie-back/internal/timeutil"
)

// GetGaps godoc
// @Summary      Free time gaps
// @Description  Computes the free intervals of a day from the user's timetable
// @Tags         planner
// @Produce      json
// @Param        day  query  string  false  "Day of week, defaults to today"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /gaps [get]
func GetGaps(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		day := c.Query("day")
		if day == "" {
			day = planner.DayName(time.Now())
		}
		if !validDays[day] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
			return
		}

		entries, err := db.GetTimetable(c.Request.Context(), user.ID, day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch timetable"})
			return
		}

		gaps, err := planner.DetectGaps(entries, cfg.DayStart, cfg.DayEnd, cfg.MinGapMinutes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"day":                day,
			"gaps":               gaps,
			"total_free_minutes": planner.TotalFreeMinutes(gaps),
			"total_free":         timeutil.FormatDuration(planner.TotalFreeMinutes(gaps)),
		})
	}
}

// GetPlan godoc
// @Summary      Task-to-gap plan
// @Description  Packs the day's pending tasks into the detected gaps
// @Tags         planner
// @Produce      json
// @Param        day   query  string  false  "Day of week, defaults to today"
// @Param        date  query  string  false  "Task date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /gaps/plan [get]
func GetPlan(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		now := time.Now()
		day := c.Query("day")
		if day == "" {
			day = planner.DayName(now)
		}
		if !validDays[day] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
			return
		}
		date := c.Query("date")
		if date == "" {
			date = now.Format("2006-01-02")
		}

		entries, err := db.GetTimetable(c.Request.Context(), user.ID, day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch timetable"})
			return
		}

		gaps, err := planner.DetectGaps(entries, cfg.DayStart, cfg.DayEnd, cfg.MinGapMinutes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		tasks, err := db.GetTasks(c.Request.Context(), user.ID, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}

		assignments := planner.MatchTasksToGaps(tasks, gaps)

		c.JSON(200, gin.H{
			"day":         day,
			"date":        date,
			"assignments": assignments,
		})
	}
}

// GetSuggestion godoc
// @Summary      Best task for the current gap
// @Description  Deterministic pick, optionally reworded by the Gemini decorator
// @Tags         planner
// @Produce      json
// @Param        minutes  query  int     false  "Gap length; defaults to the gap the user is in or heading into"
// @Param        date     query  string  false  "Task date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} planner.Suggestion
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /suggestion [get]
func GetSuggestion(cfg *config.Config, suggester *gemini.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		now := time.Now()
		date := c.Query("date")
		if date == "" {
			date = now.Format("2006-01-02")
		}

		minutes := 0
		if raw := c.Query("minutes"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minutes"})
				return
			}
			minutes = n
		} else {
			m, err := gapMinutesNow(c, cfg, user.ID, now)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute gaps"})
				return
			}
			minutes = m
		}

		tasks, err := db.GetTasks(c.Request.Context(), user.ID, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}

		suggestion := planner.SuggestTask(tasks, minutes)
		suggestion = suggester.Decorate(c.Request.Context(), suggestion, tasks, minutes, now.Hour())

		c.JSON(200, suggestion)
	}
}

// gapMinutesNow returns the length of the gap the user is currently in, or
// of the next one today, or 0 when the day has no gaps left.
func gapMinutesNow(c *gin.Context, cfg *config.Config, userID uint, now time.Time) (int, error) {
	entries, err := db.GetTimetable(c.Request.Context(), userID, planner.DayName(now))
	if err != nil {
		return 0, err
	}

	gaps, err := planner.DetectGaps(entries, cfg.DayStart, cfg.DayEnd, cfg.MinGapMinutes)
	if err != nil {
		return 0, err
	}

	for _, g := range gaps {
		if planner.InGap(g, now) {
			return g.DurationMinutes, nil
		}
	}
	if next := planner.NextGap(gaps, now); next != nil {
		return next.DurationMinutes, nil
	}
	return 0, nil
}
