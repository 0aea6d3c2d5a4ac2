package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gapgenie/gapgenie-back/internal/auth"
	"github.com/gapgenie/gapgenie-back/internal/config"
	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/models"
)

func setupAPI(t *testing.T) (*gin.Engine, *config.Config, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	user := models.User{Email: "student@example.com", AccessToken: "tok"}
	require.NoError(t, gdb.Create(&user).Error)

	cfg := &config.Config{
		JWT_SECRET:    "test-secret",
		DayStart:      "08:00",
		DayEnd:        "21:00",
		MinGapMinutes: 20,
	}

	return SetupRouter(cfg), cfg, user
}

func doJSON(t *testing.T, r *gin.Engine, cfg *config.Config, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	access, _, err := auth.IssueTokens(cfg, "student@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := setupAPI(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTasksRequireAuth(t *testing.T) {
	r, _, _ := setupAPI(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	r, cfg, _ := setupAPI(t)

	w := doJSON(t, r, cfg, http.MethodPost, "/tasks", gin.H{
		"title":    "read chapter 4",
		"deadline": "2025-09-10",
		"date":     "2025-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, models.CategoryExtra, task.Category)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, 30, task.EstimatedMinutes)
	assert.Equal(t, models.StatusPending, task.Status)
}

func TestCreateTaskValidation(t *testing.T) {
	r, cfg, _ := setupAPI(t)

	w := doJSON(t, r, cfg, http.MethodPost, "/tasks", gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, cfg, http.MethodPost, "/tasks", gin.H{"title": "x", "deadline": "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, cfg, http.MethodPost, "/tasks", gin.H{"title": "x", "category": "chores"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSkipTaskLifecycle(t *testing.T) {
	r, cfg, user := setupAPI(t)

	task := models.Task{UserID: user.ID, Title: "essay", Status: models.StatusPending, Date: "2025-09-01", SkipCount: 0}
	require.NoError(t, db.DB.Create(&task).Error)

	// First two skips only bump the counter.
	for i := 1; i <= 2; i++ {
		w := doJSON(t, r, cfg, http.MethodPost, fmt.Sprintf("/tasks/%d/skip", task.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Task        models.Task `json:"task"`
			Rescheduled bool        `json:"rescheduled"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Rescheduled)
		assert.Equal(t, i, resp.Task.SkipCount)
		assert.Equal(t, models.StatusPending, resp.Task.Status)
	}

	// Third skip reschedules to tomorrow.
	w := doJSON(t, r, cfg, http.MethodPost, fmt.Sprintf("/tasks/%d/skip", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Task        models.Task `json:"task"`
		Rescheduled bool        `json:"rescheduled"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Rescheduled)
	assert.Equal(t, models.StatusRescheduled, resp.Task.Status)
	assert.Equal(t, 0, resp.Task.SkipCount)
	assert.Equal(t, time.Now().AddDate(0, 0, 1).Format("2006-01-02"), resp.Task.Date)
}

func TestUpdateTaskKeepsOmittedFields(t *testing.T) {
	r, cfg, user := setupAPI(t)

	task := models.Task{
		UserID:           user.ID,
		Title:            "Algo assignment",
		Category:         models.CategoryDeadline,
		Priority:         models.PriorityHigh,
		EstimatedMinutes: 45,
		Status:           models.StatusPending,
	}
	require.NoError(t, db.DB.Create(&task).Error)

	w := doJSON(t, r, cfg, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), gin.H{
		"title":    "Algo assignment v2",
		"deadline": "2026-09-05",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Algo assignment v2", got.Title)
	assert.Equal(t, "2026-09-05", got.Deadline)
	assert.Equal(t, models.CategoryDeadline, got.Category)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, 45, got.EstimatedMinutes)
}

func TestUpdateTaskRejectsBadPriority(t *testing.T) {
	r, cfg, user := setupAPI(t)

	task := models.Task{UserID: user.ID, Title: "reading", Status: models.StatusPending}
	require.NoError(t, db.DB.Create(&task).Error)

	w := doJSON(t, r, cfg, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), gin.H{
		"priority": "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteTask(t *testing.T) {
	r, cfg, user := setupAPI(t)

	task := models.Task{UserID: user.ID, Title: "essay", Status: models.StatusPending}
	require.NoError(t, db.DB.Create(&task).Error)

	w := doJSON(t, r, cfg, http.MethodPost, fmt.Sprintf("/tasks/%d/complete", task.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestSkipUnknownTaskReturns404(t *testing.T) {
	r, cfg, _ := setupAPI(t)
	w := doJSON(t, r, cfg, http.MethodPost, "/tasks/9999/skip", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskOwnershipEnforced(t *testing.T) {
	r, cfg, _ := setupAPI(t)

	stranger := models.User{Email: "other@example.com", AccessToken: "tok"}
	require.NoError(t, db.DB.Create(&stranger).Error)
	task := models.Task{UserID: stranger.ID, Title: "not yours", Status: models.StatusPending}
	require.NoError(t, db.DB.Create(&task).Error)

	w := doJSON(t, r, cfg, http.MethodPost, fmt.Sprintf("/tasks/%d/complete", task.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkUploadReplacesTimetable(t *testing.T) {
	r, cfg, user := setupAPI(t)

	old := models.TimetableEntry{UserID: user.ID, Subject: "Old", DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"}
	require.NoError(t, db.DB.Create(&old).Error)

	w := doJSON(t, r, cfg, http.MethodPost, "/timetable/bulk", gin.H{
		"entries": []gin.H{
			{"subject": "Math", "type": "class", "day_of_week": "Monday", "start_time": "09:00", "end_time": "10:00"},
			{"subject": "Physics", "type": "lab", "day_of_week": "Monday", "start_time": "10:30", "end_time": "11:30"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.DB.Model(&models.TimetableEntry{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var subjects []string
	require.NoError(t, db.DB.Model(&models.TimetableEntry{}).Where("user_id = ?", user.ID).Pluck("subject", &subjects).Error)
	assert.NotContains(t, subjects, "Old")
}

func TestBulkUploadAllOrNothing(t *testing.T) {
	r, cfg, user := setupAPI(t)

	old := models.TimetableEntry{UserID: user.ID, Subject: "Old", DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"}
	require.NoError(t, db.DB.Create(&old).Error)

	w := doJSON(t, r, cfg, http.MethodPost, "/timetable/bulk", gin.H{
		"entries": []gin.H{
			{"subject": "Math", "type": "class", "day_of_week": "Monday", "start_time": "09:00", "end_time": "10:00"},
			{"subject": "Bad", "type": "class", "day_of_week": "Monday", "start_time": "11:00", "end_time": "10:00"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Old timetable untouched.
	var count int64
	require.NoError(t, db.DB.Model(&models.TimetableEntry{}).Where("user_id = ? AND subject = ?", user.ID, "Old").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGapsEndpoint(t *testing.T) {
	r, cfg, user := setupAPI(t)

	entries := []models.TimetableEntry{
		{UserID: user.ID, Subject: "Math", DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"},
		{UserID: user.ID, Subject: "Physics", DayOfWeek: "Monday", StartTime: "10:30", EndTime: "11:30"},
	}
	require.NoError(t, db.DB.Create(&entries).Error)

	w := doJSON(t, r, cfg, http.MethodGet, "/gaps?day=Monday", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Day              string `json:"day"`
		TotalFreeMinutes int    `json:"total_free_minutes"`
		TotalFree        string `json:"total_free"`
		Gaps             []struct {
			Start           string `json:"start"`
			End             string `json:"end"`
			DurationMinutes int    `json:"duration_minutes"`
		} `json:"gaps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Monday", resp.Day)
	require.Len(t, resp.Gaps, 3)
	assert.Equal(t, 60, resp.Gaps[0].DurationMinutes)
	assert.Equal(t, 30, resp.Gaps[1].DurationMinutes)
	assert.Equal(t, 570, resp.Gaps[2].DurationMinutes)
	assert.Equal(t, 660, resp.TotalFreeMinutes)
	assert.Equal(t, "11h", resp.TotalFree)
}

func TestPlanEndpoint(t *testing.T) {
	r, cfg, user := setupAPI(t)

	entries := []models.TimetableEntry{
		{UserID: user.ID, Subject: "Math", DayOfWeek: "Monday", StartTime: "09:00", EndTime: "20:00"},
	}
	require.NoError(t, db.DB.Create(&entries).Error)

	tasks := []models.Task{
		{UserID: user.ID, Title: "essay", Category: models.CategoryDeadline, Priority: models.PriorityHigh,
			Deadline: "2025-09-02", Date: "2025-09-01", EstimatedMinutes: 40, Status: models.StatusPending},
		{UserID: user.ID, Title: "reading", Category: models.CategoryExtra, Priority: models.PriorityLow,
			Deadline: "2025-09-09", Date: "2025-09-01", EstimatedMinutes: 200, Status: models.StatusPending},
	}
	require.NoError(t, db.DB.Create(&tasks).Error)

	w := doJSON(t, r, cfg, http.MethodGet, "/gaps/plan?day=Monday&date=2025-09-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Assignments []struct {
			Tasks            []models.Task `json:"tasks"`
			RemainingMinutes int           `json:"remainingMinutes"`
		} `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Gaps: 08:00-09:00 and 20:00-21:00. The essay fits the first, the
	// 200 minute reading fits nowhere.
	require.Len(t, resp.Assignments, 2)
	require.Len(t, resp.Assignments[0].Tasks, 1)
	assert.Equal(t, "essay", resp.Assignments[0].Tasks[0].Title)
	assert.Equal(t, 20, resp.Assignments[0].RemainingMinutes)
	assert.Empty(t, resp.Assignments[1].Tasks)
}

func TestSuggestionEndpoint(t *testing.T) {
	r, cfg, user := setupAPI(t)

	tasks := []models.Task{
		{UserID: user.ID, Title: "submit assignment", Category: models.CategoryDeadline, Priority: models.PriorityHigh,
			Deadline: "2025-09-02", Date: time.Now().Format("2006-01-02"), EstimatedMinutes: 30, Status: models.StatusPending},
	}
	require.NoError(t, db.DB.Create(&tasks).Error)

	w := doJSON(t, r, cfg, http.MethodGet, "/suggestion?minutes=60", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestion string `json:"suggestion"`
		TaskID     *uint  `json:"taskId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.TaskID)
	assert.Equal(t, tasks[0].ID, *resp.TaskID)
	assert.Contains(t, resp.Suggestion, "submit assignment")
}

func TestDailyProgress(t *testing.T) {
	r, cfg, user := setupAPI(t)

	mk := func(status string, skips int) models.Task {
		return models.Task{UserID: user.ID, Title: "t", Status: status, SkipCount: skips, Date: "2025-09-01"}
	}
	tasks := []models.Task{
		mk(models.StatusCompleted, 0),
		mk(models.StatusCompleted, 1),
		mk(models.StatusPending, 0),
		mk(models.StatusRescheduled, 0),
	}
	require.NoError(t, db.DB.Create(&tasks).Error)

	w := doJSON(t, r, cfg, http.MethodGet, "/progress/daily?date=2025-09-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date  string    `json:"date"`
		Tasks TaskStats `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Tasks.Total)
	assert.Equal(t, 2, resp.Tasks.Completed)
	assert.Equal(t, 1, resp.Tasks.Pending)
	assert.Equal(t, 1, resp.Tasks.Rescheduled)
	assert.Equal(t, 1, resp.Tasks.Skipped)
	assert.Equal(t, 50, resp.Tasks.CompletionRate)
}

func TestProfileRoundTrip(t *testing.T) {
	r, cfg, _ := setupAPI(t)

	w := doJSON(t, r, cfg, http.MethodPut, "/user/profile", gin.H{
		"full_name": "A Student",
		"college":   "NIT",
		"year":      3,
		"branch":    "CSE",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, cfg, http.MethodGet, "/user/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile UserProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "A Student", profile.FullName)
	assert.Equal(t, 3, profile.Year)
}
