package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/models"
	"github.com/gapgenie/gapgenie-back/internal/planner"
)

var validCategories = map[string]bool{
	models.CategoryClasses:  true,
	models.CategoryLabs:     true,
	models.CategoryTuts:     true,
	models.CategoryDeadline: true,
	models.CategoryExtra:    true,
}

var validPriorities = map[string]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
}

// TaskRequest is the request body for creating or updating a task.
type TaskRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Priority         string `json:"priority"`
	Deadline         string `json:"deadline"`
	Date             string `json:"date"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

func (r *TaskRequest) validate() string {
	if r.Title == "" {
		return "Title is required"
	}
	if r.Category == "" {
		r.Category = models.CategoryExtra
	}
	if !validCategories[r.Category] {
		return "Invalid category"
	}
	if r.Priority == "" {
		r.Priority = models.PriorityMedium
	}
	if !validPriorities[r.Priority] {
		return "Invalid priority"
	}
	if r.EstimatedMinutes == 0 {
		r.EstimatedMinutes = 30
	}
	if r.EstimatedMinutes < 0 {
		return "Estimated minutes must be positive"
	}
	for _, d := range []string{r.Deadline, r.Date} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return "Dates must be YYYY-MM-DD"
		}
	}
	return ""
}

// applyTo copies only the fields present in the request onto the task, so a
// partial update leaves the rest untouched. Empty strings and zero minutes
// mean "not supplied" and cannot be used to clear a field.
func (r *TaskRequest) applyTo(task *models.Task) string {
	if r.Title != "" {
		task.Title = r.Title
	}
	if r.Description != "" {
		task.Description = r.Description
	}
	if r.Category != "" {
		if !validCategories[r.Category] {
			return "Invalid category"
		}
		task.Category = r.Category
	}
	if r.Priority != "" {
		if !validPriorities[r.Priority] {
			return "Invalid priority"
		}
		task.Priority = r.Priority
	}
	if r.EstimatedMinutes != 0 {
		if r.EstimatedMinutes < 0 {
			return "Estimated minutes must be positive"
		}
		task.EstimatedMinutes = r.EstimatedMinutes
	}
	for _, d := range []string{r.Deadline, r.Date} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return "Dates must be YYYY-MM-DD"
		}
	}
	if r.Deadline != "" {
		task.Deadline = r.Deadline
	}
	if r.Date != "" {
		task.Date = r.Date
	}
	return ""
}

// GetTasks godoc
// @Summary      List tasks
// @Description  Returns the user's tasks, optionally filtered by scheduling date
// @Tags         tasks
// @Produce      json
// @Param        date  query  string  false  "Scheduling date (YYYY-MM-DD)"
// @Success      200 {array} models.Task
// @Failure      500 {object} map[string]string
// @Security     BearerAuth
// @Router       /tasks [get]
func GetTasks(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, err := db.GetTasks(c.Request.Context(), user.ID, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(200, tasks)
}

// CreateTask godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  TaskRequest  true  "Task"
// @Success      201 {object} models.Task
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Security     BearerAuth
// @Router       /tasks [post]
func CreateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	task := models.Task{
		UserID:           user.ID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Priority:         req.Priority,
		Deadline:         req.Deadline,
		Date:             req.Date,
		EstimatedMinutes: req.EstimatedMinutes,
		Status:           models.StatusPending,
	}

	if err := db.CreateTask(c.Request.Context(), &task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary      Update a task
// @Description  Applies only the fields present in the body; omitted fields keep their values
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Task ID"
// @Param        body  body  TaskRequest  true  "Task"
// @Success      200 {object} models.Task
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func UpdateTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := db.GetTaskByID(c.Request.Context(), user.ID, uint(id))
	if err != nil {
		notFoundOr500(c, err, "Failed to fetch task")
		return
	}

	if msg := req.applyTo(task); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := db.SaveTaskChanges(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	c.JSON(200, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func DeleteTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	if err := db.DeleteTask(c.Request.Context(), user.ID, uint(id)); err != nil {
		notFoundOr500(c, err, "Failed to delete task")
		return
	}
	c.JSON(200, gin.H{"message": "Task deleted"})
}

// SkipTask godoc
// @Summary      Skip a task
// @Description  Increments the skip counter; the third skip moves the task to tomorrow
// @Tags         tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /tasks/{id}/skip [post]
func SkipTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	task, err := db.GetTaskByID(c.Request.Context(), user.ID, uint(id))
	if err != nil {
		notFoundOr500(c, err, "Failed to fetch task")
		return
	}

	updated, rescheduled := planner.Skip(*task, time.Now())
	if err := db.SaveTaskChanges(c.Request.Context(), &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(200, gin.H{"task": updated, "rescheduled": rescheduled})
}

// CompleteTask godoc
// @Summary      Complete a task
// @Tags         tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200 {object} models.Task
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /tasks/{id}/complete [post]
func CompleteTask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	task, err := db.GetTaskByID(c.Request.Context(), user.ID, uint(id))
	if err != nil {
		notFoundOr500(c, err, "Failed to fetch task")
		return
	}

	updated := planner.Complete(*task, time.Now())
	if err := db.SaveTaskChanges(c.Request.Context(), &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(200, updated)
}
