package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/excel"
	"github.com/gapgenie/gapgenie-back/internal/models"
	"github.com/gapgenie/gapgenie-back/internal/timeutil"
)

var validDays = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

var validEntryTypes = map[string]bool{
	models.EntryClass:    true,
	models.EntryLab:      true,
	models.EntryTutorial: true,
}

// TimetableEntryRequest is the request body for timetable entries.
type TimetableEntryRequest struct {
	Subject   string `json:"subject"`
	Type      string `json:"type"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

func (r *TimetableEntryRequest) validate() string {
	if r.Subject == "" {
		return "Subject is required"
	}
	if r.Type == "" {
		r.Type = models.EntryClass
	}
	if !validEntryTypes[r.Type] {
		return "Type must be class, lab or tutorial"
	}
	if !validDays[r.DayOfWeek] {
		return "Invalid day_of_week"
	}
	d, err := timeutil.Diff(r.StartTime, r.EndTime)
	if err != nil {
		return "Times must be HH:MM"
	}
	if d <= 0 {
		return "end_time must be after start_time"
	}
	return ""
}

func (r *TimetableEntryRequest) toModel(userID uint) models.TimetableEntry {
	return models.TimetableEntry{
		UserID:    userID,
		Subject:   r.Subject,
		Type:      r.Type,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Location:  r.Location,
	}
}

// GetTimetable godoc
// @Summary      Get timetable
// @Description  Returns the user's timetable, optionally filtered by day
// @Tags         timetable
// @Produce      json
// @Param        day  query  string  false  "Day of week (e.g. Monday)"
// @Success      200 {array} models.TimetableEntry
// @Failure      500 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable [get]
func GetTimetable(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := db.GetTimetable(c.Request.Context(), user.ID, c.Query("day"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch timetable"})
		return
	}
	c.JSON(200, entries)
}

// AddTimetableEntry godoc
// @Summary      Add a timetable entry
// @Tags         timetable
// @Accept       json
// @Produce      json
// @Param        body  body  TimetableEntryRequest  true  "Entry"
// @Success      201 {object} models.TimetableEntry
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable [post]
func AddTimetableEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req TimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	entry := req.toModel(user.ID)
	if err := db.SaveTimetableEntry(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// BulkUploadTimetable godoc
// @Summary      Replace the whole timetable
// @Description  Validates every entry, then swaps the user's timetable in one transaction
// @Tags         timetable
// @Accept       json
// @Produce      json
// @Param        body  body  map[string][]TimetableEntryRequest  true  "Entries"
// @Success      201 {array} models.TimetableEntry
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/bulk [post]
func BulkUploadTimetable(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Entries []TimetableEntryRequest `json:"entries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entries array is required"})
		return
	}

	// All-or-nothing: validate everything before touching the database.
	entries := make([]models.TimetableEntry, 0, len(req.Entries))
	for i := range req.Entries {
		if msg := req.Entries[i].validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		entries = append(entries, req.Entries[i].toModel(user.ID))
	}

	if err := db.ReplaceTimetable(c.Request.Context(), user.ID, entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save timetable"})
		return
	}
	c.JSON(http.StatusCreated, entries)
}

// ImportTimetable godoc
// @Summary      Import timetable from xlsx
// @Description  Parses an uploaded spreadsheet and replaces the user's timetable
// @Tags         timetable
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Timetable spreadsheet"
// @Success      201 {array} models.TimetableEntry
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/import [post]
func ImportTimetable(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	entries, err := excel.ParseTimetable(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.ReplaceTimetable(c.Request.Context(), user.ID, entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save timetable"})
		return
	}
	c.JSON(http.StatusCreated, entries)
}

// UpdateTimetableEntry godoc
// @Summary      Update a timetable entry
// @Tags         timetable
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "Entry ID"
// @Param        body  body  TimetableEntryRequest  true  "Entry"
// @Success      200 {object} models.TimetableEntry
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/{id} [put]
func UpdateTimetableEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	var req TimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	entry, err := db.GetTimetableEntryByID(c.Request.Context(), user.ID, uint(id))
	if err != nil {
		notFoundOr500(c, err, "Failed to fetch entry")
		return
	}

	entry.Subject = req.Subject
	entry.Type = req.Type
	entry.DayOfWeek = req.DayOfWeek
	entry.StartTime = req.StartTime
	entry.EndTime = req.EndTime
	entry.Location = req.Location

	if err := db.SaveTimetableEntryChanges(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}
	c.JSON(200, entry)
}

// DeleteTimetableEntry godoc
// @Summary      Delete a timetable entry
// @Tags         timetable
// @Produce      json
// @Param        id  path  int  true  "Entry ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/{id} [delete]
func DeleteTimetableEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	if err := db.DeleteTimetableEntry(c.Request.Context(), user.ID, uint(id)); err != nil {
		notFoundOr500(c, err, "Failed to delete entry")
		return
	}
	c.JSON(200, gin.H{"message": "Entry deleted"})
}
