package models

import "time"

// Entry types for the timetable.
const (
	EntryClass    = "class"
	EntryLab      = "lab"
	EntryTutorial = "tutorial"
)

// Task categories.
const (
	CategoryClasses  = "classes"
	CategoryLabs     = "labs"
	CategoryTuts     = "tuts"
	CategoryDeadline = "deadline"
	CategoryExtra    = "extra"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task statuses.
const (
	StatusPending     = "pending"
	StatusCompleted   = "completed"
	StatusSkipped     = "skipped"
	StatusRescheduled = "rescheduled"
)

type TimetableEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Subject   string    `gorm:"not null" json:"subject"`
	Type      string    `gorm:"default:class" json:"type"` // class, lab, tutorial
	DayOfWeek string    `gorm:"not null;index" json:"day_of_week"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"` // "HH:MM"
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Task struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"-"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `json:"description"`
	Category         string     `gorm:"default:extra" json:"category"` // classes, labs, tuts, deadline, extra
	Priority         string     `gorm:"default:medium" json:"priority"`
	Deadline         string     `gorm:"size:10" json:"deadline"` // "YYYY-MM-DD"
	Date             string     `gorm:"size:10;index" json:"date"`
	EstimatedMinutes int        `gorm:"default:30" json:"estimated_minutes"`
	Status           string     `gorm:"default:pending;index" json:"status"`
	SkipCount        int        `gorm:"default:0" json:"skip_count"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	AccessToken  string `gorm:"not null"`
	RefreshToken string
	TokenType    string
	Expiry       time.Time

	FullName string
	Phone    string
	College  string
	Year     int    // e.g. 2, 3
	Branch   string // e.g. "CSE"
}
