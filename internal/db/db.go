package db

import (
	"context"
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gapgenie/gapgenie-back/internal/models"
)

var DB *gorm.DB

// ErrNotFound is returned when a record does not exist or is not owned by
// the requesting user.
var ErrNotFound = errors.New("record not found")

func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("✅ Database connected and migrated")
}

// Migrate creates/updates the schema. Split out so tests can run it against
// their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.TimetableEntry{}, &models.Task{})
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// -------------------- USERS --------------------

func SaveOrUpdateUser(ctx context.Context, u models.User) error {
	var existing models.User
	if err := DB.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DB.WithContext(ctx).Create(&u).Error
		}
		return err
	}

	return DB.WithContext(ctx).Model(&existing).Updates(u).Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func UpdateUserProfile(ctx context.Context, email string, updates map[string]interface{}) error {
	res := DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// -------------------- TIMETABLE --------------------

func GetTimetable(ctx context.Context, userID uint, day string) ([]models.TimetableEntry, error) {
	var entries []models.TimetableEntry
	tx := DB.WithContext(ctx).Where("user_id = ?", userID)
	if day != "" {
		tx = tx.Where("day_of_week = ?", day)
	}
	if err := tx.Order("start_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func SaveTimetableEntry(ctx context.Context, e *models.TimetableEntry) error {
	return DB.WithContext(ctx).Create(e).Error
}

// ReplaceTimetable swaps out a user's whole timetable in one transaction, so
// a failed bulk upload never leaves a half-written week behind.
func ReplaceTimetable(ctx context.Context, userID uint, entries []models.TimetableEntry) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.TimetableEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].UserID = userID
		}
		return tx.Create(&entries).Error
	})
}

func GetTimetableEntryByID(ctx context.Context, userID, id uint) (*models.TimetableEntry, error) {
	var entry models.TimetableEntry
	if err := DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&entry).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &entry, nil
}

func SaveTimetableEntryChanges(ctx context.Context, e *models.TimetableEntry) error {
	return DB.WithContext(ctx).Save(e).Error
}

func DeleteTimetableEntry(ctx context.Context, userID, id uint) error {
	res := DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.TimetableEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// -------------------- TASKS --------------------

func GetTasks(ctx context.Context, userID uint, date string) ([]models.Task, error) {
	var tasks []models.Task
	tx := DB.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		tx = tx.Where("date = ?", date)
	}
	if err := tx.Order("deadline ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func CreateTask(ctx context.Context, t *models.Task) error {
	return DB.WithContext(ctx).Create(t).Error
}

func GetTaskByID(ctx context.Context, userID, id uint) (*models.Task, error) {
	var task models.Task
	if err := DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&task).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &task, nil
}

func SaveTaskChanges(ctx context.Context, t *models.Task) error {
	return DB.WithContext(ctx).Save(t).Error
}

func DeleteTask(ctx context.Context, userID, id uint) error {
	res := DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRescheduledDue lists tasks across all users that were pushed to a later
// date which has now arrived. Used by the daily cron job.
func GetRescheduledDue(ctx context.Context, date string) ([]models.Task, error) {
	var tasks []models.Task
	if err := DB.WithContext(ctx).
		Where("status = ? AND date <= ?", models.StatusRescheduled, date).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ReleaseRescheduled puts a rescheduled task back into the pending pool.
func ReleaseRescheduled(ctx context.Context, taskID uint) error {
	return DB.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, models.StatusRescheduled).
		Update("status", models.StatusPending).Error
}
