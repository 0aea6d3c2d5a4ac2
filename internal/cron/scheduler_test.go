package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/models"
)

func TestReleaseDueTasks(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	now := time.Date(2025, 9, 2, 6, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{Title: "due yesterday", Status: models.StatusRescheduled, Date: "2025-09-01"},
		{Title: "due today", Status: models.StatusRescheduled, Date: "2025-09-02"},
		{Title: "due later", Status: models.StatusRescheduled, Date: "2025-09-05"},
		{Title: "already pending", Status: models.StatusPending, Date: "2025-09-01"},
	}
	require.NoError(t, gdb.Create(&tasks).Error)

	require.NoError(t, ReleaseDueTasks(context.Background(), now))

	var pending int64
	require.NoError(t, gdb.Model(&models.Task{}).Where("status = ?", models.StatusPending).Count(&pending).Error)
	assert.EqualValues(t, 3, pending)

	var still models.Task
	require.NoError(t, gdb.Where("title = ?", "due later").First(&still).Error)
	assert.Equal(t, models.StatusRescheduled, still.Status)
}
