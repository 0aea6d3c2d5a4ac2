package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gapgenie/gapgenie-back/docs"
	"github.com/gapgenie/gapgenie-back/internal/auth"
	"github.com/gapgenie/gapgenie-back/internal/config"
	"github.com/gapgenie/gapgenie-back/internal/db"
	"github.com/gapgenie/gapgenie-back/internal/gemini"
)

// @title           GapGenie API
// @version         1.0
// @description     Student day planner: timetable, tasks, free-time gaps and task suggestions.
// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config) *gin.Engine {
	auth.InitGoogle(cfg)
	suggester := gemini.NewClient(cfg.GeminiAPIKey)

	r := gin.Default()

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		if err := db.PingDB(); err != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Google login
	r.GET("/auth/google/login", auth.GoogleLoginHandler())
	r.GET("/auth/google/callback", auth.GoogleCallbackHandler(cfg))
	r.POST("/auth/refresh", auth.RefreshHandler(cfg))

	// Protected
	authGroup := r.Group("/")
	authGroup.Use(auth.AuthMiddleware(cfg))
	{
		authGroup.GET("/user/me", GetMe)
		authGroup.PUT("/user/profile", UpdateProfile)

		authGroup.GET("/timetable", GetTimetable)
		authGroup.POST("/timetable", AddTimetableEntry)
		authGroup.POST("/timetable/bulk", BulkUploadTimetable)
		authGroup.POST("/timetable/import", ImportTimetable)
		authGroup.PUT("/timetable/:id", UpdateTimetableEntry)
		authGroup.DELETE("/timetable/:id", DeleteTimetableEntry)

		authGroup.GET("/tasks", GetTasks)
		authGroup.POST("/tasks", CreateTask)
		authGroup.PUT("/tasks/:id", UpdateTask)
		authGroup.DELETE("/tasks/:id", DeleteTask)
		authGroup.POST("/tasks/:id/skip", SkipTask)
		authGroup.POST("/tasks/:id/complete", CompleteTask)

		authGroup.GET("/gaps", GetGaps(cfg))
		authGroup.GET("/gaps/plan", GetPlan(cfg))
		authGroup.GET("/suggestion", GetSuggestion(cfg, suggester))

		authGroup.GET("/progress/daily", DailyProgress)
		authGroup.GET("/progress/weekly", WeeklyProgress)
	}

	return r
}
