package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/gapgenie/gapgenie-back/internal/api"
	"github.com/gapgenie/gapgenie-back/internal/config"
	"github.com/gapgenie/gapgenie-back/internal/cron"
	"github.com/gapgenie/gapgenie-back/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system env")
	}

	cfg := config.Load()

	db.InitDB(cfg.DBUrl)

	r := api.SetupRouter(cfg)

	// Start cron jobs
	cron.StartJobs()

	log.Println("Server running on :" + cfg.Port)
	r.Run(":" + cfg.Port)
}
