package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/config"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/handler"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/router"
	"github.com/joho/godotenv"
)

func main() {
	// missing .env is fine, the environment may be set directly
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureUser(cfg.BootstrapUsername, cfg.BootstrapPassword); err != nil {
		log.Fatalf("failed to ensure bootstrap user: %v", err)
	}

	api := handler.NewAPI(db.DB, cfg.JWTSecret, cfg.StripeSecretKey, cfg.UploadDir, cfg.UploadURLPath)
	if err := api.SeedDefaults(); err != nil {
		log.Fatalf("failed to seed defaults: %v", err)
	}

	r := router.SetupRouter(api, cfg.SessionSecret, cfg.UploadDir, cfg.UploadURLPath)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
