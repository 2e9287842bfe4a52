package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"tutorlink/messaging/internal/api/handler"
	"tutorlink/messaging/internal/auth"
	"tutorlink/messaging/internal/chathub"
	"tutorlink/messaging/internal/config"
	"tutorlink/messaging/internal/models"
	"tutorlink/messaging/internal/notify"
	"tutorlink/messaging/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting TutorLink messaging service...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewService(db, rdb)

	var notifier notify.Notifier = notify.Noop{}
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("WARNING: Telegram notifier disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	hub := chathub.NewHub(s, notifier)
	go hub.Run()

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload dir: %v", err)
	}

	authenticator := auth.NewAuthenticator(cfg.JWTSecret, s)

	r := gin.Default()
	h := handler.NewHandler(hub, s, authenticator, files)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
