package config

import (
	"os"
	"strconv"
)

// Config holds everything the service reads from the environment.
// cmd/main.go loads a .env file first, so local development only needs
// a .env next to the binary.
type Config struct {
	Port int

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// TelegramBotToken enables offline-message notifications when set.
	TelegramBotToken string

	// UploadDir is where attachment files are written.
	UploadDir string
}

func Load() Config {
	port := 8080
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=user password=password dbname=tutorlink port=5432 sslmode=disable"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return Config{
		Port:             port,
		DatabaseDSN:      dsn,
		RedisAddr:        redisAddr,
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		UploadDir:        uploadDir,
	}
}
