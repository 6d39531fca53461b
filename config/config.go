package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	CORSOrigins  string
	SalonTZ      string
	WindowDays   int
	PendingTTL   int // minutes
	RedisAddr    string
	RedisPass    string
	SMTPHost     string
	SMTPPort     int
	EmailUser    string
	EmailPass    string
	CloudName    string
	CloudKey     string
	CloudSecret  string
	UploadPreset string

	AutoCompleteSchedule string
	AgendaEmailSchedule  string
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	dbURL, err := RequiredString("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}
	secret, err := RequiredString("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}
	windowDays, err := Int("BOOKING_WINDOW_DAYS", 14)
	if err != nil {
		return Config{}, err
	}
	pendingTTL, err := Int("PENDING_BOOKING_TTL_MINUTES", 30)
	if err != nil {
		return Config{}, err
	}
	smtpPort, err := Int("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:                 String("PORT", "8000"),
		DatabaseURL:          dbURL,
		JWTSecret:            secret,
		CORSOrigins:          String("CORS_ORIGINS", "*"),
		SalonTZ:              String("SALON_TIMEZONE", "America/Sao_Paulo"),
		WindowDays:           windowDays,
		PendingTTL:           pendingTTL,
		RedisAddr:            String("REDIS_ADDR", "localhost:6379"),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             smtpPort,
		EmailUser:            os.Getenv("EMAIL_USER"),
		EmailPass:            os.Getenv("EMAIL_PASS"),
		CloudName:            os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudKey:             os.Getenv("CLOUDINARY_API_KEY"),
		CloudSecret:          os.Getenv("CLOUDINARY_API_SECRET"),
		UploadPreset:         os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		AutoCompleteSchedule: String("AUTO_COMPLETE_SCHEDULE", "@every 15m"),
		AgendaEmailSchedule:  String("AGENDA_EMAIL_SCHEDULE", "0 7 * * *"),
	}, nil
}

func String(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func RequiredString(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func Int(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer (got %q)", key, v)
	}
	return n, nil
}
