package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

func Config(key string) string {
	loadEnv.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
	return os.Getenv(key)
}

// Settings is the typed view of the environment.
type Settings struct {
	DatabaseURL   string
	Port          string
	JWTSecret     string
	JWTTTL        time.Duration
	LogLevel      string
	LogPretty     bool
	QueryLog      string
	SlowQuery     time.Duration
	RedisURL      string
	CacheTTL      time.Duration
	CloudinaryURL string
	BrevoAPIKey   string
	SenderEmail   string
	SenderName    string
	AdminEmail    string
	AdminPassword string
	AdminOrgID    string
	OverdueCron   string
	ArchiveCron   string
	ArchiveAfter  time.Duration
}

func Load() Settings {
	return Settings{
		DatabaseURL:   Config("DATABASE_URL"),
		Port:          withDefault(Config("PORT"), "3000"),
		JWTSecret:     Config("JWT_SECRET"),
		JWTTTL:        duration(Config("JWT_TTL"), 72*time.Hour),
		LogLevel:      withDefault(Config("LOG_LEVEL"), "info"),
		LogPretty:     boolean(Config("LOG_PRETTY"), false),
		QueryLog:      withDefault(Config("QUERY_LOG"), "warn,error"),
		SlowQuery:     duration(Config("SLOW_QUERY_THRESHOLD"), 200*time.Millisecond),
		RedisURL:      Config("REDIS_URL"),
		CacheTTL:      duration(Config("CACHE_TTL"), 5*time.Minute),
		CloudinaryURL: Config("CLOUDINARY_URL"),
		BrevoAPIKey:   Config("BREVO_API_KEY"),
		SenderEmail:   Config("SENDER_EMAIL"),
		SenderName:    withDefault(Config("SENDER_NAME"), "Tutoring School"),
		AdminEmail:    Config("ADMIN_EMAIL"),
		AdminPassword: Config("ADMIN_PASSWORD"),
		AdminOrgID:    Config("ADMIN_ORG_ID"),
		OverdueCron:   withDefault(Config("OVERDUE_CRON"), "0 8 * * *"),
		ArchiveCron:   withDefault(Config("ARCHIVE_CRON"), "30 2 * * *"),
		ArchiveAfter:  duration(Config("ARCHIVE_AFTER"), 30*24*time.Hour),
	}
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func duration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid duration %q, using %s", v, def)
		return def
	}
	return d
}

func boolean(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
