package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Feed     FeedConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	MongoURI      string
	MongoDatabase string
}

// FeedConfig is the discovery-engine tuning surface. The quota split is a
// product constant, not an invariant, so it stays configurable.
type FeedConfig struct {
	PageSize        int           // default page size for /feed and /search
	ShortsShelfSize int           // shorts rail on the home feed
	ShortsPageSize  int           // default page size for /shorts
	RelatedPageSize int           // related rail on the video detail page
	SessionTTL      time.Duration // exclusion sets, mode flag, cookie
	VideoWeight     int           // home feed split video vs playlist
	PlaylistWeight  int
	SearchUserQuota int // fixed channel slots on mixed search pages
	ViewedTopic     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "clipstream"),
		},
		Feed: FeedConfig{
			PageSize:        getEnvAsInt("FEED_PAGE_SIZE", 16),
			ShortsShelfSize: getEnvAsInt("FEED_SHORTS_SHELF_SIZE", 8),
			ShortsPageSize:  getEnvAsInt("SHORTS_PAGE_SIZE", 10),
			RelatedPageSize: getEnvAsInt("RELATED_PAGE_SIZE", 8),
			SessionTTL:      time.Duration(getEnvAsInt("FEED_SESSION_TTL_SECONDS", 3600)) * time.Second,
			VideoWeight:     getEnvAsInt("FEED_VIDEO_WEIGHT", 4),
			PlaylistWeight:  getEnvAsInt("FEED_PLAYLIST_WEIGHT", 1),
			SearchUserQuota: getEnvAsInt("SEARCH_USER_QUOTA", 2),
			ViewedTopic:     getEnv("VIDEO_VIEWED_TOPIC_NAME", "VIDEO_VIEWED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
