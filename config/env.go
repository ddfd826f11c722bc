package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	// Database
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string
	DatabaseSchema   string

	// Server
	Port     int
	LoginURL string
	LogLevel string

	// Authentication
	JWTSecret string

	// Media
	MediaBackend   string
	MediaRoot      string
	MediaURL       string
	MaxUploadBytes int64
	S3Bucket       string
	S3Region       string
	AWSAccessKeyID string
	AWSSecretKey   string
	GCSBucket      string

	// Events
	KafkaBroker string
	KafkaTopic  string
}

const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
	MediaBackendGCS   = "gcs"
)

var (
	appConfig *Config
	onceEnv   sync.Once
)

func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "postgres"),
		DatabaseSchema:   getEnvWithDefault("DATABASE_SCHEMA", "candideit"),

		Port:     getEnvAsInt("PORT", 8000),
		LoginURL: getEnvWithDefault("LOGIN_URL", "/accounts/login"),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		JWTSecret: getRequiredInProduction("JWT_SECRET", "dummyjwt"),

		MediaBackend:   getEnvWithDefault("MEDIA_BACKEND", MediaBackendLocal),
		MediaRoot:      getEnvWithDefault("MEDIA_ROOT", "media"),
		MediaURL:       getEnvWithDefault("MEDIA_URL", "/media"),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5<<20)),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnvWithDefault("S3_REGION", "sa-east-1"),
		AWSAccessKeyID: os.Getenv("ACCESS_KEY_ID"),
		AWSSecretKey:   os.Getenv("SECRET_ACCESS_KEY"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),

		// Empty broker disables event publishing
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnvWithDefault("KAFKA_TOPIC", "election-events"),
	}
	if config.MediaBackend == MediaBackendS3 && config.S3Bucket == "" {
		panic("S3_BUCKET is required when MEDIA_BACKEND=s3")
	}
	if config.MediaBackend == MediaBackendGCS && config.GCSBucket == "" {
		panic("GCS_BUCKET is required when MEDIA_BACKEND=gcs")
	}
	return config
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// Helper functions
func getRequiredInProduction(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		if IsProduction() {
			panic(fmt.Sprintf("Required environment variable %s is not set", key))
		}
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}
