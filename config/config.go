package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Blob     BlobConfig
	JDoodle  JDoodleConfig
	Gemini   GeminiConfig
	Firebase FirebaseConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI       string
	Database  string
	ConnectTO time.Duration
	PingTO    time.Duration
}

type BlobConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JDoodleConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type GeminiConfig struct {
	Model string
}

type FirebaseConfig struct {
	// CredentialsPath is optional. When empty, identity fields supplied by
	// the caller are trusted as already verified.
	CredentialsPath string
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Mongo: MongoConfig{
			URI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:  getEnv("MONGO_DB", "codehive"),
			ConnectTO: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 5*time.Second),
			PingTO:    getEnvAsDuration("MONGO_PING_TIMEOUT", 2*time.Second),
		},
		Blob: BlobConfig{
			Endpoint:  getEnv("BLOB_ENDPOINT", "s3.amazonaws.com"),
			Region:    getEnv("BLOB_REGION", "us-east-1"),
			AccessKey: getEnv("BLOB_ACCESS_KEY", ""),
			SecretKey: getEnv("BLOB_SECRET_KEY", ""),
			Bucket:    getEnv("BLOB_BUCKET", "codehive-files"),
			UseSSL:    getEnvAsBool("BLOB_USE_SSL", true),
		},
		JDoodle: JDoodleConfig{
			BaseURL:      getEnv("JDOODLE_URL", "https://api.jdoodle.com/v1"),
			ClientID:     getEnv("JDOODLE_CLIENT_ID", ""),
			ClientSecret: getEnv("JDOODLE_CLIENT_SECRET", ""),
			Timeout:      getEnvAsDuration("JDOODLE_TIMEOUT", 30*time.Second),
		},
		Gemini: GeminiConfig{
			Model: getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}

	if c.Blob.Bucket == "" {
		return fmt.Errorf("BLOB_BUCKET is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return d
}
