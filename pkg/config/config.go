package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Snapshot store drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
)

const devJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	TokenTTL                time.Duration
	StoreDriver             string
	DataDir                 string
	SQLitePath              string
	PostgresUrl             string
	MongoURI                string
	MongoDatabase           string
	FirebaseCredentialsPath string
}

// Load reads the configuration from the environment, after loading .env if present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	cfg := &Config{
		Port:                    getEnv("PORT", "3001"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		TokenTTL:                ttl,
		StoreDriver:             getEnv("STORE_DRIVER", DriverFile),
		DataDir:                 getEnv("DATA_DIR", "data"),
		SQLitePath:              getEnv("SQLITE_PATH", "data/friendbook.db"),
		PostgresUrl:             getEnv("POSTGRES_URL", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "friendbook"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
	if cfg.JWTSecret == "" && cfg.Env != "production" {
		log.Println("JWT_SECRET not set, using the development secret.")
		cfg.JWTSecret = devJWTSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable not set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	switch c.StoreDriver {
	case DriverFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR environment variable not set")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH environment variable not set")
		}
	case DriverPostgres:
		if c.PostgresUrl == "" {
			return fmt.Errorf("POSTGRES_URL environment variable not set")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
