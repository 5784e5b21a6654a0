package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Database config
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // SQLite database file path

	// App config
	Environment string
	BaseURL     string // public base URL for locally served uploads

	// Seed config
	SeedDataPath string // tabular file consumed by the simulation seed

	// Storage config
	Storage StorageConfig
}

// StorageConfig is handed to the blob sink constructor explicitly;
// storage settings are never read from process-wide state elsewhere.
type StorageConfig struct {
	Bucket          string // GCS bucket; empty means local-disk storage
	CredentialsJSON string // optional explicit service account JSON
	PublicHost      string // host used to build public object URLs
	UploadDir       string // local uploads directory
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Default to SQLite so the service runs with zero setup
	dbDriver := getEnv("DB_DRIVER", "sqlite")

	AppConfig = Config{
		DBDriver:     dbDriver,
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "gradeguard"),
		DBPath:       getEnv("DB_PATH", "./audit.db"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		BaseURL:      getEnv("BASE_URL", "http://127.0.0.1:"+getEnv("PORT", "8000")),
		SeedDataPath: getEnv("SEED_DATA_PATH", "./PS1E.csv"),
		Storage: StorageConfig{
			Bucket:          getEnv("GCS_BUCKET", ""),
			CredentialsJSON: getEnv("GCS_CREDENTIALS_JSON", ""),
			PublicHost:      getEnv("GCS_URL", "storage.googleapis.com"),
			UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		},
	}
}

// Helper function to get environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get integer environment variable with fallback
func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// GetPort returns the HTTP listen port
func GetPort() int {
	return getEnvAsInt("PORT", 8000)
}

// IsDevelopment returns true if the application is running in development mode
func IsDevelopment() bool {
	return AppConfig.Environment == "development"
}
